package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Savings policy constants.
var (
	defaultSavingsRate    = decimal.NewFromFloat(0.04)
	savingsMinimumBalance = decimal.NewFromInt(500)
)

const maxMonthlyWithdrawals = 6

// SavingsAccount is the savings variant. The minimum balance and the
// monthly withdrawal cap are advisory: they are reported by the read
// methods below but nothing blocks a withdrawal that breaches them, and
// Withdraw does not touch the withdrawal counter.
type SavingsAccount struct {
	baseAccount
	withdrawalCount int
}

// NewSavingsAccount opens a savings account with the default 4% annual rate.
func NewSavingsAccount(holder string, initialBalance decimal.Decimal) (*SavingsAccount, error) {
	return NewSavingsAccountWithRate(holder, initialBalance, defaultSavingsRate)
}

// NewSavingsAccountWithRate opens a savings account with a custom annual rate.
func NewSavingsAccountWithRate(holder string, initialBalance, interestRate decimal.Decimal) (*SavingsAccount, error) {
	a := &SavingsAccount{}
	if err := a.init(holder, initialBalance, interestRate, AccountTypeSavings); err != nil {
		return nil, err
	}
	return a, nil
}

// ApplyInterest credits one month's slice of the annual rate. It can be
// called any number of times; there is no compounding guard.
func (a *SavingsAccount) ApplyInterest() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.applyMonthlyInterest()
}

// IsMaintainingMinimumBalance reports whether the balance meets the
// minimum balance requirement.
func (a *SavingsAccount) IsMaintainingMinimumBalance() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance.GreaterThanOrEqual(savingsMinimumBalance)
}

// MinimumBalance returns the fixed minimum balance requirement.
func (a *SavingsAccount) MinimumBalance() decimal.Decimal {
	return savingsMinimumBalance
}

// MaxMonthlyWithdrawals returns the fixed monthly withdrawal cap.
func (a *SavingsAccount) MaxMonthlyWithdrawals() int {
	return maxMonthlyWithdrawals
}

// WithdrawalCount returns the advisory withdrawal counter.
func (a *SavingsAccount) WithdrawalCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawalCount
}

// IncrementWithdrawalCount bumps the advisory counter. Withdraw never
// calls this; tracking the monthly cap is the caller's job.
func (a *SavingsAccount) IncrementWithdrawalCount() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.withdrawalCount++
}

// ResetWithdrawalCount zeroes the counter, typically at month end.
func (a *SavingsAccount) ResetWithdrawalCount() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.withdrawalCount = 0
}

// Details renders a human readable summary of the account.
func (a *SavingsAccount) Details() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fmt.Sprintf(
		"Savings Account Details:\n"+
			"  Account ID: %s\n"+
			"  Holder: %s\n"+
			"  Balance: $%s\n"+
			"  Interest Rate: %s%%\n"+
			"  Minimum Balance: $%s\n"+
			"  Monthly Withdrawals: %d/%d",
		a.id,
		a.holder,
		a.balance.StringFixed(2),
		a.interestRate.Mul(decimal.NewFromInt(100)).StringFixed(2),
		savingsMinimumBalance.StringFixed(2),
		a.withdrawalCount,
		maxMonthlyWithdrawals,
	)
}
