package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Checking policy constants.
var (
	defaultCheckingRate = decimal.NewFromFloat(0.01)
	overdraftLimit      = decimal.NewFromInt(500)
	overdraftFeeRate    = decimal.NewFromFloat(0.05)
)

// CheckingAccount is the checking variant. The balance may go negative up
// to the overdraft limit. overdraftUsed is a derived quantity; it is only
// recomputed when UpdateOverdraft is invoked, never automatically after a
// withdrawal.
type CheckingAccount struct {
	baseAccount
	overdraftUsed decimal.Decimal
}

// NewCheckingAccount opens a checking account with the default 1% annual rate.
func NewCheckingAccount(holder string, initialBalance decimal.Decimal) (*CheckingAccount, error) {
	return NewCheckingAccountWithRate(holder, initialBalance, defaultCheckingRate)
}

// NewCheckingAccountWithRate opens a checking account with a custom annual rate.
func NewCheckingAccountWithRate(holder string, initialBalance, interestRate decimal.Decimal) (*CheckingAccount, error) {
	a := &CheckingAccount{overdraftUsed: decimal.Zero}
	if err := a.init(holder, initialBalance, interestRate, AccountTypeChecking); err != nil {
		return nil, err
	}
	return a, nil
}

// Withdraw debits amount against the overdraft-aware floor instead of the
// zero floor used by the base policy.
func (a *CheckingAccount) Withdraw(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.availableBalanceLocked().LessThan(amount) {
		return fmt.Errorf("%w: available balance $%s, requested amount $%s",
			ErrInsufficientFunds, a.availableBalanceLocked().StringFixed(2), amount.StringFixed(2))
	}
	a.balance = a.balance.Sub(amount)
	a.history = append(a.history, NewTransactionRecord(TransactionWithdraw, amount, "Withdrawal from account"))
	return nil
}

func (a *CheckingAccount) availableBalanceLocked() decimal.Decimal {
	return a.balance.Add(overdraftLimit.Sub(a.overdraftUsed))
}

// CanWithdrawWithOverdraft reports whether amount fits within the balance
// plus the remaining overdraft.
func (a *CheckingAccount) CanWithdrawWithOverdraft(amount decimal.Decimal) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.availableBalanceLocked().GreaterThanOrEqual(amount)
}

// AvailableBalance returns the balance plus the remaining overdraft.
func (a *CheckingAccount) AvailableBalance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.availableBalanceLocked()
}

// OverdraftLimit returns the fixed overdraft limit.
func (a *CheckingAccount) OverdraftLimit() decimal.Decimal {
	return overdraftLimit
}

// OverdraftUsed returns the overdraft amount recorded by the last
// UpdateOverdraft call.
func (a *CheckingAccount) OverdraftUsed() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.overdraftUsed
}

// RemainingOverdraft returns the overdraft still available.
func (a *CheckingAccount) RemainingOverdraft() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return overdraftLimit.Sub(a.overdraftUsed)
}

// UpdateOverdraft recomputes overdraftUsed from the current balance:
// max(0, -balance).
func (a *CheckingAccount) UpdateOverdraft() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.balance.IsNegative() {
		a.overdraftUsed = a.balance.Neg()
	} else {
		a.overdraftUsed = decimal.Zero
	}
}

// ApplyInterest credits the monthly slice of the annual rate, then charges
// a 5% fee on any overdraft in use. It always succeeds, even when the fee
// pushes the balance further negative.
func (a *CheckingAccount) ApplyInterest() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.applyMonthlyInterest()
	if a.overdraftUsed.IsPositive() {
		fee := a.overdraftUsed.Mul(overdraftFeeRate)
		a.balance = a.balance.Sub(fee)
	}
}

// Details renders a human readable summary of the account.
func (a *CheckingAccount) Details() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fmt.Sprintf(
		"Checking Account Details:\n"+
			"  Account ID: %s\n"+
			"  Holder: %s\n"+
			"  Balance: $%s\n"+
			"  Interest Rate: %s%%\n"+
			"  Overdraft Limit: $%s\n"+
			"  Overdraft Used: $%s\n"+
			"  Available Balance: $%s",
		a.id,
		a.holder,
		a.balance.StringFixed(2),
		a.interestRate.Mul(decimal.NewFromInt(100)).StringFixed(2),
		overdraftLimit.StringFixed(2),
		a.overdraftUsed.StringFixed(2),
		a.availableBalanceLocked().StringFixed(2),
	)
}
