// Package domain holds the in-memory banking model: accounts, customers
// and the append-only transaction ledger. It has no storage or transport
// concerns; every operation is synchronous and guarded by per-object locks.
package domain

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Account type discriminators.
const (
	AccountTypeSavings  = "SAVINGS"
	AccountTypeChecking = "CHECKING"
)

// Account is the contract shared by the two account variants. The
// unexported method keeps the set of implementations closed to this
// package: SavingsAccount and CheckingAccount.
type Account interface {
	AccountID() string
	AccountHolder() string
	AccountType() string
	InterestRate() decimal.Decimal
	Balance() decimal.Decimal
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	Transfer(dest Account, amount decimal.Decimal) error
	TransactionHistory() []Transaction
	ApplyInterest()
	Details() string

	base() *baseAccount
}

// baseAccount carries the state and behaviour common to both variants.
// mu guards balance and history together, so a reader never observes a
// balance without its matching ledger entry.
type baseAccount struct {
	mu           sync.Mutex
	id           string
	holder       string
	accountType  string
	interestRate decimal.Decimal
	balance      decimal.Decimal
	history      []Transaction
}

// init validates the opening parameters and populates the account in
// place. An initial balance above zero is recorded as an opening deposit.
func (a *baseAccount) init(holder string, initialBalance, interestRate decimal.Decimal, accountType string) error {
	if err := validateOpening(holder, initialBalance); err != nil {
		return err
	}
	a.id = newID()
	a.holder = holder
	a.accountType = accountType
	a.interestRate = interestRate
	a.balance = initialBalance
	if initialBalance.IsPositive() {
		a.history = append(a.history, NewTransactionRecord(TransactionInitialDeposit, initialBalance, "Account opening deposit"))
	}
	return nil
}

func (a *baseAccount) base() *baseAccount { return a }

func (a *baseAccount) AccountID() string { return a.id }

func (a *baseAccount) AccountHolder() string { return a.holder }

func (a *baseAccount) AccountType() string { return a.accountType }

func (a *baseAccount) InterestRate() decimal.Decimal { return a.interestRate }

// Balance returns the current balance under the account lock.
func (a *baseAccount) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit credits amount and appends a DEPOSIT entry. A failed validation
// mutates nothing.
func (a *baseAccount) Deposit(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
	a.history = append(a.history, NewTransactionRecord(TransactionDeposit, amount, "Deposit to account"))
	return nil
}

// Withdraw debits amount against a zero floor and appends a WITHDRAW
// entry. CheckingAccount overrides this with its overdraft-aware check.
func (a *baseAccount) Withdraw(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.balance.LessThan(amount) {
		return fmt.Errorf("%w: current balance $%s, requested amount $%s",
			ErrInsufficientFunds, a.balance.StringFixed(2), amount.StringFixed(2))
	}
	a.balance = a.balance.Sub(amount)
	a.history = append(a.history, NewTransactionRecord(TransactionWithdraw, amount, "Withdrawal from account"))
	return nil
}

// Transfer moves amount from this account to dest. Both accounts are
// locked for the whole operation, lower account id first, so transfers
// running in opposite directions cannot deadlock and no reader observes
// only one side applied. The source-side check is the plain zero floor;
// overdraft is never consulted for transfers.
func (a *baseAccount) Transfer(dest Account, amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	d := dest.base()
	if d.id == a.id {
		return ErrSameAccount
	}

	first, second := a, d
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if a.balance.LessThan(amount) {
		return fmt.Errorf("%w: current balance $%s, transfer amount $%s",
			ErrInsufficientFunds, a.balance.StringFixed(2), amount.StringFixed(2))
	}

	a.balance = a.balance.Sub(amount)
	a.history = append(a.history, NewTransactionRecord(TransactionTransferOut, amount, "Transfer to "+d.holder))
	d.balance = d.balance.Add(amount)
	d.history = append(d.history, NewTransactionRecord(TransactionTransferIn, amount, "Transfer from "+a.holder))
	return nil
}

// TransactionHistory returns a snapshot of the ledger in chronological
// order. The caller cannot mutate the account's history through it.
func (a *baseAccount) TransactionHistory() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// applyMonthlyInterest credits one month's slice of the annual rate.
// Callers must hold mu.
func (a *baseAccount) applyMonthlyInterest() {
	interest := a.balance.Mul(a.interestRate).Div(decimal.NewFromInt(12))
	a.balance = a.balance.Add(interest)
}
