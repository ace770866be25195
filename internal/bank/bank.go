// Package bank keeps the customer registry and wires the domain model to
// structured logging and metrics. It is the surface a console or demo
// consumes; domain semantics live entirely in internal/domain.
package bank

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/minibank/minibank/internal/domain"
	"github.com/minibank/minibank/internal/infrastructure/metrics"
)

// ErrCustomerNotFound is returned on lookups with an unknown customer id.
var ErrCustomerNotFound = errors.New("customer not found")

// Bank aggregates customers and their accounts in memory.
type Bank struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
	log       zerolog.Logger
	metrics   *metrics.Metrics
}

// New creates an empty bank.
func New(log zerolog.Logger, m *metrics.Metrics) *Bank {
	return &Bank{
		customers: make(map[string]*domain.Customer),
		log:       log,
		metrics:   m,
	}
}

// RegisterCustomer validates the details, creates a customer and indexes
// it by id.
func (b *Bank) RegisterCustomer(name, email, phoneNumber string) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(name, email, phoneNumber)
	if err != nil {
		b.countError("register_customer", err)
		b.log.Warn().Err(err).Str("name", name).Msg("customer registration rejected")
		return nil, err
	}

	b.mu.Lock()
	b.customers[customer.CustomerID()] = customer
	b.mu.Unlock()

	b.metrics.CustomersRegistered.Inc()
	b.log.Info().
		Str("customer_id", customer.CustomerID()).
		Str("name", name).
		Msg("customer registered")
	return customer, nil
}

// GetCustomer returns the customer registered under customerID.
func (b *Bank) GetCustomer(customerID string) (*domain.Customer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	customer, ok := b.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}
	return customer, nil
}

// Customers returns a snapshot of all registered customers.
func (b *Bank) Customers() []*domain.Customer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*domain.Customer, 0, len(b.customers))
	for _, customer := range b.customers {
		out = append(out, customer)
	}
	return out
}

// CustomerCount returns the number of registered customers.
func (b *Bank) CustomerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.customers)
}

// OpenSavingsAccount opens a savings account with the default rate and
// adds it to the customer.
func (b *Bank) OpenSavingsAccount(customerID, holder string, initialBalance decimal.Decimal) (*domain.SavingsAccount, error) {
	account, err := domain.NewSavingsAccount(holder, initialBalance)
	if err != nil {
		b.countError("open_account", err)
		return nil, err
	}
	if err := b.attach(customerID, account); err != nil {
		return nil, err
	}
	return account, nil
}

// OpenSavingsAccountWithRate opens a savings account with a custom annual
// rate and adds it to the customer.
func (b *Bank) OpenSavingsAccountWithRate(customerID, holder string, initialBalance, interestRate decimal.Decimal) (*domain.SavingsAccount, error) {
	account, err := domain.NewSavingsAccountWithRate(holder, initialBalance, interestRate)
	if err != nil {
		b.countError("open_account", err)
		return nil, err
	}
	if err := b.attach(customerID, account); err != nil {
		return nil, err
	}
	return account, nil
}

// OpenCheckingAccount opens a checking account with the default rate and
// adds it to the customer.
func (b *Bank) OpenCheckingAccount(customerID, holder string, initialBalance decimal.Decimal) (*domain.CheckingAccount, error) {
	account, err := domain.NewCheckingAccount(holder, initialBalance)
	if err != nil {
		b.countError("open_account", err)
		return nil, err
	}
	if err := b.attach(customerID, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (b *Bank) attach(customerID string, account domain.Account) error {
	customer, err := b.GetCustomer(customerID)
	if err != nil {
		b.countError("open_account", err)
		return err
	}
	if _, err := customer.AddAccount(account); err != nil {
		b.countError("open_account", err)
		b.log.Warn().Err(err).Str("customer_id", customerID).Msg("account rejected")
		return err
	}

	b.metrics.AccountsOpened.WithLabelValues(account.AccountType()).Inc()
	b.log.Info().
		Str("customer_id", customerID).
		Str("account_id", account.AccountID()).
		Str("type", account.AccountType()).
		Str("balance", account.Balance().StringFixed(2)).
		Msg("account opened")
	return nil
}

// Deposit credits amount to the customer's account.
func (b *Bank) Deposit(customerID, accountID string, amount decimal.Decimal) error {
	account, err := b.lookupAccount(customerID, accountID, "deposit")
	if err != nil {
		return err
	}
	if err := account.Deposit(amount); err != nil {
		b.countError("deposit", err)
		b.log.Warn().Err(err).Str("account_id", accountID).Msg("deposit rejected")
		return err
	}

	b.metrics.Deposits.Inc()
	b.metrics.TransactionAmount.Observe(amount.InexactFloat64())
	b.log.Info().
		Str("account_id", accountID).
		Str("amount", amount.StringFixed(2)).
		Msg("deposit applied")
	return nil
}

// Withdraw debits amount from the customer's account, applying the
// account variant's own floor policy.
func (b *Bank) Withdraw(customerID, accountID string, amount decimal.Decimal) error {
	account, err := b.lookupAccount(customerID, accountID, "withdraw")
	if err != nil {
		return err
	}
	if err := account.Withdraw(amount); err != nil {
		b.countError("withdraw", err)
		b.log.Warn().Err(err).Str("account_id", accountID).Msg("withdrawal rejected")
		return err
	}

	b.metrics.Withdrawals.Inc()
	b.metrics.TransactionAmount.Observe(amount.InexactFloat64())
	b.log.Info().
		Str("account_id", accountID).
		Str("amount", amount.StringFixed(2)).
		Msg("withdrawal applied")
	return nil
}

// Transfer moves amount between two accounts, possibly across customers.
func (b *Bank) Transfer(fromCustomerID, fromAccountID, toCustomerID, toAccountID string, amount decimal.Decimal) error {
	source, err := b.lookupAccount(fromCustomerID, fromAccountID, "transfer")
	if err != nil {
		return err
	}
	dest, err := b.lookupAccount(toCustomerID, toAccountID, "transfer")
	if err != nil {
		return err
	}
	if err := source.Transfer(dest, amount); err != nil {
		b.countError("transfer", err)
		b.log.Warn().Err(err).
			Str("from_account_id", fromAccountID).
			Str("to_account_id", toAccountID).
			Msg("transfer rejected")
		return err
	}

	b.metrics.Transfers.Inc()
	b.metrics.TransactionAmount.Observe(amount.InexactFloat64())
	b.log.Info().
		Str("from_account_id", fromAccountID).
		Str("to_account_id", toAccountID).
		Str("amount", amount.StringFixed(2)).
		Msg("transfer applied")
	return nil
}

// ApplyMonthlyInterest applies one interest cycle to every account of
// every customer.
func (b *Bank) ApplyMonthlyInterest() {
	for _, customer := range b.Customers() {
		for _, account := range customer.Accounts() {
			account.ApplyInterest()
			b.metrics.InterestApplications.Inc()
			b.log.Debug().
				Str("account_id", account.AccountID()).
				Str("balance", account.Balance().StringFixed(2)).
				Msg("interest applied")
		}
	}
}

// TotalAssets sums the total balance of every customer.
func (b *Bank) TotalAssets() decimal.Decimal {
	total := decimal.Zero
	for _, customer := range b.Customers() {
		total = total.Add(customer.TotalBalance())
	}
	return total
}

func (b *Bank) lookupAccount(customerID, accountID, operation string) (domain.Account, error) {
	customer, err := b.GetCustomer(customerID)
	if err != nil {
		b.countError(operation, err)
		return nil, err
	}
	account, err := customer.GetAccount(accountID)
	if err != nil {
		b.countError(operation, err)
		return nil, err
	}
	return account, nil
}

func (b *Bank) countError(operation string, err error) {
	b.metrics.OperationErrors.WithLabelValues(operation, reason(err)).Inc()
}

func reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountLimitExceeded):
		return "account_limit_exceeded"
	case errors.Is(err, domain.ErrInvalidCustomerDetails):
		return "invalid_customer_details"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, ErrCustomerNotFound):
		return "customer_not_found"
	default:
		return "internal"
	}
}
