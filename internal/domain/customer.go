package domain

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Customer owns up to MaxCustomerAccounts accounts keyed by account id.
// The customer's lock guards the map only; balances stay guarded by the
// accounts' own locks.
type Customer struct {
	mu               sync.RWMutex
	id               string
	name             string
	email            string
	phoneNumber      string
	registrationDate time.Time
	accounts         map[string]Account
}

// NewCustomer validates the details and creates a customer with a fresh id
// and the current date as registration date.
func NewCustomer(name, email, phoneNumber string) (*Customer, error) {
	if err := ValidateCustomerDetails(name, email, phoneNumber); err != nil {
		return nil, err
	}
	return &Customer{
		id:               newID(),
		name:             name,
		email:            email,
		phoneNumber:      phoneNumber,
		registrationDate: time.Now(),
		accounts:         make(map[string]Account),
	}, nil
}

func (c *Customer) CustomerID() string { return c.id }

func (c *Customer) Name() string { return c.name }

func (c *Customer) Email() string { return c.email }

func (c *Customer) PhoneNumber() string { return c.phoneNumber }

func (c *Customer) RegistrationDate() time.Time { return c.registrationDate }

// AddAccount registers account under its id and returns that id. A
// customer holds at most MaxCustomerAccounts accounts.
func (c *Customer) AddAccount(account Account) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.accounts) >= MaxCustomerAccounts {
		return "", fmt.Errorf("%w: customer can have a maximum of %d accounts", ErrAccountLimitExceeded, MaxCustomerAccounts)
	}
	id := account.AccountID()
	c.accounts[id] = account
	return id, nil
}

// GetAccount returns the account registered under accountID.
func (c *Customer) GetAccount(accountID string) (Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	account, ok := c.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return account, nil
}

// RemoveAccount removes and returns the account registered under accountID.
func (c *Customer) RemoveAccount(accountID string) (Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	account, ok := c.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	delete(c.accounts, accountID)
	return account, nil
}

// Accounts returns a copied snapshot of the id to account mapping.
func (c *Customer) Accounts() map[string]Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Account, len(c.accounts))
	for id, account := range c.accounts {
		out[id] = account
	}
	return out
}

// AccountCount returns the number of accounts the customer holds.
func (c *Customer) AccountCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.accounts)
}

// AccountsByType returns the ids of accounts whose type matches
// accountType case-insensitively. Order is unspecified; it follows map
// iteration.
func (c *Customer) AccountsByType(accountType string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0)
	for id, account := range c.accounts {
		if strings.EqualFold(account.AccountType(), accountType) {
			ids = append(ids, id)
		}
	}
	return ids
}

// TotalBalance sums the balance of every owned account.
func (c *Customer) TotalBalance() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalBalanceLocked()
}

func (c *Customer) totalBalanceLocked() decimal.Decimal {
	total := decimal.Zero
	for _, account := range c.accounts {
		total = total.Add(account.Balance())
	}
	return total
}

// Summary renders a human readable summary of the customer.
func (c *Customer) Summary() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf(
		"Customer Summary:\n"+
			"  ID: %s\n"+
			"  Name: %s\n"+
			"  Email: %s\n"+
			"  Phone: %s\n"+
			"  Registration Date: %s\n"+
			"  Number of Accounts: %d\n"+
			"  Total Balance: $%s",
		c.id,
		c.name,
		c.email,
		c.phoneNumber,
		c.registrationDate.Format("2006-01-02"),
		len(c.accounts),
		c.totalBalanceLocked().StringFixed(2),
	)
}

func (c *Customer) String() string {
	return c.Summary()
}
