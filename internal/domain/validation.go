package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxCustomerAccounts is the maximum number of accounts one customer may hold.
const MaxCustomerAccounts = 10

var maxTransactionAmount = decimal.NewFromInt(1_000_000)

// ValidateAmount checks that amount is within (0, 1,000,000]. Every
// money-moving operation validates with this before touching any state.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be greater than 0", ErrInvalidAmount)
	}
	if amount.GreaterThan(maxTransactionAmount) {
		return fmt.Errorf("%w: amount cannot exceed $1,000,000", ErrInvalidAmount)
	}
	return nil
}

// ValidateCustomerDetails validates the fields required to register a
// customer: non-empty name, an email containing "@" and a non-empty phone
// number.
func ValidateCustomerDetails(name, email, phoneNumber string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidCustomerDetails)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email %q is malformed", ErrInvalidCustomerDetails, email)
	}
	if strings.TrimSpace(phoneNumber) == "" {
		return fmt.Errorf("%w: phone number cannot be empty", ErrInvalidCustomerDetails)
	}
	return nil
}

func validateOpening(holder string, initialBalance decimal.Decimal) error {
	if strings.TrimSpace(holder) == "" {
		return ErrInvalidAccountHolder
	}
	if initialBalance.IsNegative() {
		return ErrNegativeInitialBalance
	}
	return nil
}
