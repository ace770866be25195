package domain

import "errors"

var (
	// Account errors
	ErrInvalidAmount          = errors.New("invalid transaction amount")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrSameAccount            = errors.New("cannot transfer to same account")
	ErrInvalidAccountHolder   = errors.New("account holder name cannot be empty")
	ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")

	// Customer errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountLimitExceeded   = errors.New("account limit exceeded")
	ErrInvalidCustomerDetails = errors.New("invalid customer details")
)
