package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionInitialDeposit TransactionType = "INITIAL_DEPOSIT"
	TransactionDeposit        TransactionType = "DEPOSIT"
	TransactionWithdraw       TransactionType = "WITHDRAW"
	TransactionTransferOut    TransactionType = "TRANSFER_OUT"
	TransactionTransferIn     TransactionType = "TRANSFER_IN"
)

// Transaction is a read-only view of one ledger entry.
type Transaction interface {
	ID() string
	Type() TransactionType
	Amount() decimal.Decimal
	Timestamp() time.Time
	Description() string
	Details() string
}

// TransactionRecord is an immutable record of one balance-affecting event.
// The amount is always the magnitude moved, never signed; direction is
// carried by the type.
type TransactionRecord struct {
	id          string
	txType      TransactionType
	amount      decimal.Decimal
	timestamp   time.Time
	description string
}

// NewTransactionRecord creates a record with a fresh random id and the
// current time.
func NewTransactionRecord(txType TransactionType, amount decimal.Decimal, description string) *TransactionRecord {
	return &TransactionRecord{
		id:          uuid.NewString(),
		txType:      txType,
		amount:      amount,
		timestamp:   time.Now(),
		description: description,
	}
}

func (t *TransactionRecord) ID() string { return t.id }

func (t *TransactionRecord) Type() TransactionType { return t.txType }

func (t *TransactionRecord) Amount() decimal.Decimal { return t.amount }

func (t *TransactionRecord) Timestamp() time.Time { return t.timestamp }

func (t *TransactionRecord) Description() string { return t.description }

// Details renders the entry as a single display line.
func (t *TransactionRecord) Details() string {
	return fmt.Sprintf("[%s] %s - Type: %s, Amount: $%s, Description: %s",
		t.id,
		t.timestamp.Format("2006-01-02 15:04:05"),
		t.txType,
		t.amount.StringFixed(2),
		t.description,
	)
}

func (t *TransactionRecord) String() string {
	return t.Details()
}
