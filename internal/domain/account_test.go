package domain

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func newSavings(t *testing.T, balance int64) *SavingsAccount {
	t.Helper()
	a, err := NewSavingsAccount("John Doe", decimal.NewFromInt(balance))
	if err != nil {
		t.Fatalf("open savings account: %v", err)
	}
	return a
}

func TestAccount_Opening(t *testing.T) {
	tests := []struct {
		name        string
		holder      string
		balance     decimal.Decimal
		expectError error
		wantHistory int
	}{
		{
			name:        "positive opening balance records initial deposit",
			holder:      "John Doe",
			balance:     decimal.NewFromInt(1000),
			wantHistory: 1,
		},
		{
			name:        "zero opening balance records nothing",
			holder:      "John Doe",
			balance:     decimal.Zero,
			wantHistory: 0,
		},
		{
			name:        "empty holder",
			holder:      "   ",
			balance:     decimal.NewFromInt(100),
			expectError: ErrInvalidAccountHolder,
		},
		{
			name:        "negative opening balance",
			holder:      "John Doe",
			balance:     decimal.NewFromInt(-1),
			expectError: ErrNegativeInitialBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewSavingsAccount(tt.holder, tt.balance)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			history := a.TransactionHistory()
			if len(history) != tt.wantHistory {
				t.Fatalf("expected %d history entries, got %d", tt.wantHistory, len(history))
			}
			if tt.wantHistory == 1 {
				rec := history[0]
				if rec.Type() != TransactionInitialDeposit {
					t.Errorf("expected %s record, got %s", TransactionInitialDeposit, rec.Type())
				}
				if !rec.Amount().Equal(tt.balance) {
					t.Errorf("expected amount %s, got %s", tt.balance, rec.Amount())
				}
			}
		})
	}
}

func TestAccount_Deposit(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		expectError error
	}{
		{name: "valid amount", amount: decimal.NewFromInt(250)},
		{name: "zero amount", amount: decimal.Zero, expectError: ErrInvalidAmount},
		{name: "negative amount", amount: decimal.NewFromInt(-5), expectError: ErrInvalidAmount},
		{name: "amount above limit", amount: decimal.NewFromInt(1_000_001), expectError: ErrInvalidAmount},
		{name: "amount at limit", amount: decimal.NewFromInt(1_000_000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newSavings(t, 1000)
			before := a.Balance()
			historyBefore := len(a.TransactionHistory())

			err := a.Deposit(tt.amount)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				if !a.Balance().Equal(before) {
					t.Errorf("balance changed on failed deposit: %s", a.Balance())
				}
				if len(a.TransactionHistory()) != historyBefore {
					t.Error("history changed on failed deposit")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !a.Balance().Equal(before.Add(tt.amount)) {
				t.Errorf("expected balance %s, got %s", before.Add(tt.amount), a.Balance())
			}
			history := a.TransactionHistory()
			if len(history) != historyBefore+1 {
				t.Fatalf("expected %d history entries, got %d", historyBefore+1, len(history))
			}
			last := history[len(history)-1]
			if last.Type() != TransactionDeposit {
				t.Errorf("expected %s record, got %s", TransactionDeposit, last.Type())
			}
			if !last.Amount().Equal(tt.amount) {
				t.Errorf("expected record amount %s, got %s", tt.amount, last.Amount())
			}
		})
	}
}

func TestAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name        string
		balance     int64
		amount      decimal.Decimal
		expectError error
	}{
		{name: "sufficient funds", balance: 1000, amount: decimal.NewFromInt(400)},
		{name: "exact balance", balance: 1000, amount: decimal.NewFromInt(1000)},
		{name: "insufficient funds", balance: 100, amount: decimal.NewFromInt(150), expectError: ErrInsufficientFunds},
		{name: "invalid amount", balance: 1000, amount: decimal.Zero, expectError: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newSavings(t, tt.balance)
			before := a.Balance()
			historyBefore := len(a.TransactionHistory())

			err := a.Withdraw(tt.amount)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				if !a.Balance().Equal(before) {
					t.Errorf("balance changed on failed withdrawal: %s", a.Balance())
				}
				if len(a.TransactionHistory()) != historyBefore {
					t.Error("history changed on failed withdrawal")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !a.Balance().Equal(before.Sub(tt.amount)) {
				t.Errorf("expected balance %s, got %s", before.Sub(tt.amount), a.Balance())
			}
			last := a.TransactionHistory()[historyBefore]
			if last.Type() != TransactionWithdraw {
				t.Errorf("expected %s record, got %s", TransactionWithdraw, last.Type())
			}
		})
	}
}

func TestAccount_Transfer(t *testing.T) {
	src := newSavings(t, 1000)
	dst, err := NewSavingsAccount("Jane Smith", decimal.NewFromInt(200))
	if err != nil {
		t.Fatalf("open destination account: %v", err)
	}

	if err := src.Transfer(dst, decimal.NewFromInt(300)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !src.Balance().Equal(decimal.NewFromInt(700)) {
		t.Errorf("expected source balance 700, got %s", src.Balance())
	}
	if !dst.Balance().Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected destination balance 500, got %s", dst.Balance())
	}

	srcHistory := src.TransactionHistory()
	out := srcHistory[len(srcHistory)-1]
	if out.Type() != TransactionTransferOut {
		t.Errorf("expected %s record, got %s", TransactionTransferOut, out.Type())
	}
	if out.Description() != "Transfer to Jane Smith" {
		t.Errorf("unexpected description %q", out.Description())
	}

	dstHistory := dst.TransactionHistory()
	in := dstHistory[len(dstHistory)-1]
	if in.Type() != TransactionTransferIn {
		t.Errorf("expected %s record, got %s", TransactionTransferIn, in.Type())
	}
	if in.Description() != "Transfer from John Doe" {
		t.Errorf("unexpected description %q", in.Description())
	}
	if !out.Amount().Equal(in.Amount()) {
		t.Errorf("record amounts differ: %s vs %s", out.Amount(), in.Amount())
	}
}

func TestAccount_TransferFailures(t *testing.T) {
	src := newSavings(t, 100)
	dst := newSavings(t, 100)

	tests := []struct {
		name        string
		dest        Account
		amount      decimal.Decimal
		expectError error
	}{
		{name: "insufficient funds", dest: dst, amount: decimal.NewFromInt(500), expectError: ErrInsufficientFunds},
		{name: "invalid amount", dest: dst, amount: decimal.NewFromInt(-1), expectError: ErrInvalidAmount},
		{name: "same account", dest: src, amount: decimal.NewFromInt(10), expectError: ErrSameAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srcBefore, dstBefore := src.Balance(), dst.Balance()
			srcHistory, dstHistory := len(src.TransactionHistory()), len(dst.TransactionHistory())

			err := src.Transfer(tt.dest, tt.amount)
			if !errors.Is(err, tt.expectError) {
				t.Fatalf("expected error %v, got %v", tt.expectError, err)
			}

			if !src.Balance().Equal(srcBefore) || !dst.Balance().Equal(dstBefore) {
				t.Error("balances changed on failed transfer")
			}
			if len(src.TransactionHistory()) != srcHistory || len(dst.TransactionHistory()) != dstHistory {
				t.Error("histories changed on failed transfer")
			}
		})
	}
}

func TestAccount_HistoryIsSnapshot(t *testing.T) {
	a := newSavings(t, 1000)

	history := a.TransactionHistory()
	history[0] = NewTransactionRecord(TransactionWithdraw, decimal.NewFromInt(999), "tampered")

	fresh := a.TransactionHistory()
	if fresh[0].Type() != TransactionInitialDeposit {
		t.Error("mutating the returned history leaked into the account")
	}
}

func TestAccount_ReadsAreIdempotent(t *testing.T) {
	a := newSavings(t, 1000)
	if err := a.Deposit(decimal.NewFromInt(50)); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	first := a.Balance()
	firstHistory := len(a.TransactionHistory())
	for i := 0; i < 5; i++ {
		if !a.Balance().Equal(first) {
			t.Fatal("balance changed between reads without mutation")
		}
		if len(a.TransactionHistory()) != firstHistory {
			t.Fatal("history length changed between reads without mutation")
		}
	}
}

func TestAccount_ConcurrentDepositsAndWithdrawals(t *testing.T) {
	a := newSavings(t, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := a.Deposit(decimal.NewFromInt(10)); err != nil {
				t.Errorf("deposit: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := a.Withdraw(decimal.NewFromInt(5)); err != nil {
				t.Errorf("withdraw: %v", err)
			}
		}()
	}
	wg.Wait()

	// 1000 + 50*10 - 50*5
	want := decimal.NewFromInt(1250)
	if !a.Balance().Equal(want) {
		t.Errorf("expected balance %s, got %s", want, a.Balance())
	}
	if len(a.TransactionHistory()) != 101 {
		t.Errorf("expected 101 history entries, got %d", len(a.TransactionHistory()))
	}
}

func TestAccount_ConcurrentOppositeTransfers(t *testing.T) {
	a := newSavings(t, 500)
	b := newSavings(t, 500)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := a.Transfer(b, decimal.NewFromInt(1)); err != nil {
				t.Errorf("transfer a->b: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := b.Transfer(a, decimal.NewFromInt(1)); err != nil {
				t.Errorf("transfer b->a: %v", err)
			}
		}()
	}
	wg.Wait()

	total := a.Balance().Add(b.Balance())
	if !total.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("money not conserved: total %s", total)
	}
}
