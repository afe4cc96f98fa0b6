package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies the transaction variant.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// Label returns the display name used on statements.
func (k Kind) Label() string {
	switch k {
	case KindDeposit:
		return "Depósito"
	case KindWithdrawal:
		return "Saque"
	}
	return string(k)
}

// Transaction is an immutable monetary movement, created once per operation
// request. The amount is validated by the account at application time, not
// at construction — any value is accepted here.
type Transaction struct {
	kind      Kind
	amount    decimal.Decimal
	timestamp time.Time
}

// NewDeposit creates a deposit transaction stamped with the current time.
func NewDeposit(amount decimal.Decimal) Transaction {
	return Transaction{kind: KindDeposit, amount: amount, timestamp: time.Now()}
}

// NewWithdrawal creates a withdrawal transaction stamped with the current time.
func NewWithdrawal(amount decimal.Decimal) Transaction {
	return Transaction{kind: KindWithdrawal, amount: amount, timestamp: time.Now()}
}

func (t Transaction) Kind() Kind              { return t.kind }
func (t Transaction) Amount() decimal.Decimal { return t.amount }
func (t Transaction) Timestamp() time.Time    { return t.timestamp }

// Register applies the transaction to the account and reports the outcome.
// A transaction never writes history itself: the account appends an entry
// only for mutations it accepted, so the log cannot diverge from the balance.
func (t Transaction) Register(acc Account) error {
	switch t.kind {
	case KindDeposit:
		return acc.Deposit(t.amount)
	case KindWithdrawal:
		return acc.Withdraw(t.amount)
	default:
		return &ErrInvalidTransaction{Kind: string(t.kind)}
	}
}

// HistoryEntry is an immutable record of one accepted transaction.
type HistoryEntry struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// History is the append-only log of transactions an account accepted,
// in application order. Owned exclusively by one account; entries are
// never reordered or pruned.
type History struct {
	entries []HistoryEntry
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// add appends an entry. Callers must hold the owning account's lock.
func (h *History) add(kind Kind, amount decimal.Decimal) {
	h.entries = append(h.entries, HistoryEntry{
		ID:        uuid.New().String(),
		Kind:      kind,
		Amount:    amount,
		Timestamp: time.Now(),
	})
}

// snapshot returns a copy of the entries. Callers must hold the owning
// account's lock.
func (h *History) snapshot() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}
