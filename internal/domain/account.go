// Package domain holds the core banking model: clients, accounts, the
// transactions that mutate balances and the per-account history they
// accumulate into. All state lives in process memory.
package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Branch is the fixed routing identifier shared by every account.
const Branch = "0001"

// Defaults for current accounts.
var (
	DefaultWithdrawalLimit = decimal.NewFromInt(500)
	DefaultWithdrawalCap   = 3
)

// Account is the capability a transaction registers against: deposit and
// withdraw with validation, plus read access to identity, balance and
// history. Behavior is selected via the concrete variant, not virtual
// dispatch.
type Account interface {
	Number() int
	Branch() string
	Owner() *PersonClient
	Balance() decimal.Decimal
	History() []HistoryEntry
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
}

// BaseAccount holds the state shared by every account variant. Balance only
// changes through Deposit/Withdraw, both of which validate before mutating;
// it never goes negative. The mutex makes observe-and-mutate atomic so two
// concurrent withdrawals cannot both pass the balance check.
type BaseAccount struct {
	mu      sync.Mutex
	number  int
	branch  string
	owner   *PersonClient
	balance decimal.Decimal
	history *History
}

func (a *BaseAccount) Number() int          { return a.number }
func (a *BaseAccount) Branch() string       { return a.branch }
func (a *BaseAccount) Owner() *PersonClient { return a.owner }

// Balance returns the current balance.
func (a *BaseAccount) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// History returns a snapshot of the accepted-transaction log.
func (a *BaseAccount) History() []HistoryEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.snapshot()
}

// Deposit increases the balance and records a history entry.
// Fails with ErrInvalidAmount for non-positive amounts; on failure the
// balance and history are untouched.
func (a *BaseAccount) Deposit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.depositLocked(amount)
}

func (a *BaseAccount) depositLocked(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return &ErrInvalidAmount{Amount: amount}
	}
	a.balance = a.balance.Add(amount)
	a.history.add(KindDeposit, amount)
	return nil
}

// Withdraw decreases the balance and records a history entry.
// Checks run in order: ErrInvalidAmount, then ErrInsufficientFunds; the
// first failing check determines the reported error.
func (a *BaseAccount) Withdraw(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawLocked(amount)
}

func (a *BaseAccount) withdrawLocked(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return &ErrInvalidAmount{Amount: amount}
	}
	if amount.GreaterThan(a.balance) {
		return &ErrInsufficientFunds{Available: a.balance, Required: amount}
	}
	a.balance = a.balance.Sub(amount)
	a.history.add(KindWithdrawal, amount)
	return nil
}

// CurrentAccount is an account with a per-withdrawal limit and a capped
// number of withdrawals. The cap is a lifetime counter and never resets.
type CurrentAccount struct {
	BaseAccount
	limit           decimal.Decimal
	withdrawalCap   int
	withdrawalsUsed int
}

// NewCurrentAccount creates an account attached to its owner. The number is
// assigned by the caller's monotonic counter; balance starts at zero.
func NewCurrentAccount(number int, owner *PersonClient, limit decimal.Decimal, withdrawalCap int) *CurrentAccount {
	return &CurrentAccount{
		BaseAccount: BaseAccount{
			number:  number,
			branch:  Branch,
			owner:   owner,
			balance: decimal.Zero,
			history: NewHistory(),
		},
		limit:         limit,
		withdrawalCap: withdrawalCap,
	}
}

// Limit returns the per-withdrawal limit.
func (c *CurrentAccount) Limit() decimal.Decimal { return c.limit }

// WithdrawalCap returns the maximum number of withdrawals.
func (c *CurrentAccount) WithdrawalCap() int { return c.withdrawalCap }

// WithdrawalsUsed returns how many withdrawals have been accepted so far.
func (c *CurrentAccount) WithdrawalsUsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.withdrawalsUsed
}

// RemainingWithdrawals returns how many withdrawals are still allowed.
func (c *CurrentAccount) RemainingWithdrawals() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.withdrawalCap - c.withdrawalsUsed
}

// Withdraw composes the current-account guards with the base validation.
// Check order is fixed: limit exceeded, then cap reached, then the base
// checks — error precedence is deterministic. The used counter only
// increments when the base withdrawal succeeds.
func (c *CurrentAccount) Withdraw(amount decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if amount.GreaterThan(c.limit) {
		return &ErrLimitExceeded{Limit: c.limit, Requested: amount}
	}
	if c.withdrawalsUsed >= c.withdrawalCap {
		return &ErrWithdrawalCapReached{Cap: c.withdrawalCap}
	}
	if err := c.withdrawLocked(amount); err != nil {
		return err
	}
	c.withdrawalsUsed++
	return nil
}
