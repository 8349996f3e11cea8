// Package account holds the mutable financial state of a single
// account and the transaction engine that mutates it. All amounts are
// decimal.Decimal; the balance is never negative after any sequence of
// operations.
package account

import (
	"time"

	"github.com/arthurmdp/bankledger/internal/models/customer"
	"github.com/shopspring/decimal"
)

// now is swapped in tests to pin the clock.
var now = time.Now

// Account state. Agency, Number and Owner are immutable after creation.
type Account struct {
	Agency string
	Number int
	Owner  *customer.Customer

	// Per-transaction withdrawal limit.
	Limit decimal.Decimal
	// Cap on successful withdrawals per day.
	MaxWithdrawals int
	// Combined deposit+withdraw ceiling per calendar day, checked
	// before any amount-specific rule.
	MaxTransactions int

	balance     decimal.Decimal
	withdrawals int
	history     *History
}

func New(agency string, number int, owner *customer.Customer, limit decimal.Decimal, maxWithdrawals, maxTransactions int) *Account {
	return &Account{
		Agency:          agency,
		Number:          number,
		Owner:           owner,
		Limit:           limit,
		MaxWithdrawals:  maxWithdrawals,
		MaxTransactions: maxTransactions,
		balance:         decimal.Zero,
		history:         NewHistory(),
	}
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Withdrawals returns the number of successful withdrawals so far.
func (a *Account) Withdrawals() int {
	return a.withdrawals
}

// History returns the account's transaction log.
func (a *Account) History() *History {
	return a.history
}

// Deposit credits the amount through a Deposit transaction.
func (a *Account) Deposit(amount decimal.Decimal) error {
	return Deposit{Amount: amount}.Apply(a)
}

// Withdraw debits the amount through a Withdraw transaction.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	return Withdraw{Amount: amount}.Apply(a)
}

// TransactionsToday returns the history entries recorded on the
// current calendar date. There is no explicit midnight reset: entries
// from previous days simply stop matching the date filter.
func (a *Account) TransactionsToday() []Entry {
	today := dateOnly(now())
	out := make([]Entry, 0)
	for _, e := range a.history.entries {
		if dateOnly(e.At).Equal(today) {
			out = append(out, e)
		}
	}
	return out
}

// TransactionLimitExceeded reports whether the daily combined
// transaction ceiling has been reached.
func (a *Account) TransactionLimitExceeded() bool {
	return len(a.TransactionsToday()) >= a.MaxTransactions
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
