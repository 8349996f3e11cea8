package account

import (
	"fmt"

	"github.com/arthurmdp/bankledger/internal/models/errs"
	"github.com/shopspring/decimal"
)

// Transaction is a single monetary operation against an account.
// Implementations validate against the account's current state and
// mutate it only after every check has passed, so a failed transaction
// leaves the account untouched.
type Transaction interface {
	Apply(a *Account) error
}

// Deposit credits an amount.
type Deposit struct {
	Amount decimal.Decimal
}

// Withdraw debits an amount.
type Withdraw struct {
	Amount decimal.Decimal
}

var (
	_ Transaction = Deposit{}
	_ Transaction = Withdraw{}
)

func (d Deposit) Apply(a *Account) error {
	if a.TransactionLimitExceeded() {
		return fmt.Errorf("%w: daily transaction limit of %d reached",
			errs.ErrLimitExceeded, a.MaxTransactions)
	}
	if d.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: deposit must be positive", errs.ErrInvalidAmount)
	}

	a.balance = a.balance.Add(d.Amount)
	a.history.Append("Deposit: " + d.Amount.StringFixed(2))
	return nil
}

// Apply runs the withdrawal checks in a fixed order: first failing
// check wins and no further check is evaluated. The balance check runs
// before both limit checks.
func (wd Withdraw) Apply(a *Account) error {
	switch {
	case a.TransactionLimitExceeded():
		return fmt.Errorf("%w: daily transaction limit of %d reached",
			errs.ErrLimitExceeded, a.MaxTransactions)
	case wd.Amount.GreaterThan(a.balance):
		return errs.ErrInsufficientBalance
	case wd.Amount.GreaterThan(a.Limit):
		return fmt.Errorf("%w: amount exceeds the permitted withdrawal limit of %s",
			errs.ErrLimitExceeded, a.Limit.StringFixed(2))
	case a.withdrawals >= a.MaxWithdrawals:
		return fmt.Errorf("%w: daily withdrawal limit of %d reached",
			errs.ErrLimitExceeded, a.MaxWithdrawals)
	case wd.Amount.LessThanOrEqual(decimal.Zero):
		return fmt.Errorf("%w: withdrawal must be positive", errs.ErrInvalidAmount)
	}

	a.balance = a.balance.Sub(wd.Amount)
	a.history.Append("Withdraw: " + wd.Amount.StringFixed(2))
	a.withdrawals++
	return nil
}
