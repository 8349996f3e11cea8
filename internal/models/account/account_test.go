package account

import (
	"fmt"
	"testing"
	"time"

	"github.com/arthurmdp/bankledger/internal/models/customer"
	"github.com/arthurmdp/bankledger/internal/models/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount() *Account {
	owner := &customer.Customer{
		Document: "12345678901",
		Name:     "Maria Silva",
	}
	return New("0001", 1, owner, decimal.NewFromFloat(500), 3, 10)
}

func amt(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDeposit(t *testing.T) {
	t.Run("positive amount credits balance", func(t *testing.T) {
		a := newTestAccount()

		require.NoError(t, a.Deposit(amt("250.50")))

		assert.True(t, a.Balance().Equal(amt("250.50")),
			"balance = %s", a.Balance())
		require.Len(t, a.History().Entries(), 1)
		assert.Equal(t, "Deposit: 250.50", a.History().Entries()[0].Description)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		a := newTestAccount()

		err := a.Deposit(decimal.Zero)

		require.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.True(t, a.Balance().IsZero())
		assert.Empty(t, a.History().Entries())
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		a := newTestAccount()

		err := a.Deposit(amt("-10"))

		require.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.True(t, a.Balance().IsZero())
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("valid withdrawal debits balance and counts", func(t *testing.T) {
		a := newTestAccount()
		require.NoError(t, a.Deposit(amt("300")))

		require.NoError(t, a.Withdraw(amt("100")))

		assert.True(t, a.Balance().Equal(amt("200")), "balance = %s", a.Balance())
		assert.Equal(t, 1, a.Withdrawals())
		entries := a.History().Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "Withdraw: 100.00", entries[1].Description)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		a := newTestAccount()
		require.NoError(t, a.Deposit(amt("50")))

		err := a.Withdraw(amt("100"))

		require.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.True(t, a.Balance().Equal(amt("50")))
		assert.Zero(t, a.Withdrawals())
	})

	t.Run("amount over per-transaction limit", func(t *testing.T) {
		a := newTestAccount()
		require.NoError(t, a.Deposit(amt("1000")))

		err := a.Withdraw(amt("600"))

		require.ErrorIs(t, err, errs.ErrLimitExceeded)
		assert.True(t, a.Balance().Equal(amt("1000")))
	})

	t.Run("daily withdrawal cap", func(t *testing.T) {
		a := newTestAccount()
		require.NoError(t, a.Deposit(amt("2000")))

		for i := 0; i < 3; i++ {
			require.NoError(t, a.Withdraw(amt("500")))
		}

		err := a.Withdraw(amt("100"))

		require.ErrorIs(t, err, errs.ErrLimitExceeded)
		assert.True(t, a.Balance().Equal(amt("500")), "balance = %s", a.Balance())
		assert.Equal(t, 3, a.Withdrawals())
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		a := newTestAccount()

		err := a.Withdraw(decimal.Zero)

		require.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.True(t, a.Balance().IsZero())
	})

	// Insufficient balance is checked before any limit: emptying the
	// account and withdrawing again reports the balance, not the caps.
	t.Run("balance check precedes limit checks", func(t *testing.T) {
		a := newTestAccount()
		require.NoError(t, a.Deposit(amt("1000")))

		require.ErrorIs(t, a.Withdraw(amt("600")), errs.ErrLimitExceeded)
		require.NoError(t, a.Withdraw(amt("500")))
		require.NoError(t, a.Withdraw(amt("500")))
		assert.True(t, a.Balance().IsZero())
		assert.Equal(t, 2, a.Withdrawals())

		err := a.Withdraw(amt("500"))

		require.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.True(t, a.Balance().IsZero())
		assert.Equal(t, 2, a.Withdrawals())
	})
}

func TestDailyTransactionCeiling(t *testing.T) {
	a := newTestAccount()

	for i := 0; i < 10; i++ {
		require.NoError(t, a.Deposit(amt("1")))
	}
	require.True(t, a.TransactionLimitExceeded())

	err := a.Deposit(amt("1"))
	require.ErrorIs(t, err, errs.ErrLimitExceeded)

	err = a.Withdraw(amt("1"))
	require.ErrorIs(t, err, errs.ErrLimitExceeded)

	assert.True(t, a.Balance().Equal(amt("10")), "balance = %s", a.Balance())
	assert.Len(t, a.History().Entries(), 10)
}

func TestTransactionsToday_MidnightRollover(t *testing.T) {
	defer func() { now = time.Now }()

	day1 := time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)
	now = func() time.Time { return day1 }

	a := newTestAccount()
	for i := 0; i < 10; i++ {
		require.NoError(t, a.Deposit(amt("1")))
	}
	require.ErrorIs(t, a.Deposit(amt("1")), errs.ErrLimitExceeded)

	// Yesterday's entries silently stop counting; no explicit reset.
	now = func() time.Time { return day1.AddDate(0, 0, 1) }

	assert.Empty(t, a.TransactionsToday())
	assert.False(t, a.TransactionLimitExceeded())
	require.NoError(t, a.Deposit(amt("1")))
}

func TestHistoryReport(t *testing.T) {
	defer func() { now = time.Now }()
	at := time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)
	now = func() time.Time { return at }

	a := newTestAccount()
	require.NoError(t, a.Deposit(amt("1000")))
	require.NoError(t, a.Withdraw(amt("100")))
	require.NoError(t, a.Deposit(amt("20")))

	t.Run("no filter returns everything in insertion order", func(t *testing.T) {
		got := a.History().Report("")

		want := []string{
			"2024-03-10 15:04:05 - Deposit: 1000.00",
			"2024-03-10 15:04:05 - Withdraw: 100.00",
			"2024-03-10 15:04:05 - Deposit: 20.00",
		}
		assert.Equal(t, want, got)
	})

	t.Run("filter matches case-insensitively", func(t *testing.T) {
		got := a.History().Report("WITHDRAW")

		require.Len(t, got, 1)
		assert.Contains(t, got[0], "Withdraw: 100.00")
	})

	t.Run("report is recomputed on every call", func(t *testing.T) {
		first := a.History().Report("deposit")
		second := a.History().Report("deposit")

		assert.Equal(t, first, second)
		assert.Len(t, first, 2)
	})

	t.Run("no match yields empty report", func(t *testing.T) {
		assert.Empty(t, a.History().Report("transfer"))
	})
}

func TestBalanceNeverNegative(t *testing.T) {
	a := newTestAccount()
	ops := []func() error{
		func() error { return a.Deposit(amt("300")) },
		func() error { return a.Withdraw(amt("400")) },
		func() error { return a.Withdraw(amt("250")) },
		func() error { return a.Deposit(amt("-1")) },
		func() error { return a.Withdraw(amt("100")) },
	}

	for i, op := range ops {
		_ = op()
		require.False(t, a.Balance().IsNegative(),
			fmt.Sprintf("negative balance after op %d: %s", i, a.Balance()))
	}
}
