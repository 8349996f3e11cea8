package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/arthurmdp/bankledger/internal/config"
	"github.com/arthurmdp/bankledger/internal/models/account"
	"github.com/arthurmdp/bankledger/internal/models/customer"
	"github.com/arthurmdp/bankledger/internal/models/errs"
	"github.com/shopspring/decimal"
)

// Registry owns all customers and accounts for the lifetime of the
// process. It is created empty at startup and discarded at shutdown;
// nothing is persisted. A single mutex serializes every state change
// so each operation is atomic.
type Registry struct {
	mu sync.Mutex

	agency          string
	withdrawLimit   decimal.Decimal
	maxWithdrawals  int
	maxTransactions int

	customers  []*customer.Customer
	byDocument map[customer.Document]*customer.Customer
	accounts   []*account.Account
}

func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		agency:          cfg.Bank.Agency,
		withdrawLimit:   decimal.NewFromFloat(cfg.Bank.WithdrawLimit),
		maxWithdrawals:  cfg.Bank.MaxWithdrawals,
		maxTransactions: cfg.Bank.MaxTransactions,
		byDocument:      make(map[customer.Document]*customer.Customer),
	}
}

// RegisterCustomer creates a customer with a globally unique document.
func (r *Registry) RegisterCustomer(doc customer.Document, name, birthDate, address string) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byDocument[doc]; exists {
		return nil, fmt.Errorf("%w: document %s", errs.ErrDuplicateCustomer, doc)
	}

	c := &customer.Customer{
		CreatedAt: time.Now(),
		Document:  doc,
		Name:      name,
		BirthDate: birthDate,
		Address:   address,
	}
	r.customers = append(r.customers, c)
	r.byDocument[doc] = c

	cp := *c
	return &cp, nil
}

// OpenAccount creates an account for a registered customer. Account
// numbers are assigned sequentially starting at 1; accounts are never
// deleted, so the sequence stays unique.
func (r *Registry) OpenAccount(doc customer.Document) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.byDocument[doc]
	if !exists {
		return nil, fmt.Errorf("%w: document %s", errs.ErrCustomerNotFound, doc)
	}

	number := len(r.accounts) + 1
	a := account.New(r.agency, number, owner, r.withdrawLimit, r.maxWithdrawals, r.maxTransactions)
	r.accounts = append(r.accounts, a)

	return a, nil
}

// AccountSummary is the listing record for one account.
type AccountSummary struct {
	Agency   string          `json:"agency"`
	Number   int             `json:"number"`
	Customer string          `json:"customer"`
	Document string          `json:"document"`
	Balance  decimal.Decimal `json:"balance"`
}

// ListAccounts returns one summary per account in creation order.
// Every call re-reads the registry, so iterating the result twice
// yields the same sequence and never consumes anything.
func (r *Registry) ListAccounts() []AccountSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]AccountSummary, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, AccountSummary{
			Agency:   a.Agency,
			Number:   a.Number,
			Customer: a.Owner.Name,
			Document: a.Owner.Document.String(),
			Balance:  a.Balance(),
		})
	}
	return out
}

// FindAccountByDocument returns the first account owned by the
// customer with the given document. Only the first account is
// reachable this way.
func (r *Registry) FindAccountByDocument(doc customer.Document) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findAccountLocked(doc)
}

func (r *Registry) findAccountLocked(doc customer.Document) (*account.Account, error) {
	if _, exists := r.byDocument[doc]; !exists {
		return nil, fmt.Errorf("%w: document %s", errs.ErrCustomerNotFound, doc)
	}
	for _, a := range r.accounts {
		if a.Owner.Document == doc {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: customer %s has no account", errs.ErrAccountNotFound, doc)
}

// Deposit credits the first account of the customer and returns the
// resulting balance. On failure the balance is unchanged.
func (r *Registry) Deposit(doc customer.Document, amount decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := r.findAccountLocked(doc)
	if err != nil {
		return decimal.Zero, err
	}
	if err = a.Deposit(amount); err != nil {
		return a.Balance(), err
	}
	return a.Balance(), nil
}

// Withdraw debits the first account of the customer and returns the
// resulting balance. On failure the balance is unchanged.
func (r *Registry) Withdraw(doc customer.Document, amount decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := r.findAccountLocked(doc)
	if err != nil {
		return decimal.Zero, err
	}
	if err = a.Withdraw(amount); err != nil {
		return a.Balance(), err
	}
	return a.Balance(), nil
}

// Statement is the history report of one account plus its balance.
type Statement struct {
	Entries []string        `json:"entries"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountStatement builds the statement of the customer's first
// account, optionally filtered by a case-insensitive substring.
func (r *Registry) AccountStatement(doc customer.Document, filter string) (Statement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := r.findAccountLocked(doc)
	if err != nil {
		return Statement{}, err
	}
	return Statement{
		Entries: a.History().Report(filter),
		Balance: a.Balance(),
	}, nil
}
