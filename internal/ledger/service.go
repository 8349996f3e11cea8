// Package ledger is the transaction-validation and account-state
// engine behind the HTTP surface: customers, accounts, deposits,
// withdrawals and per-account statements.
package ledger

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arthurmdp/bankledger/internal/audit"
	"github.com/arthurmdp/bankledger/internal/config"
	"github.com/arthurmdp/bankledger/internal/models/account"
	"github.com/arthurmdp/bankledger/internal/models/customer"
	"github.com/arthurmdp/bankledger/pkg/logger"
	"github.com/shopspring/decimal"
)

type Service struct {
	registry *Registry
	auditor  *audit.Auditor
	logger   logger.Logger
	config   *config.Config
}

func NewService(registry *Registry, auditor *audit.Auditor, logger logger.Logger, config *config.Config) (*Service, error) {
	if registry == nil {
		return nil, errors.New("nil dependency: registry")
	}
	if auditor == nil {
		return nil, errors.New("nil dependency: auditor")
	}
	if config == nil {
		return nil, errors.New("nil dependency: config")
	}
	return &Service{registry: registry, auditor: auditor, logger: logger, config: config}, nil
}

var _ ServerInterface = (*Service)(nil)

type openAccountResponse struct {
	Agency string `json:"agency"`
	Number int    `json:"number"`
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// Customer registration (POST /customers).
func (s *Service) RegisterCustomer(w http.ResponseWriter, r *http.Request, params RegisterCustomerParams) {
	c, err := audit.Observe(s.auditor, "register_customer",
		[]any{params.Document, params.Name, params.BirthDate, params.Address},
		func() (*customer.Customer, error) {
			return s.registry.RegisterCustomer(params.Document, params.Name, params.BirthDate, params.Address)
		})
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	s.encode(w, r, http.StatusCreated, c)
}

// Account opening (POST /accounts).
func (s *Service) OpenAccount(w http.ResponseWriter, r *http.Request, params OpenAccountParams) {
	a, err := audit.Observe(s.auditor, "open_account",
		[]any{params.Document},
		func() (*account.Account, error) {
			return s.registry.OpenAccount(params.Document)
		})
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	s.encode(w, r, http.StatusCreated, openAccountResponse{Agency: a.Agency, Number: a.Number})
}

// Account listing (GET /accounts).
func (s *Service) ListAccounts(w http.ResponseWriter, r *http.Request) {
	s.encode(w, r, http.StatusOK, s.registry.ListAccounts())
}

// Deposit (POST /accounts/deposit).
func (s *Service) Deposit(w http.ResponseWriter, r *http.Request, params MovementParams) {
	balance, err := audit.Observe(s.auditor, "deposit",
		[]any{params.Document, params.Amount},
		func() (decimal.Decimal, error) {
			return s.registry.Deposit(params.Document, params.Amount)
		})
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	s.encode(w, r, http.StatusOK, balanceResponse{Balance: balance})
}

// Withdrawal (POST /accounts/withdraw).
func (s *Service) Withdraw(w http.ResponseWriter, r *http.Request, params MovementParams) {
	balance, err := audit.Observe(s.auditor, "withdraw",
		[]any{params.Document, params.Amount},
		func() (decimal.Decimal, error) {
			return s.registry.Withdraw(params.Document, params.Amount)
		})
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	s.encode(w, r, http.StatusOK, balanceResponse{Balance: balance})
}

// History report (GET /accounts/statement).
func (s *Service) GetStatement(w http.ResponseWriter, r *http.Request, params StatementParams) {
	statement, err := s.registry.AccountStatement(params.Document, params.Filter)
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	s.encode(w, r, http.StatusOK, statement)
}

func (s *Service) encode(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.With(r.Context(), "path", r.URL.Path).Errorf("encode response: %s", err)
	}
}
