package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/arthurmdp/bankledger/internal/models/customer"
	"github.com/arthurmdp/bankledger/internal/models/errs"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// RegisterCustomerParams defines parameters for RegisterCustomer.
type RegisterCustomerParams struct {
	Document  customer.Document
	Name      string
	BirthDate string
	Address   string
}

// OpenAccountParams defines parameters for OpenAccount.
type OpenAccountParams struct {
	Document customer.Document
}

// MovementParams defines parameters for Deposit and Withdraw.
type MovementParams struct {
	Document customer.Document
	Amount   decimal.Decimal
}

// StatementParams defines parameters for GetStatement.
type StatementParams struct {
	Document customer.Document
	Filter   string
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Customer registration (POST /customers).
	RegisterCustomer(w http.ResponseWriter, r *http.Request, params RegisterCustomerParams)
	// Account opening (POST /accounts).
	OpenAccount(w http.ResponseWriter, r *http.Request, params OpenAccountParams)
	// Account listing (GET /accounts).
	ListAccounts(w http.ResponseWriter, r *http.Request)
	// Deposit (POST /accounts/deposit).
	Deposit(w http.ResponseWriter, r *http.Request, params MovementParams)
	// Withdrawal (POST /accounts/withdraw).
	Withdraw(w http.ResponseWriter, r *http.Request, params MovementParams)
	// History report (GET /accounts/statement).
	GetStatement(w http.ResponseWriter, r *http.Request, params StatementParams)
}

// ServerInterfaceWrapper converts payloads to parameters.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

// Register customer operation middleware.
func (siw *ServerInterfaceWrapper) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Document  string `json:"document"`
		Name      string `json:"name"`
		BirthDate string `json:"birth_date"`
		Address   string `json:"address"`
	}

	if err := decodeBody(r, &body); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	// ------------- Required JSON body parameter "document" ----------

	if body.Document == "" {
		siw.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "document"})
		return
	}

	// ------------- Required JSON body parameter "name" --------------

	if body.Name == "" {
		siw.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "name"})
		return
	}

	doc, err := customer.NewDocument(body.Document)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	siw.Handler.RegisterCustomer(w, r, RegisterCustomerParams{
		Document:  doc,
		Name:      body.Name,
		BirthDate: body.BirthDate,
		Address:   body.Address,
	})
}

// Open account operation middleware.
func (siw *ServerInterfaceWrapper) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Document string `json:"document"`
	}

	if err := decodeBody(r, &body); err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	if body.Document == "" {
		siw.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "document"})
		return
	}

	doc, err := customer.NewDocument(body.Document)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	siw.Handler.OpenAccount(w, r, OpenAccountParams{Document: doc})
}

// Deposit operation middleware.
func (siw *ServerInterfaceWrapper) Deposit(w http.ResponseWriter, r *http.Request) {
	params, err := movementParams(r)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	siw.Handler.Deposit(w, r, params)
}

// Withdraw operation middleware.
func (siw *ServerInterfaceWrapper) Withdraw(w http.ResponseWriter, r *http.Request) {
	params, err := movementParams(r)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}
	siw.Handler.Withdraw(w, r, params)
}

// Statement operation middleware.
func (siw *ServerInterfaceWrapper) GetStatement(w http.ResponseWriter, r *http.Request) {
	rawDoc := r.URL.Query().Get("document")
	if rawDoc == "" {
		siw.ErrorHandlerFunc(w, r,
			fmt.Errorf("%w: query parameter \"document\" is required", errs.ErrMalformedInput))
		return
	}

	doc, err := customer.NewDocument(rawDoc)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	siw.Handler.GetStatement(w, r, StatementParams{
		Document: doc,
		Filter:   r.URL.Query().Get("filter"),
	})
}

// movementParams parses and validates the shared deposit/withdraw payload.
// Amounts travel as strings and must parse as a non-negative decimal;
// the sign of a zero amount is the transaction engine's concern.
func movementParams(r *http.Request) (MovementParams, error) {
	var body struct {
		Document string `json:"document"`
		Amount   string `json:"amount"`
	}

	if err := decodeBody(r, &body); err != nil {
		return MovementParams{}, err
	}

	if body.Document == "" {
		return MovementParams{}, &errs.RequiredJSONBodyParamError{ParamName: "document"}
	}
	if body.Amount == "" {
		return MovementParams{}, &errs.RequiredJSONBodyParamError{ParamName: "amount"}
	}

	doc, err := customer.NewDocument(body.Document)
	if err != nil {
		return MovementParams{}, err
	}

	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		return MovementParams{}, fmt.Errorf("%w: amount %q is not a valid decimal",
			errs.ErrMalformedInput, body.Amount)
	}
	if amount.IsNegative() {
		return MovementParams{}, fmt.Errorf("%w: amount %q is negative",
			errs.ErrMalformedInput, body.Amount)
	}

	return MovementParams{Document: doc, Amount: amount}, nil
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: empty body", errs.ErrMalformedInput)
	}
	if err = json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrMalformedInput, err)
	}
	return nil
}

// Handler creates http.Handler with routing matching spec.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

type ChiServerOptions struct {
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
	BaseRouter       chi.Router
	BaseURL          string
	Middlewares      []MiddlewareFunc
}

// HandlerFromMux creates http.Handler with routing matching spec.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = ErrorHandlerFunc
	}
	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Post(options.BaseURL+"/customers", wrapper.RegisterCustomer)
		r.Post(options.BaseURL+"/accounts", wrapper.OpenAccount)
		r.Get(options.BaseURL+"/accounts", si.ListAccounts)
		r.Post(options.BaseURL+"/accounts/deposit", wrapper.Deposit)
		r.Post(options.BaseURL+"/accounts/withdraw", wrapper.Withdraw)
		r.Get(options.BaseURL+"/accounts/statement", wrapper.GetStatement)
	})

	return r
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func ErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	errJSON := errs.JSON{Error: err.Error()}
	code := http.StatusInternalServerError

	switch {
	// Status Bad Request (400).
	case errors.Is(err, errs.ErrMalformedInput) ||
		errors.Is(err, errs.ErrInvalidAmount) ||
		errors.Is(err, io.EOF):
		code = http.StatusBadRequest

	// Status Payment Required (402).
	case errors.Is(err, errs.ErrInsufficientBalance):
		code = http.StatusPaymentRequired

	// Status Not Found (404).
	case errors.Is(err, errs.ErrCustomerNotFound) ||
		errors.Is(err, errs.ErrAccountNotFound) ||
		errors.Is(err, errs.ErrNotFound):
		code = http.StatusNotFound

	// Status Conflict (409).
	case errors.Is(err, errs.ErrDuplicateCustomer) ||
		errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict

	// Status Unprocessable Entity (422).
	case errors.Is(err, errs.ErrLimitExceeded):
		code = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err = json.NewEncoder(w).Encode(errJSON); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
