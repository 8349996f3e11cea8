package customer

import (
	"fmt"
	"time"

	"github.com/arthurmdp/bankledger/internal/models/errs"
)

// Customer description. A customer is created on registration and
// never deleted; the document is immutable after creation.
type Customer struct {
	CreatedAt time.Time `json:"created_at"`
	Document  Document  `json:"document"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birth_date"`
	Address   string    `json:"address"`
}

// Document is the unique 11-digit numeric customer identifier
// (CPF-equivalent).
type Document string

// NewDocument validates the raw string as exactly 11 numeric digits.
func NewDocument(raw string) (Document, error) {
	if len(raw) != 11 {
		return "", fmt.Errorf("%w: document must be exactly 11 numeric digits", errs.ErrMalformedInput)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: document must be exactly 11 numeric digits", errs.ErrMalformedInput)
		}
	}
	return Document(raw), nil
}

func (d Document) String() string { return string(d) }
