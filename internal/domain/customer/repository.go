package customer

import (
	"context"
	"customer-service/internal/pkg/apperrors"
)

// kindError is a domain error that also matches one of the apperrors kinds.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func newKindError(msg string, kind error) error {
	return &kindError{msg: msg, kind: kind}
}

var (
	ErrNotFound = newKindError("customer not found", apperrors.ErrNotFound)

	ErrEmailAlreadyRegistered = newKindError("email is already registered", apperrors.ErrConflict)

	ErrNationalIDAlreadyRegistered = newKindError("national id is already registered", apperrors.ErrConflict)

	ErrCustomerHasActiveAccounts = newKindError("customer has active accounts", apperrors.ErrConflict)
)

// CustomerRepository is the customer store. Lookups that find nothing return
// an error matching apperrors.ErrNotFound.
type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindByEmail(ctx context.Context, email string) (*Customer, error)

	FindByNationalID(ctx context.Context, nationalID string) (*Customer, error)

	ExistsByID(ctx context.Context, customerID int64) (bool, error)

	// FindAll returns every customer, highest id first.
	FindAll(ctx context.Context) ([]*Customer, error)

	Delete(ctx context.Context, customerID int64) error
}
