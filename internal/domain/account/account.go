// Package account holds the read-only view of accounts owned by the accounts
// service. This service never mutates them.
package account

import (
	"context"

	"github.com/shopspring/decimal"
)

type State string

// StateActive is the only state that blocks a customer deletion; the
// accounts service owns the rest of the vocabulary.
const StateActive State = "ACTIVE"

type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Type          string          `json:"type"`
	CustomerID    int64           `json:"customerId"`
	State         State           `json:"state"`
}

func (a Account) IsActive() bool {
	return a.State == StateActive
}

// AccountsPeer fetches the accounts a customer holds in the accounts service.
//
// A nil slice with a nil error is never returned: implementations report a
// response without usable data as apperrors.ErrUpstreamDataMissing, while an
// empty non-nil slice means the customer has no accounts.
type AccountsPeer interface {
	FetchAccounts(ctx context.Context, customerID int64) ([]Account, error)
}

func CountActive(accounts []Account) int {
	n := 0
	for _, a := range accounts {
		if a.IsActive() {
			n++
		}
	}
	return n
}
