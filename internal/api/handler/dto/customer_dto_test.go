package dto

import (
	"customer-service/internal/domain/customer"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRequestToFields(t *testing.T) {
	req := CustomerRequest{Name: "Juan", LastName: "Perez", NationalID: "12345678", Email: "juan@x.com"}

	assert.Equal(t, customer.CustomerFields{
		Name:       "Juan",
		LastName:   "Perez",
		NationalID: "12345678",
		Email:      "juan@x.com",
	}, req.ToFields())
}

func TestCustomerRequestWireNames(t *testing.T) {
	var req CustomerRequest
	err := json.Unmarshal([]byte(`{"name":"Juan","lastname":"Perez","dni":"12345678","email":"juan@x.com"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "Perez", req.LastName)
	assert.Equal(t, "12345678", req.NationalID)
}

func TestNewCustomerResponse(t *testing.T) {
	now := time.Now()
	cust := &customer.Customer{
		ID:         4,
		Name:       "Ana",
		LastName:   "Gomez",
		NationalID: "87654321",
		Email:      "ana@x.com",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	resp := NewCustomerResponse(cust)

	assert.Equal(t, int64(4), resp.ID)
	assert.Equal(t, "Gomez", resp.LastName)
	assert.Equal(t, "87654321", resp.NationalID)
	assert.Equal(t, now, resp.CreatedAt)
	assert.Equal(t, CustomerResponse{}, NewCustomerResponse(nil))
}

func TestNewCustomerListResponse(t *testing.T) {
	resp := NewCustomerListResponse([]*customer.Customer{{ID: 3}, {ID: 1}})
	require.Len(t, resp, 2)
	assert.Equal(t, int64(3), resp[0].ID)
	assert.Equal(t, int64(1), resp[1].ID)

	empty := NewCustomerListResponse(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
