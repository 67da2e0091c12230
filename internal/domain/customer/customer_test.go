package customer_test

import (
	"customer-service/internal/domain/customer"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validFields() customer.CustomerFields {
	return customer.CustomerFields{
		Name:       "Juan",
		LastName:   "Perez",
		NationalID: "12345678",
		Email:      "juan@x.com",
	}
}

func TestNewCustomer(t *testing.T) {
	timeBefore := time.Now()
	cust := customer.NewCustomer(validFields())
	timeAfter := time.Now()

	assert.NotNil(t, cust, "NewCustomer should return a non-nil customer")
	assert.Equal(t, "Juan", cust.Name)
	assert.Equal(t, "Perez", cust.LastName)
	assert.Equal(t, "12345678", cust.NationalID)
	assert.Equal(t, "juan@x.com", cust.Email)

	assert.Equal(t, int64(0), cust.ID, "ID is assigned by the store")
	assert.Equal(t, cust.CreatedAt, cust.UpdatedAt, "CreatedAt and UpdatedAt should initially be the same")
	assert.True(t, !cust.CreatedAt.Before(timeBefore) && !cust.CreatedAt.After(timeAfter), "CreatedAt should be around the time of creation")
}

func TestCustomer_Apply(t *testing.T) {
	cust := customer.NewCustomer(validFields())
	cust.ID = 12
	initialUpdate := cust.UpdatedAt
	time.Sleep(time.Millisecond)

	cust.Apply(customer.CustomerFields{
		Name:       "Ana",
		LastName:   "O'Neil",
		NationalID: "87654321",
		Email:      "ana@x.com",
	})

	assert.Equal(t, int64(12), cust.ID, "Apply must not touch the identity")
	assert.Equal(t, "Ana", cust.Name)
	assert.Equal(t, "O'Neil", cust.LastName)
	assert.Equal(t, "87654321", cust.NationalID)
	assert.Equal(t, "ana@x.com", cust.Email)
	assert.True(t, cust.UpdatedAt.After(initialUpdate), "UpdatedAt should move forward")
}

func TestCustomer_Fields(t *testing.T) {
	cust := customer.NewCustomer(validFields())
	assert.Equal(t, validFields(), cust.Fields())
}

func TestCustomerFields_Normalize(t *testing.T) {
	fields := customer.CustomerFields{
		Name:       "  Juan ",
		LastName:   "\tPerez",
		NationalID: " 12345678 ",
		Email:      "juan@x.com  ",
	}
	assert.Equal(t, validFields(), fields.Normalize())
}
