package customer

import (
	"strings"
	"time"
)

type Customer struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	LastName   string    `json:"lastname"`
	NationalID string    `json:"dni"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CustomerFields is the mutable part of a customer, as supplied on create and update.
type CustomerFields struct {
	Name       string `json:"name" validate:"required,min=2,max=50,personname"`
	LastName   string `json:"lastname" validate:"required,min=2,max=50,personname"`
	NationalID string `json:"dni" validate:"required,len=8,onlydigits"`
	Email      string `json:"email" validate:"required,email,max=100"`
}

func (f CustomerFields) Normalize() CustomerFields {
	return CustomerFields{
		Name:       strings.TrimSpace(f.Name),
		LastName:   strings.TrimSpace(f.LastName),
		NationalID: strings.TrimSpace(f.NationalID),
		Email:      strings.TrimSpace(f.Email),
	}
}

func NewCustomer(fields CustomerFields) *Customer {
	now := time.Now()
	return &Customer{
		Name:       fields.Name,
		LastName:   fields.LastName,
		NationalID: fields.NationalID,
		Email:      fields.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Apply overwrites every mutable field. The identity is left untouched.
func (c *Customer) Apply(fields CustomerFields) {
	c.Name = fields.Name
	c.LastName = fields.LastName
	c.NationalID = fields.NationalID
	c.Email = fields.Email
	c.UpdatedAt = time.Now()
}

func (c *Customer) Fields() CustomerFields {
	return CustomerFields{
		Name:       c.Name,
		LastName:   c.LastName,
		NationalID: c.NationalID,
		Email:      c.Email,
	}
}
