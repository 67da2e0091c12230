package handler

import (
	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "customerID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: customerID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid customerID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

func (h *CustomerHandler) logServiceError(r *http.Request, msg string, err error) {
	level := slog.LevelWarn
	if status, _ := statusFor(err); status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, msg, slog.Any("error", err))
}

// ListCustomers handles GET /customer
// @Summary List customers
// @Description Retrieves every customer, highest id first.
// @Tags Customers
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.CustomerResponse} "List of customers"
// @Failure 500 {object} dto.Envelope "Internal server error"
// @Router /customer [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list customers request")

	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.logServiceError(r, "Service failed to list customers", err)
		respondError(w, err)
		return
	}

	resp := dto.NewCustomerListResponse(customers)
	h.logger.InfoContext(r.Context(), "Customers listed successfully", slog.Int("count", len(resp)))
	respondEnvelope(w, http.StatusOK, "customers retrieved", resp)
}

// GetCustomer handles GET /customer/{customerID}
// @Summary Retrieve customer details
// @Description Retrieves a single customer by id.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.Envelope{data=dto.CustomerResponse} "Customer details retrieved"
// @Failure 400 {object} dto.Envelope "Invalid customer ID format"
// @Failure 404 {object} dto.Envelope "Customer not found"
// @Failure 500 {object} dto.Envelope "Internal server error"
// @Router /customer/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	cust, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.logServiceError(r, "Service failed to get customer", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer retrieved successfully", slog.Int64("customerID", customerID))
	respondEnvelope(w, http.StatusOK, "customer retrieved", dto.NewCustomerResponse(cust))
}

// CreateCustomer handles POST /customer
// @Summary Create a new customer
// @Description Creates a customer after field and uniqueness validation.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer fields"
// @Success 201 {object} dto.Envelope{data=dto.CustomerResponse} "Customer successfully created"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid payload, field validation or uniqueness failure"
// @Failure 409 {object} dto.Envelope "Concurrent write conflict"
// @Failure 500 {object} dto.Envelope "Internal server error"
// @Router /customer [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create customer request")

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateCustomer(r.Context(), req.ToFields())
	if err != nil {
		h.logServiceError(r, "Service failed to create customer", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer created successfully", slog.Int64("customerID", created.ID))
	respondEnvelope(w, http.StatusCreated, "customer created", dto.NewCustomerResponse(created))
}

// UpdateCustomer handles PUT /customer/{customerID}
// @Summary Update a customer
// @Description Overwrites every mutable field of an existing customer.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.CustomerRequest true "Customer fields"
// @Success 200 {object} dto.Envelope{data=dto.CustomerResponse} "Customer successfully updated"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid payload, field validation or uniqueness failure"
// @Failure 404 {object} dto.Envelope "Customer not found"
// @Failure 409 {object} dto.Envelope "Concurrent write conflict"
// @Failure 500 {object} dto.Envelope "Internal server error"
// @Router /customer/{customerID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	updated, err := h.service.UpdateCustomer(r.Context(), customerID, req.ToFields())
	if err != nil {
		h.logServiceError(r, "Service failed to update customer", err)
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer updated successfully", slog.Int64("customerID", customerID))
	respondEnvelope(w, http.StatusOK, "customer updated", dto.NewCustomerResponse(updated))
}

// DeleteCustomer handles DELETE /customer/{customerID}
// @Summary Delete a customer
// @Description Removes a customer that holds no active accounts in the accounts service.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.Envelope "Customer successfully deleted"
// @Failure 400 {object} dto.Envelope "Invalid customer ID or customer has active accounts"
// @Failure 404 {object} dto.Envelope "Customer not found, or not found in the accounts service"
// @Failure 500 {object} dto.Envelope "Accounts service returned no data"
// @Failure 502 {object} dto.Envelope "Accounts service unavailable"
// @Router /customer/{customerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		if errors.Is(err, customer.ErrCustomerHasActiveAccounts) {
			h.logger.InfoContext(r.Context(), "Customer deletion vetoed", slog.Int64("customerID", customerID))
		} else {
			h.logServiceError(r, "Service failed to delete customer", err)
		}
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer deleted successfully", slog.Int64("customerID", customerID))
	respondEnvelope(w, http.StatusOK, "customer deleted", nil)
}
