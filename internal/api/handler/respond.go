package handler

import (
	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

const unexpectedErrorMessage = "An unexpected error occurred."

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"status":500,"message":"Internal server error","data":null}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondEnvelope(w http.ResponseWriter, status int, message string, data any) {
	respondJSON(w, status, dto.Envelope{Status: status, Message: message, Data: data})
}

// respondError maps an error kind onto a status code and envelope. Messages of
// uncategorized errors are never sent to the client.
func respondError(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	var data any

	var fieldErrs *apperrors.FieldErrors
	if errors.As(err, &fieldErrs) && fieldErrs.HasErrors() {
		data = fieldErrs.Fields
	}
	if status == http.StatusInternalServerError {
		slog.Default().Error("Request failed with internal error", "error", err)
	}

	respondEnvelope(w, status, message, data)
}

// NotFound answers paths no route matches.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondEnvelope(w, http.StatusNotFound, "resource not found", nil)
}

// MethodNotAllowed answers a known path requested with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondEnvelope(w, http.StatusMethodNotAllowed, "method not allowed", nil)
}

func statusFor(err error) (int, string) {
	var fieldErrs *apperrors.FieldErrors
	var validationErr *apperrors.ValidationError

	switch {
	case errors.As(err, &fieldErrs):
		return http.StatusBadRequest, apperrors.ErrValidation.Error()
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, customer.ErrEmailAlreadyRegistered),
		errors.Is(err, customer.ErrNationalIDAlreadyRegistered),
		errors.Is(err, customer.ErrCustomerHasActiveAccounts):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrUpstreamNotFound):
		return http.StatusNotFound, apperrors.ErrUpstreamNotFound.Error()
	case errors.Is(err, apperrors.ErrUpstreamDataMissing):
		return http.StatusInternalServerError, apperrors.ErrUpstreamDataMissing.Error()
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		return http.StatusBadGateway, apperrors.ErrUpstreamUnavailable.Error()
	case errors.Is(err, customer.ErrNotFound):
		return http.StatusNotFound, customer.ErrNotFound.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrAlreadyExists):
		return http.StatusConflict, apperrors.ErrConflict.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, apperrors.ErrUnauthorized.Error()
	default:
		return http.StatusInternalServerError, unexpectedErrorMessage
	}
}
