package handler_test

import (
	"bytes"
	"context"
	"customer-service/internal/api/handler"
	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerService struct {
	mock.Mock
}

var _ customer.CustomerService = (*MockCustomerService)(nil)

func (_m *MockCustomerService) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) CreateCustomer(ctx context.Context, fields customer.CustomerFields) (*customer.Customer, error) {
	ret := _m.Called(ctx, fields)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID int64, fields customer.CustomerFields) (*customer.Customer, error) {
	ret := _m.Called(ctx, customerID, fields)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var juan = customer.CustomerFields{Name: "Juan", LastName: "Perez", NationalID: "12345678", Email: "juan@x.com"}

func withCustomerID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("customerID", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) dto.Envelope {
	t.Helper()
	var raw struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return dto.Envelope{Status: raw.Status, Message: raw.Message, Data: raw.Data}
}

func TestNewCustomerHandlerPanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { handler.NewCustomerHandler(nil, testLogger) })
	assert.Panics(t, func() { handler.NewCustomerHandler(new(MockCustomerService), nil) })
}

func TestListCustomers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		mockService.On("ListCustomers", mock.Anything).Return([]*customer.Customer{{ID: 2, Name: "Ana"}, {ID: 1, Name: "Juan"}}, nil)

		rec := httptest.NewRecorder()
		h.ListCustomers(rec, httptest.NewRequest(http.MethodGet, "/customer", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var list []dto.CustomerResponse
		env := decodeEnvelope(t, rec, &list)
		assert.Equal(t, http.StatusOK, env.Status)
		require.Len(t, list, 2)
		assert.Equal(t, int64(2), list[0].ID)
		mockService.AssertExpectations(t)
	})

	t.Run("empty store yields empty array", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		mockService.On("ListCustomers", mock.Anything).Return(nil, nil)

		rec := httptest.NewRecorder()
		h.ListCustomers(rec, httptest.NewRequest(http.MethodGet, "/customer", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":200,"message":"customers retrieved","data":[]}`, rec.Body.String())
	})

	t.Run("store failure is not leaked", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		mockService.On("ListCustomers", mock.Anything).Return(nil, errors.New("connection refused"))

		rec := httptest.NewRecorder()
		h.ListCustomers(rec, httptest.NewRequest(http.MethodGet, "/customer", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestGetCustomer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		mockService.On("GetCustomer", mock.Anything, int64(1)).
			Return(&customer.Customer{ID: 1, Name: "Juan", LastName: "Perez", NationalID: "12345678", Email: "juan@x.com"}, nil)

		rec := httptest.NewRecorder()
		h.GetCustomer(rec, withCustomerID(httptest.NewRequest(http.MethodGet, "/customer/1", nil), "1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerResponse
		decodeEnvelope(t, rec, &resp)
		assert.Equal(t, "12345678", resp.NationalID)
		mockService.AssertExpectations(t)
	})

	t.Run("invalid customer ID", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		for _, id := range []string{"abc", "0", "-3"} {
			rec := httptest.NewRecorder()
			h.GetCustomer(rec, withCustomerID(httptest.NewRequest(http.MethodGet, "/customer/"+id, nil), id))
			assert.Equal(t, http.StatusBadRequest, rec.Code, id)
		}
		mockService.AssertNotCalled(t, "GetCustomer", mock.Anything, mock.Anything)
	})

	t.Run("customer not found", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		mockService.On("GetCustomer", mock.Anything, int64(9)).Return(nil, customer.ErrNotFound)

		rec := httptest.NewRecorder()
		h.GetCustomer(rec, withCustomerID(httptest.NewRequest(http.MethodGet, "/customer/9", nil), "9"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec, nil)
		assert.Equal(t, "customer not found", env.Message)
	})
}

func TestCreateCustomer(t *testing.T) {
	body := `{"name":"Juan","lastname":"Perez","dni":"12345678","email":"juan@x.com"}`

	t.Run("success", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		mockService.On("CreateCustomer", mock.Anything, juan).
			Return(&customer.Customer{ID: 5, Name: "Juan", LastName: "Perez", NationalID: "12345678", Email: "juan@x.com"}, nil)

		rec := httptest.NewRecorder()
		h.CreateCustomer(rec, httptest.NewRequest(http.MethodPost, "/customer", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.CustomerResponse
		env := decodeEnvelope(t, rec, &resp)
		assert.Equal(t, "customer created", env.Message)
		assert.Equal(t, int64(5), resp.ID)
		mockService.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)

		for _, payload := range []string{`{"name":`, `{"name":"Juan","unknown":1}`} {
			rec := httptest.NewRecorder()
			h.CreateCustomer(rec, httptest.NewRequest(http.MethodPost, "/customer", bytes.NewBufferString(payload)))
			assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
		}
		mockService.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	})

	t.Run("field validation returns field map", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		fieldErrs := &apperrors.FieldErrors{}
		fieldErrs.Add("dni", "dni must have exactly 8 digits")
		mockService.On("CreateCustomer", mock.Anything, juan).Return(nil, fieldErrs)

		rec := httptest.NewRecorder()
		h.CreateCustomer(rec, httptest.NewRequest(http.MethodPost, "/customer", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var fields map[string]string
		env := decodeEnvelope(t, rec, &fields)
		assert.Equal(t, apperrors.ErrValidation.Error(), env.Message)
		assert.Equal(t, map[string]string{"dni": "dni must have exactly 8 digits"}, fields)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		mockService.On("CreateCustomer", mock.Anything, juan).Return(nil, customer.ErrEmailAlreadyRegistered)

		rec := httptest.NewRecorder()
		h.CreateCustomer(rec, httptest.NewRequest(http.MethodPost, "/customer", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec, nil)
		assert.Equal(t, customer.ErrEmailAlreadyRegistered.Error(), env.Message)
	})

	t.Run("store unique violation is a conflict", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		storeErr := fmt.Errorf("failed to save new customer: %w", fmt.Errorf("%w: %w: customers_email_key", apperrors.ErrConflict, apperrors.ErrAlreadyExists))
		mockService.On("CreateCustomer", mock.Anything, juan).Return(nil, storeErr)

		rec := httptest.NewRecorder()
		h.CreateCustomer(rec, httptest.NewRequest(http.MethodPost, "/customer", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestUpdateCustomer(t *testing.T) {
	body := `{"name":"Juan","lastname":"Perez","dni":"12345678","email":"juan@x.com"}`

	t.Run("success", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		mockService.On("UpdateCustomer", mock.Anything, int64(3), juan).
			Return(&customer.Customer{ID: 3, Name: "Juan", LastName: "Perez", NationalID: "12345678", Email: "juan@x.com"}, nil)

		rec := httptest.NewRecorder()
		req := withCustomerID(httptest.NewRequest(http.MethodPut, "/customer/3", bytes.NewBufferString(body)), "3")
		h.UpdateCustomer(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerResponse
		env := decodeEnvelope(t, rec, &resp)
		assert.Equal(t, "customer updated", env.Message)
		assert.Equal(t, int64(3), resp.ID)
		mockService.AssertExpectations(t)
	})

	t.Run("unknown customer", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		mockService.On("UpdateCustomer", mock.Anything, int64(4), juan).Return(nil, customer.ErrNotFound)

		rec := httptest.NewRecorder()
		req := withCustomerID(httptest.NewRequest(http.MethodPut, "/customer/4", bytes.NewBufferString(body)), "4")
		h.UpdateCustomer(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("duplicate national id", func(t *testing.T) {
		mockService := new(MockCustomerService)
		h := handler.NewCustomerHandler(mockService, testLogger)
		mockService.On("UpdateCustomer", mock.Anything, int64(4), juan).Return(nil, customer.ErrNationalIDAlreadyRegistered)

		rec := httptest.NewRecorder()
		req := withCustomerID(httptest.NewRequest(http.MethodPut, "/customer/4", bytes.NewBufferString(body)), "4")
		h.UpdateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec, nil)
		assert.Equal(t, customer.ErrNationalIDAlreadyRegistered.Error(), env.Message)
	})
}

func TestDeleteCustomer(t *testing.T) {
	testCases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "success", serviceErr: nil, wantStatus: http.StatusOK},
		{name: "not found", serviceErr: customer.ErrNotFound, wantStatus: http.StatusNotFound},
		{
			name:       "active accounts",
			serviceErr: fmt.Errorf("cannot delete customer 1: %w", customer.ErrCustomerHasActiveAccounts),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "peer not found",
			serviceErr: apperrors.WrapUpstreamError(apperrors.ErrUpstreamNotFound, "accounts", "no accounts for customer", apperrors.ErrUpstreamUnavailable),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "peer data missing",
			serviceErr: apperrors.WrapUpstreamError(apperrors.ErrUpstreamDataMissing, "accounts", "accounts service returned no data", nil),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "peer unavailable",
			serviceErr: apperrors.WrapUpstreamError(apperrors.ErrUpstreamUnavailable, "accounts", "connection refused", errors.New("dial tcp")),
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockCustomerService)
			h := handler.NewCustomerHandler(mockService, testLogger)
			mockService.On("DeleteCustomer", mock.Anything, int64(1)).Return(tc.serviceErr)

			rec := httptest.NewRecorder()
			h.DeleteCustomer(rec, withCustomerID(httptest.NewRequest(http.MethodDelete, "/customer/1", nil), "1"))

			assert.Equal(t, tc.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec, nil)
			assert.Equal(t, tc.wantStatus, env.Status)
			mockService.AssertExpectations(t)
		})
	}
}
