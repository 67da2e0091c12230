package customer

import (
	"context"
	"customer-service/internal/event"
	"customer-service/internal/infrastructure/monitoring"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"
)

const (
	inputValidationPassed = "Input validation passed"
	customerNotFound      = "Customer not found by repository"
)

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	CreateCustomer(ctx context.Context, fields CustomerFields) (*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, fields CustomerFields) (*Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo       CustomerRepository
	uniqueness UniquenessValidator
	guard      DeletionGuard
	pub        event.EventPublisher
	logger     *slog.Logger
}

// NewCustomerService wires the lifecycle operations. A nil publisher disables
// lifecycle events.
func NewCustomerService(repo CustomerRepository, uniqueness UniquenessValidator, guard DeletionGuard, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if uniqueness == nil {
		panic("uniqueness validator cannot be nil")
	}
	if guard == nil {
		panic("deletion guard cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}
	if eventPublisher == nil {
		logger.Warn("No event publisher provided to NewCustomerService, lifecycle events are disabled")
	}

	return &customerService{
		repo:       repo,
		uniqueness: uniqueness,
		guard:      guard,
		pub:        eventPublisher,
		logger:     logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID: cust.ID,
		Name:       cust.Name,
		LastName:   cust.LastName,
		NationalID: cust.NationalID,
		Email:      cust.Email,
		CreatedAt:  cust.CreatedAt,
		UpdatedAt:  cust.UpdatedAt,
	}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []*Customer{}
	}

	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].ID > customers[j].ID
	})

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to get customer by ID")

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	logger.InfoContext(ctx, "Successfully retrieved customer")
	return customer, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, fields CustomerFields) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	fields = fields.Normalize()
	if err := ValidateFields(fields); err != nil {
		s.logger.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		return nil, err
	}
	if err := s.uniqueness.Validate(ctx, fields, nil); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, inputValidationPassed)

	customer := NewCustomer(fields)
	if err := s.repo.Save(ctx, customer); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	logger := s.logger.With(slog.Int64("customerID", customer.ID))
	monitoring.RecordCustomerOperation("create")
	s.publishCreated(ctx, logger, customer)

	logger.InfoContext(ctx, "Successfully created new customer")
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, fields CustomerFields) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to update customer")

	fields = fields.Normalize()
	if err := ValidateFields(fields); err != nil {
		logger.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		return nil, err
	}

	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, "Customer not found by repository for update")
			return nil, ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find customer %d to update: %w", customerID, err)
	}

	if err := s.uniqueness.Validate(ctx, fields, &customerID); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, inputValidationPassed)

	customer.Apply(fields)
	if err := s.repo.Save(ctx, customer); err != nil {
		logger.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		if errors.Is(err, ErrNotFound) {
			logger.ErrorContext(ctx, "Customer disappeared before save completed")
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to save updated customer %d: %w", customerID, err)
	}

	monitoring.RecordCustomerOperation("update")
	s.publishUpdated(ctx, logger, customer)

	logger.InfoContext(ctx, "Successfully updated customer")
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to delete customer")

	if err := s.guard.GuardDelete(ctx, customerID); err != nil {
		logger.WarnContext(ctx, "Deletion rejected", slog.Any("error", err))
		return err
	}

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, "Customer disappeared before delete completed")
			return ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	monitoring.RecordCustomerOperation("delete")
	s.publishDeleted(ctx, logger, customerID)

	logger.InfoContext(ctx, "Successfully deleted customer")
	return nil
}

func (s *customerService) publishCreated(ctx context.Context, logger *slog.Logger, customer *Customer) {
	if s.pub == nil {
		return
	}
	createdEvent := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(customer),
	}
	if err := s.pub.PublishCustomerCreated(ctx, createdEvent); err != nil {
		logger.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", err))
		return
	}
	logger.InfoContext(ctx, "Successfully published customer creation event")
}

func (s *customerService) publishUpdated(ctx context.Context, logger *slog.Logger, customer *Customer) {
	if s.pub == nil {
		return
	}
	updatedEvent := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(customer),
	}
	if err := s.pub.PublishCustomerUpdated(ctx, updatedEvent); err != nil {
		logger.ErrorContext(ctx, "Customer updated, but FAILED to publish update event", slog.Any("error", err))
		return
	}
	logger.InfoContext(ctx, "Successfully published customer update event")
}

func (s *customerService) publishDeleted(ctx context.Context, logger *slog.Logger, customerID int64) {
	if s.pub == nil {
		return
	}
	deletedEvent := event.CustomerDeletedEvent{
		Timestamp:  time.Now(),
		CustomerID: customerID,
	}
	if err := s.pub.PublishCustomerDeleted(ctx, deletedEvent); err != nil {
		logger.ErrorContext(ctx, "Customer deleted, but FAILED to publish deletion event", slog.Any("error", err))
		return
	}
	logger.InfoContext(ctx, "Successfully published customer deletion event")
}
