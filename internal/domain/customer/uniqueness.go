package customer

import (
	"context"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// UniquenessValidator rejects field values already held by another customer.
type UniquenessValidator interface {
	// Validate checks email first, then national id. excludingID is nil on
	// create and the id being updated on update.
	Validate(ctx context.Context, candidate CustomerFields, excludingID *int64) error
}

var _ UniquenessValidator = (*uniquenessValidator)(nil)

type uniquenessValidator struct {
	repo   CustomerRepository
	logger *slog.Logger
}

func NewUniquenessValidator(repo CustomerRepository, logger *slog.Logger) UniquenessValidator {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewUniquenessValidator, using default stderr handler")
	}
	return &uniquenessValidator{
		repo:   repo,
		logger: logger.With(slog.String("component", "uniquenessValidator")),
	}
}

func (v *uniquenessValidator) Validate(ctx context.Context, candidate CustomerFields, excludingID *int64) error {
	holder, err := v.repo.FindByEmail(ctx, candidate.Email)
	if err := v.check(ctx, "email", holder, err, excludingID, ErrEmailAlreadyRegistered); err != nil {
		return err
	}

	holder, err = v.repo.FindByNationalID(ctx, candidate.NationalID)
	return v.check(ctx, "dni", holder, err, excludingID, ErrNationalIDAlreadyRegistered)
}

func (v *uniquenessValidator) check(ctx context.Context, field string, holder *Customer, lookupErr error, excludingID *int64, collision error) error {
	if lookupErr != nil {
		if errors.Is(lookupErr, apperrors.ErrNotFound) {
			return nil
		}
		v.logger.ErrorContext(ctx, "Uniqueness lookup failed", slog.String("field", field), slog.Any("error", lookupErr))
		return fmt.Errorf("failed to check %s uniqueness: %w", field, lookupErr)
	}
	if holder == nil {
		return nil
	}
	if excludingID != nil && holder.ID == *excludingID {
		return nil
	}
	v.logger.WarnContext(ctx, "Uniqueness check failed",
		slog.String("field", field),
		slog.Int64("holderID", holder.ID))
	return collision
}
