package customer

import (
	"context"
	"customer-service/internal/domain/account"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// DeletionGuard decides whether a customer may be removed. It never deletes.
type DeletionGuard interface {
	GuardDelete(ctx context.Context, customerID int64) error
}

var _ DeletionGuard = (*deletionGuard)(nil)

type deletionGuard struct {
	repo   CustomerRepository
	peer   account.AccountsPeer
	logger *slog.Logger
}

func NewDeletionGuard(repo CustomerRepository, peer account.AccountsPeer, logger *slog.Logger) DeletionGuard {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if peer == nil {
		panic("accounts peer cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewDeletionGuard, using default stderr handler")
	}
	return &deletionGuard{
		repo:   repo,
		peer:   peer,
		logger: logger.With(slog.String("component", "deletionGuard")),
	}
}

// GuardDelete runs the existence check, the peer fetch and the active account
// scan in that order and stops at the first failure.
func (g *deletionGuard) GuardDelete(ctx context.Context, customerID int64) error {
	logger := g.logger.With(slog.Int64("customerID", customerID))

	exists, err := g.repo.ExistsByID(ctx, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Existence check failed", slog.Any("error", err))
		monitoring.RecordDeletionGuard(monitoring.OutcomeError)
		return fmt.Errorf("failed to check customer %d existence: %w", customerID, err)
	}
	if !exists {
		logger.WarnContext(ctx, "Customer not found, skipping accounts lookup")
		monitoring.RecordDeletionGuard(monitoring.OutcomeCustomerMissing)
		return ErrNotFound
	}

	accounts, err := g.peer.FetchAccounts(ctx, customerID)
	if err != nil {
		logger.WarnContext(ctx, "Accounts lookup failed", slog.Any("error", err))
		monitoring.RecordDeletionGuard(peerOutcome(err))
		return err
	}
	if accounts == nil {
		logger.ErrorContext(ctx, "Accounts peer returned no data")
		monitoring.RecordDeletionGuard(monitoring.OutcomeDataMissing)
		return apperrors.WrapUpstreamError(apperrors.ErrUpstreamDataMissing, "accounts",
			"accounts service returned no data", nil)
	}

	if active := account.CountActive(accounts); active > 0 {
		logger.WarnContext(ctx, "Customer still holds active accounts",
			slog.Int("activeAccounts", active),
			slog.Int("totalAccounts", len(accounts)))
		monitoring.RecordDeletionGuard(monitoring.OutcomeActiveAccounts)
		return fmt.Errorf("cannot delete customer %d: %w", customerID, ErrCustomerHasActiveAccounts)
	}

	logger.InfoContext(ctx, "Deletion permitted", slog.Int("totalAccounts", len(accounts)))
	monitoring.RecordDeletionGuard(monitoring.OutcomeSuccess)
	return nil
}

func peerOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrUpstreamDataMissing):
		return monitoring.OutcomeDataMissing
	case errors.Is(err, apperrors.ErrUpstreamNotFound):
		return monitoring.OutcomeNotFound
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		return monitoring.OutcomeUnavailable
	default:
		return monitoring.OutcomeError
	}
}
