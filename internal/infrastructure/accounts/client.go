// Package accounts is the HTTP client for the accounts service.
package accounts

import (
	"bytes"
	"context"
	"customer-service/internal/config"
	"customer-service/internal/domain/account"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	peerName       = "accounts"
	defaultTimeout = 3 * time.Second
	maxBodyBytes   = 1 << 20
)

var _ account.AccountsPeer = (*Client)(nil)

// envelope is the accounts service response wrapper. Data stays nil when the
// field is null or absent, which is not the same as an empty list.
type envelope struct {
	Status  int                `json:"status"`
	Message string             `json:"message"`
	Data    *[]account.Account `json:"data"`
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg config.AccountsConfig, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("accounts base URL is empty in configuration")
	}
	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid accounts base URL %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to accounts.NewClient, using default stderr handler")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "AccountsClient", "baseURL", baseURL.String()),
	}, nil
}

// FetchAccounts calls GET /accounts/customer/{id}.
func (c *Client) FetchAccounts(ctx context.Context, customerID int64) ([]account.Account, error) {
	start := time.Now()
	accounts, outcome, err := c.fetch(ctx, customerID)
	monitoring.RecordPeerCall(peerName, outcome, time.Since(start))
	return accounts, err
}

func (c *Client) fetch(ctx context.Context, customerID int64) ([]account.Account, string, error) {
	logger := c.logger.With(slog.Int64("customerID", customerID))
	endpoint := c.baseURL.JoinPath("accounts", "customer", strconv.FormatInt(customerID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, monitoring.OutcomeError, fmt.Errorf("failed to build accounts request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger.DebugContext(ctx, "Requesting customer accounts", slog.String("url", endpoint.String()))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ErrorContext(ctx, "Accounts service request failed", slog.Any("error", err))
		return nil, monitoring.OutcomeUnavailable, unavailable("accounts service unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read accounts response", slog.Any("error", err))
		return nil, monitoring.OutcomeUnavailable, unavailable("failed to read accounts service response", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		logger.WarnContext(ctx, "Accounts service answered 404")
		return nil, monitoring.OutcomeNotFound, apperrors.WrapUpstreamError(apperrors.ErrUpstreamNotFound, peerName,
			apperrors.ErrUpstreamNotFound.Error(), apperrors.ErrUpstreamUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.ErrorContext(ctx, "Accounts service answered with an error status", slog.Int("status", resp.StatusCode))
		return nil, monitoring.OutcomeUnavailable, unavailable(
			fmt.Sprintf("accounts service answered %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)), nil)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		logger.ErrorContext(ctx, "Accounts service returned an empty body")
		return nil, monitoring.OutcomeDataMissing, dataMissing()
	}

	var env *envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		logger.ErrorContext(ctx, "Accounts service returned a malformed body", slog.Any("error", err))
		return nil, monitoring.OutcomeUnavailable, unavailable("accounts service returned a malformed response", err)
	}
	if env == nil || env.Data == nil {
		logger.ErrorContext(ctx, "Accounts service returned no data")
		return nil, monitoring.OutcomeDataMissing, dataMissing()
	}

	accounts := *env.Data
	logger.InfoContext(ctx, "Fetched customer accounts", slog.Int("count", len(accounts)))
	return accounts, monitoring.OutcomeSuccess, nil
}

func unavailable(message string, cause error) error {
	return apperrors.WrapUpstreamError(apperrors.ErrUpstreamUnavailable, peerName, message, cause)
}

func dataMissing() error {
	return apperrors.WrapUpstreamError(apperrors.ErrUpstreamDataMissing, peerName, "accounts service returned no data", nil)
}
