// Package client implements the synchronous call to the user directory made before an
// order is accepted.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/allisson/orders/internal/order/domain"
)

// UserInfo is the user directory record returned by GET /users/{id}.
type UserInfo struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// maxResponseBytes caps the user payload read from the directory.
const maxResponseBytes = 1 << 20

// UserClient calls GET {baseURL}/users/{id}. Every request is bounded by the client timeout.
type UserClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewUserClient creates a UserClient with an instrumented transport.
func NewUserClient(baseURL string, timeout time.Duration, logger *slog.Logger) *UserClient {
	return NewUserClientWithHTTPClient(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, logger)
}

// NewUserClientWithHTTPClient creates a UserClient using the given http.Client.
func NewUserClientWithHTTPClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *UserClient {
	return &UserClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// ValidateUserExists returns the user when the directory knows it. A 404 yields
// domain.ErrUserNotFound; anything else that is not a decodable 200 yields
// domain.ErrValidationUnavailable.
func (c *UserClient) ValidateUserExists(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	url := fmt.Sprintf("%s/users/%s", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidationUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("user directory unreachable",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidationUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domain.ErrUserNotFound
	default:
		c.logger.Warn("user directory returned unexpected status",
			slog.String("user_id", userID.String()),
			slog.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrValidationUnavailable, resp.StatusCode)
	}

	var user UserInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %w", domain.ErrValidationUnavailable, err)
	}
	if user.ID != userID {
		return nil, fmt.Errorf("%w: response id %s does not match %s",
			domain.ErrValidationUnavailable, user.ID, userID)
	}

	return &user, nil
}
