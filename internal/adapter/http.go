package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/utils"
	"github.com/MKhiriev/go-cv-tailor/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.ServerAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.ServerAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/auth/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken, and the created user
// record (including the starting credit grant) is decoded from the body.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	var created models.User
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.User{}, fmt.Errorf("decode register response: %w", err)
	}

	h.SetToken(token)
	return created, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login, stores the bearer token from the Authorization header
// via SetToken, and returns the server-side user record with current credit
// counters together with the session token.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, models.Token{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	var found models.User
	if err = json.Unmarshal(resp.Body(), &found); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("decode login response: %w", err)
	}

	h.SetToken(token)
	return found, models.Token{SignedString: token, UserID: found.UserID}, nil
}

// VerifyEmail implements [ServerAdapter] via POST /api/auth/verify.
func (h *httpServerAdapter) VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/verify")
	if err != nil {
		return fmt.Errorf("verify email request: %w", err)
	}

	return mapHTTPError(resp)
}

// RequestPasswordReset implements [ServerAdapter] via POST /api/auth/reset.
func (h *httpServerAdapter) RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/reset")
	if err != nil {
		return fmt.Errorf("password reset request: %w", err)
	}

	return mapHTTPError(resp)
}

// ConfirmPasswordReset implements [ServerAdapter] via POST /api/auth/reset/confirm.
func (h *httpServerAdapter) ConfirmPasswordReset(ctx context.Context, req models.PasswordResetConfirm) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/reset/confirm")
	if err != nil {
		return fmt.Errorf("password reset confirm request: %w", err)
	}

	return mapHTTPError(resp)
}

// GetBalance implements [ServerAdapter] via GET /api/credits/.
func (h *httpServerAdapter) GetBalance(ctx context.Context) (models.CreditBalance, error) {
	resp, err := h.authedRequest(ctx).Get("/api/credits/")
	if err != nil {
		return models.CreditBalance{}, fmt.Errorf("get balance request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CreditBalance{}, err
	}

	var balance models.CreditBalance
	if err = json.Unmarshal(resp.Body(), &balance); err != nil {
		return models.CreditBalance{}, fmt.Errorf("decode balance response: %w", err)
	}

	return balance, nil
}

// SpendCredit implements [ServerAdapter] via POST /api/credits/spend. The
// deduction is atomic on the server; a 402 response maps to
// [ErrInsufficientCredits].
func (h *httpServerAdapter) SpendCredit(ctx context.Context) (models.CreditBalance, error) {
	resp, err := h.authedRequest(ctx).Post("/api/credits/spend")
	if err != nil {
		return models.CreditBalance{}, fmt.Errorf("spend credit request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CreditBalance{}, err
	}

	var balance models.CreditBalance
	if err = json.Unmarshal(resp.Body(), &balance); err != nil {
		return models.CreditBalance{}, fmt.Errorf("decode spend response: %w", err)
	}

	return balance, nil
}

// CreateCheckout implements [ServerAdapter] via POST /api/billing/checkout.
func (h *httpServerAdapter) CreateCheckout(ctx context.Context, req models.CheckoutRequest) (models.CheckoutSession, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/billing/checkout")
	if err != nil {
		return models.CheckoutSession{}, fmt.Errorf("create checkout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CheckoutSession{}, err
	}

	var session models.CheckoutSession
	if err = json.Unmarshal(resp.Body(), &session); err != nil {
		return models.CheckoutSession{}, fmt.Errorf("decode checkout response: %w", err)
	}

	return session, nil
}

// ListUsers implements [ServerAdapter] via GET /api/admin/users.
func (h *httpServerAdapter) ListUsers(ctx context.Context, query models.UserListQuery) ([]models.User, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("limit", strconv.Itoa(query.Limit)).
		SetQueryParam("offset", strconv.Itoa(query.Offset)).
		Get("/api/admin/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var users []models.User
	if err = json.Unmarshal(resp.Body(), &users); err != nil {
		return nil, fmt.Errorf("decode list users response: %w", err)
	}

	return users, nil
}

// SearchUsers implements [ServerAdapter] via GET /api/admin/users/search.
func (h *httpServerAdapter) SearchUsers(ctx context.Context, email string) ([]models.User, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("email", email).
		Get("/api/admin/users/search")
	if err != nil {
		return nil, fmt.Errorf("search users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var users []models.User
	if err = json.Unmarshal(resp.Body(), &users); err != nil {
		return nil, fmt.Errorf("decode search users response: %w", err)
	}

	return users, nil
}

// GrantCredits implements [ServerAdapter] via POST /api/admin/users/{id}/credits.
func (h *httpServerAdapter) GrantCredits(ctx context.Context, userID int64, req models.GrantCreditsRequest) (models.CreditBalance, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(fmt.Sprintf("/api/admin/users/%d/credits", userID))
	if err != nil {
		return models.CreditBalance{}, fmt.Errorf("grant credits request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CreditBalance{}, err
	}

	var balance models.CreditBalance
	if err = json.Unmarshal(resp.Body(), &balance); err != nil {
		return models.CreditBalance{}, fmt.Errorf("decode grant credits response: %w", err)
	}

	return balance, nil
}

// ResetCredits implements [ServerAdapter] via POST /api/admin/users/{id}/reset.
func (h *httpServerAdapter) ResetCredits(ctx context.Context, userID int64) error {
	resp, err := h.authedRequest(ctx).
		Post(fmt.Sprintf("/api/admin/users/%d/reset", userID))
	if err != nil {
		return fmt.Errorf("reset credits request: %w", err)
	}

	return mapHTTPError(resp)
}

// SetBlocked implements [ServerAdapter] via POST /api/admin/users/{id}/block.
func (h *httpServerAdapter) SetBlocked(ctx context.Context, userID int64, req models.BlockRequest) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(fmt.Sprintf("/api/admin/users/%d/block", userID))
	if err != nil {
		return fmt.Errorf("set blocked request: %w", err)
	}

	return mapHTTPError(resp)
}

// GetStats implements [ServerAdapter] via GET /api/admin/stats.
func (h *httpServerAdapter) GetStats(ctx context.Context) (models.AdminStats, error) {
	resp, err := h.authedRequest(ctx).Get("/api/admin/stats")
	if err != nil {
		return models.AdminStats{}, fmt.Errorf("get stats request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AdminStats{}, err
	}

	var stats models.AdminStats
	if err = json.Unmarshal(resp.Body(), &stats); err != nil {
		return models.AdminStats{}, fmt.Errorf("decode stats response: %w", err)
	}

	return stats, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
