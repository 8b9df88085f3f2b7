package backendclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxErrorMessageLen caps how many bytes of a raw error body end up in APIError.
const maxErrorMessageLen = 200

var (
	// ErrUnauthorized is returned when the backend rejects the bearer token or credentials.
	ErrUnauthorized = errors.New("backend: unauthorized")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("backend: not found")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend %s %s failed with status %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap lets errors.Is match ErrUnauthorized and ErrNotFound.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case fasthttp.StatusUnauthorized, fasthttp.StatusForbidden:
		return ErrUnauthorized
	case fasthttp.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying fasthttp client.
func WithHTTPClient(hc *fasthttp.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithRateLimiter throttles outgoing requests.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// Client talks to the portfolio backend over fasthttp.
type Client struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

var _ port.BackendClient = (*Client)(nil)

// New creates a backend client rooted at baseURL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		client:  &fasthttp.Client{Name: "wallet-tracker"},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("BackendClient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	token := resp.token()
	if token == "" {
		return "", fmt.Errorf("backend POST /auth/login returned no token")
	}
	return token, nil
}

// Verify checks that token is still accepted.
func (c *Client) Verify(ctx context.Context, token string) error {
	return c.do(ctx, fasthttp.MethodGet, "/auth/verify", token, nil, nil)
}

// ListWallets returns the wallets tracked for the session.
func (c *Client) ListWallets(ctx context.Context, token string) ([]entity.Wallet, error) {
	body, err := c.doRaw(ctx, fasthttp.MethodGet, "/wallets", token, nil)
	if err != nil {
		return nil, err
	}

	var direct []entity.Wallet
	if errDirect := json.Unmarshal(body, &direct); errDirect == nil {
		return direct, nil
	}
	var wrapped walletsEnvelope
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode wallets response: %w", err)
	}
	return wrapped.Wallets, nil
}

// AddWallet starts tracking wallet and returns the backend's copy of it.
func (c *Client) AddWallet(ctx context.Context, token string, wallet entity.Wallet) (entity.Wallet, error) {
	var created entity.Wallet
	if err := c.do(ctx, fasthttp.MethodPost, "/wallets", token, wallet, &created); err != nil {
		return entity.Wallet{}, err
	}
	if created.Address == "" {
		created = wallet
	}
	return created, nil
}

// RemoveWallet stops tracking address.
func (c *Client) RemoveWallet(ctx context.Context, token string, address string) error {
	return c.do(ctx, fasthttp.MethodDelete, "/wallets/"+url.PathEscape(address), token, nil, nil)
}

// GetHoldings returns the token balances of one wallet. Holdings without an
// owning wallet are attributed to walletAddress.
func (c *Client) GetHoldings(ctx context.Context, token string, walletAddress string) ([]entity.TokenHolding, error) {
	path := "/wallets/" + url.PathEscape(walletAddress) + "/tokens"
	body, err := c.doRaw(ctx, fasthttp.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}

	holdings, err := decodeHoldings(body)
	if err != nil {
		c.logger.Error("Failed to decode holdings response",
			zap.String("wallet", walletAddress),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return nil, fmt.Errorf("failed to decode holdings for %s: %w", walletAddress, err)
	}

	for i := range holdings {
		if holdings[i].WalletAddress == "" {
			holdings[i].WalletAddress = walletAddress
		}
	}
	c.logger.Debug("Fetched holdings", zap.String("wallet", walletAddress), zap.Int("count", len(holdings)))
	return holdings, nil
}

func decodeHoldings(body []byte) ([]entity.TokenHolding, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var direct []entity.TokenHolding
		if err := json.Unmarshal(trimmed, &direct); err != nil {
			return nil, err
		}
		return direct, nil
	}
	var wrapped holdingsEnvelope
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Tokens == nil {
		return []entity.TokenHolding{}, nil
	}
	return wrapped.Tokens, nil
}

// do performs a request and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, in any, out any) error {
	body, err := c.doRaw(ctx, method, path, token, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path, token string, in any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	requestURL := c.baseURL + path

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	}
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body for %s %s: %w", method, path, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(payload)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	c.logger.Debug("Requesting backend", zap.String("method", method), zap.String("url", requestURL))

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to backend", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to backend (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	// Body is owned by resp, which is released on return.
	rawBody := append([]byte(nil), resp.Body()...)
	status := resp.StatusCode()

	if status < 200 || status >= 300 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: status, Message: errorMessage(rawBody)}
		if status == fasthttp.StatusUnauthorized {
			c.logger.Warn("Backend rejected credentials", zap.String("url", requestURL), zap.Int("statusCode", status))
		} else {
			c.logger.Error("Backend request failed",
				zap.String("url", requestURL),
				zap.Int("statusCode", status),
				zap.ByteString("responseBody", rawBody))
		}
		return nil, apiErr
	}
	return rawBody, nil
}

func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorMessageLen {
		cut := maxErrorMessageLen
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut]
	}
	return msg
}
