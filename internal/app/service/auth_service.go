package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/infrastructure/backendclient"
	"wallet_tracker/internal/infrastructure/configloader"
	"wallet_tracker/internal/infrastructure/tokenstore"
)

var (
	// ErrNotAuthenticated is returned when an operation needs a session and there is none.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials is returned by Login for empty input or a rejected login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthServiceImpl implements port.AuthService.
type AuthServiceImpl struct {
	client     port.BackendClient
	store      port.TokenStore
	logger     port.Logger
	retries    int
	retryDelay time.Duration
	mu         sync.RWMutex
	token      string
}

var _ port.AuthService = (*AuthServiceImpl)(nil)

// NewAuthService creates a new instance of AuthServiceImpl.
func NewAuthService(client port.BackendClient, store port.TokenStore, l port.Logger, cfg *configloader.Config) *AuthServiceImpl {
	retries, delay := 1, time.Duration(0)
	if cfg != nil {
		retries = cfg.Auth.VerifyRetries
		delay = cfg.VerifyRetryDelay()
	}
	if retries <= 0 {
		retries = 1
	}
	return &AuthServiceImpl{
		client:     client,
		store:      store,
		logger:     l,
		retries:    retries,
		retryDelay: delay,
	}
}

// Login exchanges credentials for a token and persists it.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalidCredentials)
	}

	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, backendclient.ErrUnauthorized) {
			s.logger.Warn("Login rejected by backend", "email", email)
			return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		s.logger.Error("Login request failed", "email", email, "error", err)
		return fmt.Errorf("login failed: %w", err)
	}

	if err := s.store.Save(token); err != nil {
		// The session still works for this run.
		s.logger.Error("Failed to persist token", "error", err)
	}
	s.setToken(token)
	s.logger.Info("Logged in", "email", email)
	return nil
}

// Logout forgets the session locally.
func (s *AuthServiceImpl) Logout() error {
	s.setToken("")
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear stored token: %w", err)
	}
	s.logger.Info("Logged out")
	return nil
}

// Restore loads the stored token and verifies it. Verification is attempted up
// to the configured number of times with a fixed delay in between; a token the
// backend rejects is cleared right away.
func (s *AuthServiceImpl) Restore(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil {
		if errors.Is(err, tokenstore.ErrNoToken) {
			s.logger.Info("No stored session")
			return ErrNotAuthenticated
		}
		return fmt.Errorf("failed to load stored token: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		lastErr = s.client.Verify(ctx, token)
		if lastErr == nil {
			s.setToken(token)
			s.logger.Info("Stored session restored", "attempt", attempt)
			return nil
		}
		if errors.Is(lastErr, backendclient.ErrUnauthorized) {
			s.logger.Warn("Stored token rejected, clearing session")
			if err := s.store.Clear(); err != nil {
				s.logger.Error("Failed to clear rejected token", "error", err)
			}
			s.setToken("")
			return ErrNotAuthenticated
		}

		s.logger.Warn("Token verification failed", "attempt", attempt, "max_attempts", s.retries, "error", lastErr)
		if attempt == s.retries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}
	return fmt.Errorf("could not verify stored token after %d attempts: %w", s.retries, lastErr)
}

// Token returns the current bearer token.
func (s *AuthServiceImpl) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNotAuthenticated
	}
	return s.token, nil
}

func (s *AuthServiceImpl) IsAuthenticated() bool {
	_, err := s.Token()
	return err == nil
}

// Invalidate drops the session after the backend rejected the token mid-flight.
func (s *AuthServiceImpl) Invalidate() {
	s.setToken("")
	if err := s.store.Clear(); err != nil {
		s.logger.Error("Failed to clear rejected token", "error", err)
	}
}

func (s *AuthServiceImpl) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}
