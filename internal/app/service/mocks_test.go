package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"wallet_tracker/internal/domain/entity"
	"wallet_tracker/internal/infrastructure/tokenstore"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockBackend) Verify(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockBackend) ListWallets(ctx context.Context, token string) ([]entity.Wallet, error) {
	args := m.Called(ctx, token)
	wallets, _ := args.Get(0).([]entity.Wallet)
	return wallets, args.Error(1)
}

func (m *mockBackend) AddWallet(ctx context.Context, token string, wallet entity.Wallet) (entity.Wallet, error) {
	args := m.Called(ctx, token, wallet)
	return args.Get(0).(entity.Wallet), args.Error(1)
}

func (m *mockBackend) RemoveWallet(ctx context.Context, token string, address string) error {
	return m.Called(ctx, token, address).Error(0)
}

func (m *mockBackend) GetHoldings(ctx context.Context, token string, walletAddress string) ([]entity.TokenHolding, error) {
	args := m.Called(ctx, token, walletAddress)
	holdings, _ := args.Get(0).([]entity.TokenHolding)
	return holdings, args.Error(1)
}

// memoryStore is an in-memory port.TokenStore.
type memoryStore struct {
	mu      sync.Mutex
	token   string
	saves   int
	clears  int
	loadErr error
}

func (s *memoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return "", s.loadErr
	}
	if s.token == "" {
		return "", tokenstore.ErrNoToken
	}
	return s.token, nil
}

func (s *memoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.saves++
	return nil
}

func (s *memoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.clears++
	return nil
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// staticAuth is a port.AuthService with a fixed token.
type staticAuth struct {
	mu          sync.Mutex
	token       string
	invalidated int
}

func (a *staticAuth) Login(context.Context, string, string) error { return nil }
func (a *staticAuth) Logout() error                               { return nil }
func (a *staticAuth) Restore(context.Context) error               { return nil }

func (a *staticAuth) Token() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token == "" {
		return "", ErrNotAuthenticated
	}
	return a.token, nil
}

func (a *staticAuth) IsAuthenticated() bool {
	_, err := a.Token()
	return err == nil
}

func (a *staticAuth) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
	a.invalidated++
}
