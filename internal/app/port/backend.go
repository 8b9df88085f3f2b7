package port

import (
	"context"

	"wallet_tracker/internal/domain/entity"
)

// BackendClient is the remote portfolio API. Every call except Login needs the
// bearer token obtained from Login.
type BackendClient interface {
	Login(ctx context.Context, email, password string) (string, error)
	Verify(ctx context.Context, token string) error
	ListWallets(ctx context.Context, token string) ([]entity.Wallet, error)
	AddWallet(ctx context.Context, token string, wallet entity.Wallet) (entity.Wallet, error)
	RemoveWallet(ctx context.Context, token string, address string) error
	GetHoldings(ctx context.Context, token string, walletAddress string) ([]entity.TokenHolding, error)
}

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
