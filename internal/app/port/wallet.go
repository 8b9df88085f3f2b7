package port

import (
	"context"

	"wallet_tracker/internal/domain/entity"
)

// WalletProvider defines the interface for fetching wallet addresses from a local source.
type WalletProvider interface {
	GetWallets() ([]entity.Wallet, error)
}

// WalletService manages the wallets tracked by the backend.
type WalletService interface {
	List(ctx context.Context) ([]entity.Wallet, error)
	Add(ctx context.Context, wallet entity.Wallet) (entity.Wallet, error)
	Remove(ctx context.Context, address string) error
	// ImportFromFile adds every locally listed wallet the backend does not track yet.
	// Returns the number of wallets added.
	ImportFromFile(ctx context.Context) (int, error)
}
