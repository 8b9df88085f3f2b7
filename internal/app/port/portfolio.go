package port

import (
	"context"
	"time"

	"wallet_tracker/internal/domain/entity"
)

// PortfolioService owns the holdings snapshot and its refresh loop.
type PortfolioService interface {
	// Refresh refetches holdings for every tracked wallet. A wallet that fails
	// keeps no holdings and is reported by FailedWallets; the error is only
	// non-nil when the wallet list itself could not be loaded.
	Refresh(ctx context.Context) error

	// Run refreshes immediately and then on a fixed interval until ctx is done.
	Run(ctx context.Context)

	// Holdings returns a copy of the current snapshot.
	Holdings() []entity.TokenHolding

	LastRefresh() time.Time

	// FailedWallets returns the wallets that failed during the last refresh.
	FailedWallets() []entity.WalletFetchError
}
