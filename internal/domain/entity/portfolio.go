package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary aggregates a holdings snapshot.
type Summary struct {
	TotalValueUSD decimal.Decimal
	HoldingCount  int
	WalletCount   int
	// Change24h is the value-weighted 24h change over holdings that report
	// both a value and a change. Invalid when no holding does.
	Change24h Numeric
}

// PortfolioView is everything a portfolio screen renders for one criterion.
type PortfolioView struct {
	Criterion SortCriterion
	Holdings  []TokenHolding
	Groups    ChainGrouping
	Summary   Summary
}

// WalletFetchError records a wallet whose holdings could not be refreshed.
type WalletFetchError struct {
	WalletAddress string    `json:"walletAddress"`
	Message       string    `json:"message"`
	OccurredAt    time.Time `json:"occurredAt"`
}
