package entity

// TokenHolding is one token balance inside one tracked wallet. The same token
// held in two wallets yields two holdings with the same ID.
type TokenHolding struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Symbol          string    `json:"symbol"`
	ContractAddress string    `json:"address"`
	Chain           string    `json:"chain"`
	WalletAddress   string    `json:"walletAddress"`
	Quantity        Numeric   `json:"amount"`
	PriceUSD        Numeric   `json:"priceUsd"`
	ValueUSD        Numeric   `json:"valueUsd"`
	Change24h       Numeric   `json:"priceChange24h"` // fraction, 0.05 = +5%
	LastUpdated     Timestamp `json:"lastUpdated"`
}

// DisplayName is the label used for name ordering: name, then symbol.
func (h TokenHolding) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.Symbol
}
