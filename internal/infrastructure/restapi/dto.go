package restapi

import (
	"time"

	"wallet_tracker/internal/app/viewmodel"
	"wallet_tracker/internal/domain/entity"
	"wallet_tracker/internal/pkg/utils"
)

// HoldingResponse is one token row. Numeric fields that did not parse are left out.
type HoldingResponse struct {
	ID                 string     `json:"id"`
	DisplayName        string     `json:"displayName"`
	Name               string     `json:"name,omitempty"`
	Symbol             string     `json:"symbol,omitempty"`
	ContractAddress    string     `json:"address,omitempty"`
	Chain              string     `json:"chain"`
	ChainColor         string     `json:"chainColor"`
	RawChain           string     `json:"rawChain"`
	WalletAddress      string     `json:"walletAddress"`
	Quantity           string     `json:"amount,omitempty"`
	QuantityFormatted  string     `json:"amountFormatted,omitempty"`
	PriceUSD           string     `json:"priceUsd,omitempty"`
	PriceFormatted     string     `json:"priceFormatted,omitempty"`
	ValueUSD           string     `json:"valueUsd,omitempty"`
	ValueFormatted     string     `json:"valueFormatted,omitempty"`
	Change24h          string     `json:"priceChange24h,omitempty"`
	Change24hFormatted string     `json:"priceChange24hFormatted,omitempty"`
	LastUpdated        *time.Time `json:"lastUpdated,omitempty"`
}

// GroupResponse is one chain section.
type GroupResponse struct {
	Chain             string            `json:"chain"`
	Color             string            `json:"color"`
	Count             int               `json:"count"`
	SubtotalUSD       string            `json:"subtotalUsd"`
	SubtotalFormatted string            `json:"subtotalFormatted"`
	Holdings          []HoldingResponse `json:"holdings"`
}

// SummaryResponse totals a view.
type SummaryResponse struct {
	TotalValueUSD      string `json:"totalValueUsd"`
	TotalFormatted     string `json:"totalFormatted"`
	HoldingCount       int    `json:"holdingCount"`
	WalletCount        int    `json:"walletCount"`
	Change24h          string `json:"change24h,omitempty"`
	Change24hFormatted string `json:"change24hFormatted,omitempty"`
}

// PortfolioResponse is the body of the portfolio endpoints.
type PortfolioResponse struct {
	Sort          string                    `json:"sort"`
	Holdings      []HoldingResponse         `json:"holdings"`
	Groups        []GroupResponse           `json:"groups"`
	Summary       SummaryResponse           `json:"summary"`
	LastRefresh   *time.Time                `json:"lastRefresh,omitempty"`
	FailedWallets []entity.WalletFetchError `json:"failedWallets,omitempty"`
}

// GroupsResponse is the body of /portfolio/groups.
type GroupsResponse struct {
	Sort   string          `json:"sort"`
	Groups []GroupResponse `json:"groups"`
}

func toHoldingResponse(h entity.TokenHolding) HoldingResponse {
	chain := viewmodel.NormalizeChain(h.Chain)
	resp := HoldingResponse{
		ID:              h.ID,
		DisplayName:     h.DisplayName(),
		Name:            h.Name,
		Symbol:          h.Symbol,
		ContractAddress: h.ContractAddress,
		Chain:           chain.DisplayName,
		ChainColor:      chain.Color,
		RawChain:        h.Chain,
		WalletAddress:   h.WalletAddress,
		Quantity:        h.Quantity.String(),
		PriceUSD:        h.PriceUSD.String(),
		ValueUSD:        h.ValueUSD.String(),
		Change24h:       h.Change24h.String(),
		LastUpdated:     h.LastUpdated.Ptr(),
	}
	resp.QuantityFormatted, _ = utils.FormatQuantity(h.Quantity)
	resp.PriceFormatted, _ = utils.FormatUSD(h.PriceUSD)
	resp.ValueFormatted, _ = utils.FormatUSD(h.ValueUSD)
	resp.Change24hFormatted, _ = utils.FormatPercent(h.Change24h)
	return resp
}

func toHoldingResponses(holdings []entity.TokenHolding) []HoldingResponse {
	out := make([]HoldingResponse, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, toHoldingResponse(h))
	}
	return out
}

func toGroupResponses(grouping entity.ChainGrouping) []GroupResponse {
	groups := grouping.Groups()
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		subtotal := entity.NumericFromDecimal(g.SubtotalUSD)
		formatted, _ := utils.FormatUSD(subtotal)
		out = append(out, GroupResponse{
			Chain:             g.Chain,
			Color:             g.Color,
			Count:             g.Count,
			SubtotalUSD:       subtotal.String(),
			SubtotalFormatted: formatted,
			Holdings:          toHoldingResponses(g.Holdings),
		})
	}
	return out
}

func toSummaryResponse(s entity.Summary) SummaryResponse {
	total := entity.NumericFromDecimal(s.TotalValueUSD)
	resp := SummaryResponse{
		TotalValueUSD: total.String(),
		HoldingCount:  s.HoldingCount,
		WalletCount:   s.WalletCount,
		Change24h:     s.Change24h.String(),
	}
	resp.TotalFormatted, _ = utils.FormatUSD(total)
	resp.Change24hFormatted, _ = utils.FormatPercent(s.Change24h)
	return resp
}

func toPortfolioResponse(view entity.PortfolioView) PortfolioResponse {
	return PortfolioResponse{
		Sort:     view.Criterion.String(),
		Holdings: toHoldingResponses(view.Holdings),
		Groups:   toGroupResponses(view.Groups),
		Summary:  toSummaryResponse(view.Summary),
	}
}
