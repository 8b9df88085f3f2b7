package viewmodel

import (
	"strings"

	"github.com/shopspring/decimal"

	"wallet_tracker/internal/domain/entity"
)

// Summarize totals a snapshot.
func Summarize(holdings []entity.TokenHolding) entity.Summary {
	total := decimal.Zero
	weighted := decimal.Zero
	weightedBase := decimal.Zero
	wallets := make(map[string]struct{})

	for _, h := range holdings {
		total = total.Add(h.ValueUSD.OrZero())
		if h.WalletAddress != "" {
			wallets[strings.ToLower(h.WalletAddress)] = struct{}{}
		}
		value, okValue := h.ValueUSD.Decimal()
		change, okChange := h.Change24h.Decimal()
		if okValue && okChange {
			weighted = weighted.Add(value.Mul(change))
			weightedBase = weightedBase.Add(value)
		}
	}

	summary := entity.Summary{
		TotalValueUSD: total,
		HoldingCount:  len(holdings),
		WalletCount:   len(wallets),
	}
	if !weightedBase.IsZero() {
		summary.Change24h = entity.NumericFromDecimal(weighted.DivRound(weightedBase, 8))
	}
	return summary
}

// BuildView recomputes the whole portfolio screen for one criterion. Groups
// are built from the sorted holdings.
func BuildView(holdings []entity.TokenHolding, criterion entity.SortCriterion) entity.PortfolioView {
	sorted := SortHoldings(holdings, criterion)
	return entity.PortfolioView{
		Criterion: criterion,
		Holdings:  sorted,
		Groups:    GroupByChain(sorted),
		Summary:   Summarize(sorted),
	}
}

// FilterByWallet returns the holdings owned by address, compared without case.
func FilterByWallet(holdings []entity.TokenHolding, address string) []entity.TokenHolding {
	out := make([]entity.TokenHolding, 0)
	for _, h := range holdings {
		if strings.EqualFold(h.WalletAddress, address) {
			out = append(out, h)
		}
	}
	return out
}
