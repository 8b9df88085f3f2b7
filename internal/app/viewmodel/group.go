package viewmodel

import (
	"github.com/shopspring/decimal"

	"wallet_tracker/internal/domain/entity"
)

// GroupByChain partitions holdings by normalized chain name. Groups appear in
// the order their chain first occurs in the input and keep the input order
// inside each group, so sorting upstream decides the layout.
func GroupByChain(holdings []entity.TokenHolding) entity.ChainGrouping {
	var groups []entity.ChainGroup
	index := make(map[string]int)

	for _, h := range holdings {
		info := NormalizeChain(h.Chain)
		i, ok := index[info.DisplayName]
		if !ok {
			i = len(groups)
			index[info.DisplayName] = i
			groups = append(groups, entity.ChainGroup{
				Chain:       info.DisplayName,
				Color:       info.Color,
				SubtotalUSD: decimal.Zero,
			})
		}
		g := &groups[i]
		g.Holdings = append(g.Holdings, h)
		g.SubtotalUSD = g.SubtotalUSD.Add(h.ValueUSD.OrZero())
		g.Count = len(g.Holdings)
	}

	return entity.NewChainGrouping(groups)
}
