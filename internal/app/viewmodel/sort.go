package viewmodel

import (
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"wallet_tracker/internal/domain/entity"
)

// SortHoldings returns a stably sorted copy of holdings. The input slice is
// left untouched. Missing or unparseable numbers sort as zero.
func SortHoldings(holdings []entity.TokenHolding, criterion entity.SortCriterion) []entity.TokenHolding {
	out := make([]entity.TokenHolding, len(holdings))
	copy(out, holdings)
	if len(out) < 2 {
		return out
	}

	switch criterion {
	case entity.SortByQuantity:
		sortNumericDesc(out, func(h entity.TokenHolding) decimal.Decimal { return h.Quantity.OrZero() })
	case entity.SortByPerformance:
		sortNumericDesc(out, func(h entity.TokenHolding) decimal.Decimal { return h.Change24h.OrZero() })
	case entity.SortByName:
		sortTextAsc(out, func(h entity.TokenHolding) string { return h.DisplayName() })
	case entity.SortByChain:
		sortTextAsc(out, func(h entity.TokenHolding) string { return NormalizeChain(h.Chain).DisplayName })
	default:
		sortNumericDesc(out, func(h entity.TokenHolding) decimal.Decimal { return h.ValueUSD.OrZero() })
	}
	return out
}

func sortNumericDesc(holdings []entity.TokenHolding, key func(entity.TokenHolding) decimal.Decimal) {
	keyed := make([]keyedHolding[decimal.Decimal], len(holdings))
	for i, h := range holdings {
		keyed[i] = keyedHolding[decimal.Decimal]{key: key(h), holding: h}
	}
	slices.SortStableFunc(keyed, func(a, b keyedHolding[decimal.Decimal]) int {
		return b.key.Cmp(a.key)
	})
	for i := range keyed {
		holdings[i] = keyed[i].holding
	}
}

func sortTextAsc(holdings []entity.TokenHolding, key func(entity.TokenHolding) string) {
	// Collator keeps scratch buffers, one per call.
	coll := newCollator()
	keyed := make([]keyedHolding[string], len(holdings))
	for i, h := range holdings {
		keyed[i] = keyedHolding[string]{key: key(h), holding: h}
	}
	slices.SortStableFunc(keyed, func(a, b keyedHolding[string]) int {
		return coll.CompareString(a.key, b.key)
	})
	for i := range keyed {
		holdings[i] = keyed[i].holding
	}
}

type keyedHolding[K any] struct {
	key     K
	holding entity.TokenHolding
}

func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}
