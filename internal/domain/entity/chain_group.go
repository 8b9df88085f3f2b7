package entity

import "github.com/shopspring/decimal"

// ChainInfo is the display form of a raw chain identifier.
type ChainInfo struct {
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
}

// ChainGroup holds the holdings that share one normalized chain.
type ChainGroup struct {
	Chain       string
	Color       string
	Holdings    []TokenHolding
	SubtotalUSD decimal.Decimal
	Count       int
}

// ChainGrouping is an insertion-ordered set of chain groups.
type ChainGrouping struct {
	groups []ChainGroup
	index  map[string]int
}

// NewChainGrouping builds a grouping from groups already in display order.
func NewChainGrouping(groups []ChainGroup) ChainGrouping {
	index := make(map[string]int, len(groups))
	for i, g := range groups {
		index[g.Chain] = i
	}
	return ChainGrouping{groups: groups, index: index}
}

// Groups returns the groups in first-occurrence order.
func (g ChainGrouping) Groups() []ChainGroup {
	out := make([]ChainGroup, len(g.groups))
	copy(out, g.groups)
	return out
}

// Get looks a group up by display name.
func (g ChainGrouping) Get(chain string) (ChainGroup, bool) {
	i, ok := g.index[chain]
	if !ok {
		return ChainGroup{}, false
	}
	return g.groups[i], true
}

// Names returns the display names in order.
func (g ChainGrouping) Names() []string {
	names := make([]string, len(g.groups))
	for i, grp := range g.groups {
		names[i] = grp.Chain
	}
	return names
}

func (g ChainGrouping) Len() int {
	return len(g.groups)
}
