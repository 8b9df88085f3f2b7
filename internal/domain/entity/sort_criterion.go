package entity

import "strings"

// SortCriterion selects the ordering of a holdings list.
type SortCriterion int

const (
	// SortByValue orders by USD value, largest first.
	SortByValue SortCriterion = iota
	// SortByQuantity orders by raw quantity, largest first.
	SortByQuantity
	// SortByPerformance orders by 24h change, best first.
	SortByPerformance
	// SortByName orders alphabetically by name (or symbol).
	SortByName
	// SortByChain orders alphabetically by normalized chain name.
	SortByChain
)

// DefaultSortCriterion is the order used when nothing was selected.
const DefaultSortCriterion = SortByValue

var sortCriterionNames = map[SortCriterion]string{
	SortByValue:       "value",
	SortByQuantity:    "quantity",
	SortByPerformance: "performance",
	SortByName:        "name",
	SortByChain:       "chain",
}

var sortCriterionAliases = map[string]SortCriterion{
	"value":       SortByValue,
	"balance":     SortByValue,
	"quantity":    SortByQuantity,
	"amount":      SortByQuantity,
	"performance": SortByPerformance,
	"change":      SortByPerformance,
	"change24h":   SortByPerformance,
	"name":        SortByName,
	"alpha":       SortByName,
	"chain":       SortByChain,
	"network":     SortByChain,
}

// AllSortCriteria lists every criterion in menu order.
func AllSortCriteria() []SortCriterion {
	return []SortCriterion{SortByValue, SortByQuantity, SortByPerformance, SortByName, SortByChain}
}

func (c SortCriterion) String() string {
	if name, ok := sortCriterionNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseSortCriterion maps user input to a criterion. Unknown input returns the
// default criterion and false.
func ParseSortCriterion(s string) (SortCriterion, bool) {
	c, ok := sortCriterionAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return DefaultSortCriterion, false
	}
	return c, true
}
