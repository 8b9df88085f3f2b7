package viewmodel

import (
	"strings"

	"wallet_tracker/internal/domain/entity"
)

const (
	// UnknownChainName is shown when a holding carries no chain at all.
	UnknownChainName = "Unknown"
	// NeutralChainColor is used for chains outside the alias table.
	NeutralChainColor = "#8E8E93"
)

type chainStyle struct {
	name  string
	color string
}

// chainAliases is keyed by the upper-cased raw identifier.
var chainAliases = map[string]chainStyle{
	"ETH":       {name: "Ethereum", color: "#627EEA"},
	"ETHEREUM":  {name: "Ethereum", color: "#627EEA"},
	"MATIC":     {name: "Polygon", color: "#8247E5"},
	"POLYGON":   {name: "Polygon", color: "#8247E5"},
	"ARB":       {name: "Arbitrum", color: "#28A0F0"},
	"ARBITRUM":  {name: "Arbitrum", color: "#28A0F0"},
	"OP":        {name: "Optimism", color: "#FF0420"},
	"OPTIMISM":  {name: "Optimism", color: "#FF0420"},
	"AVAX":      {name: "Avalanche", color: "#E84142"},
	"AVALANCHE": {name: "Avalanche", color: "#E84142"},
	"SOL":       {name: "Solana", color: "#9945FF"},
	"SOLANA":    {name: "Solana", color: "#9945FF"},
	"SUI":       {name: "Sui", color: "#4DA2FF"},
	"BASE":      {name: "Base", color: "#0052FF"},
	"FTM":       {name: "Fantom", color: "#1969FF"},
	"FANTOM":    {name: "Fantom", color: "#1969FF"},
	"EVM":       {name: "EVM", color: "#3C3C3D"},
	"BSC":       {name: "BNB Chain", color: "#F3BA2F"},
	"BINANCE":   {name: "BNB Chain", color: "#F3BA2F"},
}

// NormalizeChain maps a raw chain identifier to its display name and color.
// Matching ignores case and surrounding whitespace. Unknown identifiers keep
// their raw text as the name; empty ones become "Unknown".
func NormalizeChain(raw string) entity.ChainInfo {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if key == "" {
		return entity.ChainInfo{DisplayName: UnknownChainName, Color: NeutralChainColor}
	}
	if style, ok := chainAliases[key]; ok {
		return entity.ChainInfo{DisplayName: style.name, Color: style.color}
	}
	return entity.ChainInfo{DisplayName: raw, Color: NeutralChainColor}
}

// KnownChains returns the distinct display names of the alias table.
func KnownChains() []entity.ChainInfo {
	seen := make(map[string]bool)
	var out []entity.ChainInfo
	for _, alias := range []string{"ETH", "MATIC", "ARB", "OP", "AVAX", "SOL", "SUI", "BASE", "FTM", "EVM", "BSC"} {
		style := chainAliases[alias]
		if seen[style.name] {
			continue
		}
		seen[style.name] = true
		out = append(out, entity.ChainInfo{DisplayName: style.name, Color: style.color})
	}
	return out
}
