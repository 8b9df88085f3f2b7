package entity

// Wallet is a tracked wallet address. Chain is optional and only a hint for
// address validation; holdings carry their own chain.
type Wallet struct {
	Address string `json:"address" yaml:"address"`
	Chain   string `json:"chain,omitempty" yaml:"chain,omitempty"`
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
}
