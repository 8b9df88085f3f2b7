package walletloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet_tracker/internal/domain/entity"
)

const (
	evmLower    = "0x52908400098527886e0f7030069857d2e4169ee7"
	evmChecksum = "0x52908400098527886E0F7030069857D2E4169EE7"
	solAddress  = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	suiAddress  = "0x5094652429957619e6efa79a404a6714d1126e63f551f4b6c7fb76440f8118c9"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "evm is checksummed", in: evmLower, want: evmChecksum},
		{name: "evm with spaces", in: "  " + evmLower + " ", want: evmChecksum},
		{name: "solana base58", in: solAddress, want: solAddress},
		{name: "sui is lower-cased", in: "0x" + strings.ToUpper(suiAddress[2:]), want: suiAddress},
		{name: "empty", in: "   ", wantErr: true},
		{name: "evm without prefix", in: evmLower[2:], wantErr: true},
		{name: "short hex", in: "0x1234", wantErr: true},
		{name: "base58 with forbidden zero", in: "0" + solAddress[1:], wantErr: true},
		{name: "garbage", in: "not-a-wallet", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAddress(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"# tracked wallets",
		"",
		evmLower + ",ETH,Main wallet",
		solAddress + ", SOL ",
		"0xdeadbeef,ETH",
		suiAddress,
		evmChecksum + ",ARB,dup",
		evmLower[2:] + ",ETH, label, with comma",
	}, "\n")

	wallets, skipped, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []entity.Wallet{
		{Address: evmChecksum, Chain: "ETH", Label: "Main wallet"},
		{Address: solAddress, Chain: "SOL"},
		{Address: suiAddress},
	}, wallets)

	require.Len(t, skipped, 3)
	assert.Equal(t, 5, skipped[0].Line)
	assert.Equal(t, 7, skipped[1].Line)
	assert.Equal(t, "duplicate address", skipped[1].Reason)
	assert.Equal(t, 8, skipped[2].Line)
}

func TestParse_LabelKeepsCommas(t *testing.T) {
	wallets, _, err := Parse(strings.NewReader(solAddress + ",SOL,cold, storage"))
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, "cold, storage", wallets[0].Label)
}

func TestLoadWallets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.txt")
	require.NoError(t, os.WriteFile(path, []byte(evmLower+"\n"), 0o600))

	wallets, skipped, err := LoadWallets(path)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, []entity.Wallet{{Address: evmChecksum}}, wallets)

	_, _, err = LoadWallets(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "failed to open wallet file")
}
