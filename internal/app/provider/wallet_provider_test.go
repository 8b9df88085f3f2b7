package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet_tracker/internal/pkg/logger"
)

func TestWalletProvider_GetWallets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.txt")
	content := "# wallets\n0x52908400098527886e0f7030069857d2e4169ee7,ETH,main\nbroken\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p := NewWalletProvider(path, logger.NewSlogAdapter())
	wallets, err := p.GetWallets()

	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", wallets[0].Address)
	assert.Equal(t, "main", wallets[0].Label)
}

func TestWalletProvider_MissingFile(t *testing.T) {
	p := NewWalletProvider(filepath.Join(t.TempDir(), "nope.txt"), logger.NewSlogAdapter())
	_, err := p.GetWallets()
	assert.Error(t, err)
}
