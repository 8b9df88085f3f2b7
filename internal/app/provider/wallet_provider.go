package provider

import (
	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/domain/entity"
	"wallet_tracker/internal/infrastructure/walletloader"
)

type walletProviderImpl struct {
	walletFilePath string
	logger         port.Logger
}

// NewWalletProvider creates a new WalletProvider.
func NewWalletProvider(filePath string, logger port.Logger) port.WalletProvider {
	if filePath == "" {
		filePath = walletloader.DefaultWalletFilePath
	}
	return &walletProviderImpl{walletFilePath: filePath, logger: logger}
}

// GetWallets loads wallet addresses from the configured file.
func (p *walletProviderImpl) GetWallets() ([]entity.Wallet, error) {
	p.logger.Debug("Loading wallets from file", "path", p.walletFilePath)
	wallets, skipped, err := walletloader.LoadWallets(p.walletFilePath)
	if err != nil {
		p.logger.Error("Failed to load wallets", "path", p.walletFilePath, "error", err)
		return nil, err
	}
	for _, s := range skipped {
		p.logger.Warn("Skipping wallet line", "path", p.walletFilePath, "line_number", s.Line, "text", s.Text, "reason", s.Reason)
	}
	p.logger.Info("Wallets loaded successfully", "count", len(wallets), "skipped", len(skipped), "path", p.walletFilePath)
	return wallets, nil
}
