package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/domain/entity"
	"wallet_tracker/internal/infrastructure/backendclient"
	"wallet_tracker/internal/infrastructure/walletloader"
)

var (
	// ErrInvalidAddress is returned by Add for an address of no known format.
	ErrInvalidAddress = walletloader.ErrInvalidAddress
	// ErrWalletExists is returned by Add when the address is already tracked.
	ErrWalletExists = errors.New("wallet already tracked")
	// ErrWalletNotFound is returned by Remove for an address that is not tracked.
	ErrWalletNotFound = errors.New("wallet not tracked")
)

// WalletServiceImpl implements port.WalletService.
type WalletServiceImpl struct {
	client   port.BackendClient
	auth     port.AuthService
	provider port.WalletProvider
	logger   port.Logger
}

var _ port.WalletService = (*WalletServiceImpl)(nil)

// NewWalletService creates a new instance of WalletServiceImpl. provider may be
// nil when no import file is configured.
func NewWalletService(client port.BackendClient, auth port.AuthService, provider port.WalletProvider, l port.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{client: client, auth: auth, provider: provider, logger: l}
}

func (s *WalletServiceImpl) List(ctx context.Context) ([]entity.Wallet, error) {
	token, err := s.auth.Token()
	if err != nil {
		return nil, err
	}
	wallets, err := s.client.ListWallets(ctx, token)
	if err != nil {
		return nil, s.backendError(err, "failed to list wallets")
	}
	if wallets == nil {
		wallets = []entity.Wallet{}
	}
	return wallets, nil
}

// Add validates and normalizes the address before handing it to the backend.
func (s *WalletServiceImpl) Add(ctx context.Context, wallet entity.Wallet) (entity.Wallet, error) {
	address, err := walletloader.ValidateAddress(wallet.Address)
	if err != nil {
		return entity.Wallet{}, err
	}
	wallet.Address = address
	wallet.Chain = strings.TrimSpace(wallet.Chain)
	wallet.Label = strings.TrimSpace(wallet.Label)

	existing, err := s.List(ctx)
	if err != nil {
		return entity.Wallet{}, err
	}
	for _, w := range existing {
		if strings.EqualFold(w.Address, address) {
			return entity.Wallet{}, fmt.Errorf("%w: %s", ErrWalletExists, address)
		}
	}

	token, err := s.auth.Token()
	if err != nil {
		return entity.Wallet{}, err
	}
	created, err := s.client.AddWallet(ctx, token, wallet)
	if err != nil {
		return entity.Wallet{}, s.backendError(err, "failed to add wallet")
	}
	s.logger.Info("Wallet added", "address", created.Address, "chain", created.Chain)
	return created, nil
}

func (s *WalletServiceImpl) Remove(ctx context.Context, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	token, err := s.auth.Token()
	if err != nil {
		return err
	}
	if err := s.client.RemoveWallet(ctx, token, address); err != nil {
		if errors.Is(err, backendclient.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrWalletNotFound, address)
		}
		return s.backendError(err, "failed to remove wallet")
	}
	s.logger.Info("Wallet removed", "address", address)
	return nil
}

// ImportFromFile adds the wallets from the local list that the backend does not
// track yet. A wallet the backend refuses is logged and skipped.
func (s *WalletServiceImpl) ImportFromFile(ctx context.Context) (int, error) {
	if s.provider == nil {
		return 0, nil
	}
	local, err := s.provider.GetWallets()
	if err != nil {
		return 0, fmt.Errorf("failed to read wallet file: %w", err)
	}
	if len(local) == 0 {
		return 0, nil
	}

	tracked, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	known := make(map[string]struct{}, len(tracked))
	for _, w := range tracked {
		known[strings.ToLower(w.Address)] = struct{}{}
	}

	token, err := s.auth.Token()
	if err != nil {
		return 0, err
	}

	added := 0
	for _, w := range local {
		if _, ok := known[strings.ToLower(w.Address)]; ok {
			continue
		}
		if _, err := s.client.AddWallet(ctx, token, w); err != nil {
			if errors.Is(err, backendclient.ErrUnauthorized) {
				return added, s.backendError(err, "import aborted")
			}
			s.logger.Warn("Failed to import wallet", "address", w.Address, "error", err)
			continue
		}
		known[strings.ToLower(w.Address)] = struct{}{}
		added++
	}
	s.logger.Info("Wallet import finished", "added", added, "in_file", len(local))
	return added, nil
}

// backendError drops the session when the backend rejected the token.
func (s *WalletServiceImpl) backendError(err error, msg string) error {
	if errors.Is(err, backendclient.ErrUnauthorized) {
		s.auth.Invalidate()
		return fmt.Errorf("%s: %w", msg, ErrNotAuthenticated)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
