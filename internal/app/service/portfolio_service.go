package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/domain/entity"
	"wallet_tracker/internal/infrastructure/backendclient"
	"wallet_tracker/internal/infrastructure/configloader"
	"wallet_tracker/internal/pkg/metrics"
)

const (
	defaultPollInterval  = 5 * time.Minute
	defaultMaxConcurrent = 4
)

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	client                port.BackendClient
	auth                  port.AuthService
	logger                port.Logger
	metrics               *metrics.Metrics
	pollInterval          time.Duration
	maxConcurrentRoutines int

	// snapshots holds []entity.TokenHolding per lower-cased wallet address.
	snapshots *cache.Cache

	mu            sync.RWMutex
	walletOrder   []string
	failedWallets []entity.WalletFetchError
	lastRefresh   time.Time
	now           func() time.Time
}

var _ port.PortfolioService = (*PortfolioServiceImpl)(nil)

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
func NewPortfolioService(
	client port.BackendClient,
	auth port.AuthService,
	l port.Logger,
	cfg *configloader.Config,
	m *metrics.Metrics,
) *PortfolioServiceImpl {
	interval, maxRoutines := defaultPollInterval, defaultMaxConcurrent
	if cfg != nil {
		if cfg.PollInterval() > 0 {
			interval = cfg.PollInterval()
		}
		if cfg.Portfolio.MaxConcurrentFetches > 0 {
			maxRoutines = cfg.Portfolio.MaxConcurrentFetches
		}
	}
	if m == nil {
		m = metrics.New()
	}
	return &PortfolioServiceImpl{
		client:                client,
		auth:                  auth,
		logger:                l,
		metrics:               m,
		pollInterval:          interval,
		maxConcurrentRoutines: maxRoutines,
		// Snapshots outlive a couple of missed refreshes, then disappear.
		snapshots: cache.New(3*interval, interval),
		now:       time.Now,
	}
}

// Refresh refetches the holdings of every tracked wallet.
func (s *PortfolioServiceImpl) Refresh(ctx context.Context) error {
	started := s.now()
	s.metrics.RefreshTotal.Inc()

	token, err := s.auth.Token()
	if err != nil {
		s.metrics.RefreshFailures.Inc()
		return err
	}

	wallets, err := s.client.ListWallets(ctx, token)
	if err != nil {
		s.metrics.RefreshFailures.Inc()
		if errors.Is(err, backendclient.ErrUnauthorized) {
			s.auth.Invalidate()
			return fmt.Errorf("failed to list wallets: %w", ErrNotAuthenticated)
		}
		s.logger.Error("Failed to list wallets", "error", err)
		return fmt.Errorf("failed to list wallets: %w", err)
	}
	s.logger.Debug("Refreshing portfolio", "wallets", len(wallets))

	var (
		failed       []entity.WalletFetchError
		failedMu     sync.Mutex
		unauthorized bool
		holdingCount int
		order        = make([]string, 0, len(wallets))
		seen         = make(map[string]struct{}, len(wallets))
	)

	g := new(errgroup.Group)
	g.SetLimit(s.maxConcurrentRoutines)

	for _, wallet := range wallets {
		key := strings.ToLower(wallet.Address)
		if _, dup := seen[key]; dup || key == "" {
			continue
		}
		seen[key] = struct{}{}
		order = append(order, key)

		address := wallet.Address
		g.Go(func() error {
			holdings, err := s.client.GetHoldings(ctx, token, address)
			if err != nil {
				s.snapshots.Delete(key)
				s.metrics.WalletFetchErrors.WithLabelValues(fetchErrorReason(err)).Inc()
				s.logger.Warn("Failed to fetch holdings", "wallet", address, "error", err)

				failedMu.Lock()
				failed = append(failed, entity.WalletFetchError{
					WalletAddress: address,
					Message:       err.Error(),
					OccurredAt:    s.now(),
				})
				if errors.Is(err, backendclient.ErrUnauthorized) {
					unauthorized = true
				}
				failedMu.Unlock()
				return nil
			}
			if holdings == nil {
				holdings = []entity.TokenHolding{}
			}
			s.snapshots.Set(key, holdings, cache.DefaultExpiration)

			failedMu.Lock()
			holdingCount += len(holdings)
			failedMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// Wallets no longer tracked by the backend drop out of the snapshot.
	for key := range s.snapshots.Items() {
		if _, ok := seen[key]; !ok {
			s.snapshots.Delete(key)
		}
	}

	s.mu.Lock()
	s.walletOrder = order
	s.failedWallets = sortFailures(failed, order)
	s.lastRefresh = s.now()
	s.mu.Unlock()

	if unauthorized {
		s.auth.Invalidate()
	}

	s.metrics.ObserveRefresh(started, len(order), holdingCount)
	s.logger.Info("Portfolio refreshed",
		"wallets", len(order),
		"holdings", holdingCount,
		"failed_wallets", len(failed),
		"duration", time.Since(started).String())
	return nil
}

// Run refreshes right away and then every poll interval until ctx is done.
func (s *PortfolioServiceImpl) Run(ctx context.Context) {
	s.logger.Info("Portfolio refresh loop started", "interval", s.pollInterval.String())
	s.refreshAndLog(ctx)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Portfolio refresh loop stopped")
			return
		case <-ticker.C:
			s.refreshAndLog(ctx)
		}
	}
}

func (s *PortfolioServiceImpl) refreshAndLog(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			s.logger.Debug("Skipping refresh, not authenticated")
			return
		}
		s.logger.Error("Portfolio refresh failed", "error", err)
	}
}

// Holdings returns the snapshot in wallet order, each wallet's holdings in backend order.
func (s *PortfolioServiceImpl) Holdings() []entity.TokenHolding {
	s.mu.RLock()
	order := s.walletOrder
	s.mu.RUnlock()

	out := make([]entity.TokenHolding, 0)
	for _, key := range order {
		cached, ok := s.snapshots.Get(key)
		if !ok {
			continue
		}
		out = append(out, cached.([]entity.TokenHolding)...)
	}
	return out
}

func (s *PortfolioServiceImpl) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

func (s *PortfolioServiceImpl) FailedWallets() []entity.WalletFetchError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.WalletFetchError, len(s.failedWallets))
	copy(out, s.failedWallets)
	return out
}

// sortFailures puts failures in wallet order so responses are stable.
func sortFailures(failed []entity.WalletFetchError, order []string) []entity.WalletFetchError {
	byKey := make(map[string]entity.WalletFetchError, len(failed))
	for _, f := range failed {
		byKey[strings.ToLower(f.WalletAddress)] = f
	}
	out := make([]entity.WalletFetchError, 0, len(failed))
	for _, key := range order {
		if f, ok := byKey[key]; ok {
			out = append(out, f)
		}
	}
	return out
}

func fetchErrorReason(err error) string {
	var apiErr *backendclient.APIError
	switch {
	case errors.Is(err, backendclient.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	case errors.As(err, &apiErr):
		return "backend"
	default:
		return "transport"
	}
}
