package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/app/provider"
	"wallet_tracker/internal/app/service"
	"wallet_tracker/internal/infrastructure/backendclient"
	"wallet_tracker/internal/infrastructure/configloader"
	"wallet_tracker/internal/infrastructure/restapi"
	"wallet_tracker/internal/infrastructure/tokenstore"
	"wallet_tracker/internal/pkg/logger"
	"wallet_tracker/internal/pkg/metrics"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Загрузка конфигурации
	configPath := configloader.PathFromEnv()
	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: не удалось загрузить конфигурацию %s: %v\n", configPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewZap(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zapLogger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger.Init(zapLogger)

	logger.Info("Сервис отслеживания кошельков запускается...", "config", configPath)

	m := metrics.New()

	client := backendclient.New(
		cfg.Backend.BaseURL,
		cfg.RequestTimeout(),
		zapLogger,
		backendclient.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.Backend.RateLimitPerSecond), cfg.Backend.RateLimitBurst)),
	)
	logger.Info("Клиент бэкенда инициализирован", "baseURL", cfg.Backend.BaseURL)

	store := tokenstore.NewFileStore(cfg.Auth.TokenFile)
	authService := service.NewAuthService(client, store, logger.Named("AuthService"), cfg)

	restoreCtx, restoreCancel := context.WithTimeout(ctx, 30*time.Second)
	if err := authService.Restore(restoreCtx); err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			logger.Info("Сессия не найдена, требуется вход через POST /api/v1/auth/login")
		} else {
			logger.Warn("Не удалось восстановить сессию", "ошибка", err)
		}
	}
	restoreCancel()

	var walletProvider port.WalletProvider
	if cfg.Wallets.ImportFile != "" {
		walletProvider = provider.NewWalletProvider(cfg.Wallets.ImportFile, logger.Named("WalletProvider"))
	}
	walletService := service.NewWalletService(client, authService, walletProvider, logger.Named("WalletService"))
	if walletProvider != nil && authService.IsAuthenticated() {
		added, err := walletService.ImportFromFile(ctx)
		if err != nil {
			logger.Warn("Импорт кошельков из файла не удался", "файл", cfg.Wallets.ImportFile, "ошибка", err)
		} else {
			logger.Info("Импорт кошельков завершен", "добавлено", added)
		}
	}

	portfolioService := service.NewPortfolioService(client, authService, logger.Named("PortfolioService"), cfg, m)
	go portfolioService.Run(ctx)
	logger.Info("Цикл обновления портфеля запущен", "интервал", cfg.PollInterval().String())

	router := restapi.SetupRouter(restapi.Dependencies{
		Portfolio:      portfolioService,
		Wallets:        walletService,
		Auth:           authService,
		Metrics:        m.Handler(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		DefaultSort:    cfg.Portfolio.DefaultSort,
		Logger:         logger.Named("API"),
		AccessLogger:   zapLogger.Named("http"),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("Запуск HTTP сервера", "адрес", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Не удалось запустить HTTP сервер", "ошибка", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Получен сигнал завершения. Завершение работы HTTP сервера...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при Graceful Shutdown HTTP сервера", "ошибка", err)
	} else {
		logger.Info("HTTP сервер успешно остановлен.")
	}

	logger.Info("Сервис отслеживания кошельков остановлен.")
}
