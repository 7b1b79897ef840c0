package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpLayer "tradeline-calculator/http"
	"tradeline-calculator/repository"
	"tradeline-calculator/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the calculator HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		var cache repository.CacheRepository = repository.NewMemoryCache()
		if cfg.Cache.RedisAddr != "" {
			redisCache := repository.NewRedisCache(cfg.Cache.RedisAddr)
			defer redisCache.Close()
			if err := redisCache.Ping(ctx); err != nil {
				return err
			}
			zap.S().Infof("Using redis cache at %s", cfg.Cache.RedisAddr)
			cache = redisCache
		}

		calculationRepo := repository.NewCalculationRepositoryMemory(cfg.Service.HistoryLimit)
		utilizationService := service.NewUtilizationService(calculationRepo, cache, cfg.Cache.TTL)
		// The browser client delivers the share text itself.
		shareService := service.NewShareService(nil, nil)
		handler := httpLayer.NewUtilizationHandler(utilizationService, shareService)

		listener, err := newListener(cfg.Service.Address)
		if err != nil {
			return fmt.Errorf("creating listener: %w", err)
		}

		zap.S().Info("Starting tradeline calculator API")
		defer zap.S().Info("Tradeline calculator API stopped")

		return httpLayer.NewServer(cfg, handler, listener).Run(ctx)
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
