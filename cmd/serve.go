package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"review-pool.com/review-pool/internal/chain"
	config "review-pool.com/review-pool/internal/configs"
	httpapi "review-pool.com/review-pool/internal/http"
	"review-pool.com/review-pool/internal/metrics"
	"review-pool.com/review-pool/internal/payments"
	repository "review-pool.com/review-pool/internal/repositories"
	"review-pool.com/review-pool/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the review pool HTTP API backed by the configured database and chain RPC",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

		database, err := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN, logger)
		if err != nil {
			return err
		}
		if err := config.Migrate(database); err != nil {
			return err
		}

		var lookup chain.TransferLookup = chain.NewRPCClient(cfg.ChainRPCURL, cfg.ChainCommitment)
		if cfg.TransferCacheEnabled {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			ttl := time.Duration(cfg.TransferCacheTTLSeconds) * time.Second
			lookup = chain.NewCachedClient(lookup, redisClient, chain.DefaultCachePrefix, ttl, logger)
			logger.WithField("redis", cfg.RedisAddr).Info("transfer cache enabled")
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		settlement := services.NewSettlementService(
			repository.NewStore(database),
			payments.NewVerifier(lookup),
			cfg.TreasuryAddress,
			cfg.UnitPriceLamports,
			metrics.New(registry),
			logger,
		)

		e := echo.New()
		e.HideBanner = true
		httpapi.Register(e, httpapi.NewHandler(settlement), registry, cfg.JWTSecret, cfg.RateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.WithField("addr", cfg.AppURL).Info("HTTP server listening")
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("HTTP server shutdown incomplete")
		}

		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
