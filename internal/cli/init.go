// Package cli provides process bootstrap helpers, the interactive menu
// session and the subcommands shared by the wydatki binaries.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"wydatki/internal/amqp"
	"wydatki/internal/backend"
	"wydatki/internal/cache"
	"wydatki/internal/config"
	"wydatki/internal/core"
	"wydatki/internal/log"
	"wydatki/internal/services"
)

// ErrShutdown is returned by WatchSignals when a termination signal arrives.
var ErrShutdown = errors.New("shutdown requested")

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging on stderr at the given level
// and sets it as the default logger. An unknown level falls back to warn.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	if lvl, err := config.ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewService wires the configured backend, input defaults, aggregate cache
// and optional AMQP publisher into an ExpenseService. The caller owns the
// service and must Close it.
func NewService(ctx context.Context, cfg *config.Config, logger *log.Logger) (*services.ExpenseService, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}

	result, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, err
	}

	defaults, err := config.LoadDefaults(cfg.DefaultsFile)
	if err != nil {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
		return nil, err
	}

	opts := services.Options{
		Defaults: defaults,
		Cleanup:  result.Cleanup,
	}

	if cfg.CacheSize > 0 && cfg.CacheTTL > 0 {
		opts.Cache = cache.NewLRUCache[core.MonthSummary](cfg.CacheSize, cfg.CacheTTL)
	}

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WithComponent(log.ComponentAMQP).Warn("Failed to initialize AMQP client, continuing without publishing",
				log.FieldError, err)
		} else {
			logger.WithComponent(log.ComponentAMQP).Info("Initialized AMQP client",
				log.FieldExchange, cfg.AMQPExchange,
				log.FieldQueue, cfg.AMQPQueue)
			opts.Publisher = client
		}
	}

	logger.WithComponent(log.ComponentBackend).Info("Expense service ready",
		log.FieldBackend, cfg.DataBackend,
		"publishing", opts.Publisher != nil)

	return services.NewExpenseService(result.Backend, opts), nil
}

// WatchSignals blocks until SIGINT or SIGTERM arrives or ctx is done.
// A received signal is reported as an error so that an errgroup cancels
// its other members.
func WatchSignals(ctx context.Context, logger *log.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	return watchSignals(ctx, logger, sigChan)
}

func watchSignals(ctx context.Context, logger *log.Logger, sigChan <-chan os.Signal) error {
	select {
	case sig := <-sigChan:
		logger.InfoContext(ctx, "Shutdown signal received",
			log.FieldOperation, log.OpShutdown,
			"signal", sig.String())
		return fmt.Errorf("%w: %s", ErrShutdown, sig)
	case <-ctx.Done():
		return nil
	}
}
