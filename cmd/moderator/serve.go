package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/moderatorio/moderator/internal/config"
	"github.com/moderatorio/moderator/internal/notifier"
)

// store holds the process configuration. It is populated exactly once,
// before the listener starts; a second install attempt is ignored with a
// warning rather than racing live readers.
var store config.Store

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			logConfig := zap.NewProductionConfig()
			logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			logger, err := logConfig.Build()
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync()

			return run(configPath, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "moderator.yaml", "Path to the YAML configuration file")
	return cmd
}

// run loads and installs configuration, wires the mail pipeline, and starts
// the listener. A configuration error is fatal: the listener never starts on
// a partial config.
func run(configPath string, logger *zap.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if !store.Set(cfg) {
		logger.Warn("Configuration already installed for this process, keeping the existing one")
		cfg = store.Get()
	}

	logger.Info("Starting moderator",
		zap.Int("port", cfg.Port),
		zap.String("endpoint", cfg.Endpoint),
		zap.Int("content_types", len(cfg.ContentTypes)),
	)

	sender, err := notifier.NewSMTPSender(logger, cfg.Mailer)
	if err != nil {
		return err
	}
	dispatcher := notifier.NewDispatcher(logger, cfg.MailOrigin, sender)
	handler := NewWebhookHandler(cfg, dispatcher, logger)

	return startServer(cfg, handler, logger)
}

// startServer blocks until a shutdown signal arrives or the server fails.
func startServer(cfg *config.Config, handler *WebhookHandler, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	server := NewServer(ServerConfig{
		Addr:     fmt.Sprintf(":%d", cfg.Port),
		Endpoint: cfg.Endpoint,
	}, handler, logger)

	if err := server.Start(ctx); err != nil {
		return err
	}
	logger.Info("Webhook listener stopped")
	return nil
}
