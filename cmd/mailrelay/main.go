package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campustix/portal/internal/config"
	"github.com/campustix/portal/internal/relay"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.NewSMTP()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Without credentials the relay still serves /api/health but rejects
	// send requests, mirroring how the portal treats email as optional.
	var sender relay.Sender
	if cfg.User != "" && cfg.Password != "" {
		mailer, err := relay.NewSMTPMailer(relay.SMTPConfig{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.User,
			Password: cfg.Password,
			From:     cfg.From,
			FromName: cfg.FromName,
		})
		if err != nil {
			logger.Error("failed to create SMTP mailer", "error", err)
			os.Exit(1)
		}
		sender = mailer
	} else {
		logger.Warn("SMTP_USER/SMTP_PASSWORD not set, email sending disabled")
	}

	port := os.Getenv("MAIL_RELAY_PORT")
	if port == "" {
		port = "3001"
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: relay.NewRouter(sender, logger),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("mail relay listening", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down mail relay")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("mail relay finished with error", "error", err)
		os.Exit(1)
	}
}
