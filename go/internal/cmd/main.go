package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/rosterpool/go/internal/gateway"
	"github.com/mcdev12/rosterpool/go/internal/notifications"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if getEnv("LOG_PRETTY", "") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	config := &Config{}
	if path := getEnv("CONFIG_PATH", ""); path != "" {
		loaded, err := loadConfig(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("failed to load config")
		}
		config = loaded
	}

	database, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up database")
	}
	defer database.Close()

	services := setupServices(database, config)

	// Event publisher: NATS when configured, log-only otherwise
	var publisher notifications.EventPublisher = notifications.LogPublisher{}
	natsURL := getEnv("NATS_URL", "")
	var natsPublisher *notifications.NATSPublisher
	if natsURL != "" {
		natsPublisher, err = notifications.NewNATSPublisher(natsURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Notification dispatcher
	dispatcherConfig := dispatcherConfigFrom(config)
	dispatcher := notifications.NewDispatcher(
		services.Outbox,
		services.Resolver,
		publisher,
		dispatcherConfig,
		clockwork.NewRealClock(),
	)
	if err := dispatcher.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start dispatcher")
	}

	// Live pool feed: only available when NATS is configured
	var connections *gateway.ConnectionManager
	var consumer *gateway.EventConsumer
	if natsURL != "" {
		connections = gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
		go connections.Start(ctx)

		consumerConfig := gateway.DefaultConsumerConfig()
		consumerConfig.URL = natsURL
		consumer, err = gateway.NewEventConsumer(connections, consumerConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event consumer")
		}
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("event consumer stopped")
			}
		}()
	}

	server := setupServer(services, connections)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	if err := dispatcher.Stop(); err != nil {
		log.Error().Err(err).Msg("dispatcher shutdown failed")
	}
	if consumer != nil {
		if err := consumer.Stop(); err != nil {
			log.Error().Err(err).Msg("consumer shutdown failed")
		}
	}
	cancel()
}

func dispatcherConfigFrom(config *Config) notifications.Config {
	cfg := notifications.DefaultConfig()
	if config.Dispatcher.PollInterval > 0 {
		cfg.PollInterval = config.Dispatcher.PollInterval
	}
	if config.Dispatcher.BatchSize > 0 {
		cfg.BatchSize = config.Dispatcher.BatchSize
	}
	if config.Dispatcher.MaxAttempts > 0 {
		cfg.MaxAttempts = config.Dispatcher.MaxAttempts
	}
	if config.Dispatcher.RecipientTimeout > 0 {
		cfg.RecipientTimeout = config.Dispatcher.RecipientTimeout
	}
	return cfg
}
