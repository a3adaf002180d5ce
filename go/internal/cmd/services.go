package main

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/codingfighters/trivia/go/internal/game"
	"github.com/codingfighters/trivia/go/internal/game/broadcast"
	gamedb "github.com/codingfighters/trivia/go/internal/game/db"
	"github.com/codingfighters/trivia/go/internal/game/driver"
	"github.com/codingfighters/trivia/go/internal/game/stream"
	"github.com/codingfighters/trivia/go/internal/gateway"
)

// Services holds the wired application graph.
type Services struct {
	Gateway  *gateway.Service
	ConnMgr  *gateway.ConnectionManager
	consumer *gateway.EventConsumer
	closers  []func() error
}

func setupServices(ctx context.Context, database *sql.DB, config *Config) (*Services, error) {
	// Database layer → Repository layer → App layer → transport
	queries := gamedb.New(database)
	repo := game.NewRepository(queries, database)

	var closers []func() error

	// Event publishing is optional; without NATS the driver logs events.
	var publisher stream.Publisher
	var consumer *gateway.EventConsumer
	connMgr := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	go connMgr.Start(ctx)

	if config.NATS.URL != "" {
		natsConfig := stream.DefaultNATSConfig()
		natsConfig.URL = config.NATS.URL
		if config.NATS.SubjectPrefix != "" {
			natsConfig.SubjectPrefix = config.NATS.SubjectPrefix
		}

		natsPublisher, err := stream.NewNATSPublisher(natsConfig)
		if err != nil {
			return nil, err
		}
		publisher = natsPublisher
		closers = append(closers, natsPublisher.Close)

		consumerConfig := gateway.DefaultEventConsumerConfig()
		consumerConfig.URL = config.NATS.URL
		if config.NATS.SubjectPrefix != "" {
			consumerConfig.SubjectFilter = natsConfig.SubjectPrefix + ".>"
		}
		consumer, err = gateway.NewEventConsumer(connMgr, consumerConfig)
		if err != nil {
			return nil, err
		}
		if err := consumer.Start(); err != nil {
			return nil, err
		}
		closers = append(closers, consumer.Stop)
	} else {
		log.Info().Msg("NATS not configured, logging game events locally")
		publisher = stream.NewLogPublisher()
	}

	registry := driver.NewRegistry(repo, repo, publisher, driver.Config{
		QuestionSeconds: config.Game.QuestionSeconds,
	})
	app := game.NewApp(repo, registry)
	hub := broadcast.NewHub(app, app)

	return &Services{
		Gateway:  gateway.NewService(ctx, app, registry, hub, connMgr),
		ConnMgr:  connMgr,
		consumer: consumer,
		closers:  closers,
	}, nil
}

// Close tears down external connections in reverse wiring order.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			log.Error().Err(err).Msg("failed to close service")
		}
	}
}
