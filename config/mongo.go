package config

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewMongoConn(ctx context.Context, cfg *Mongo) (*mongo.Client, error) {
	operation := func() (*mongo.Client, error) {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to connect to MongoDB. Retrying...")
			return nil, err
		}

		if err := client.Ping(connectCtx, nil); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to ping MongoDB. Retrying...")
			_ = client.Disconnect(connectCtx)
			return nil, err
		}

		return client, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 10 * time.Second
	maxRetries := uint(5)
	client, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(maxRetries))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to connect to MongoDB")
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Msg("Successfully connected to MongoDB")
	go func() {
		<-ctx.Done()
		if err := client.Disconnect(context.Background()); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to close MongoDB connection")
			return
		}
		zerolog.Ctx(ctx).Info().Msg("MongoDB connection closed")
	}()

	return client, nil
}
