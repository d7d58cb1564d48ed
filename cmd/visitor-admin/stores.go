package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/visitorgate/visitor-admin/internal/infrastructure/config"
	"github.com/visitorgate/visitor-admin/internal/infrastructure/db/mongo"
	"github.com/visitorgate/visitor-admin/internal/infrastructure/db/redis"
	"github.com/visitorgate/visitor-admin/pkg/logger"
)

// stores bundles the open connections and the repositories built on them.
type stores struct {
	mongoClient *mongodrv.Client
	redisClient *goredis.Client

	visitors *mongo.VisitorRepository
	users    *mongo.UserRepository
	presence *redis.PresenceStore
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	s := &stores{
		mongoClient: client,
		redisClient: rdb,
		visitors:    mongo.NewVisitorRepository(db, logger.Component("visitor_repository")),
		users:       mongo.NewUserRepository(db),
		presence:    redis.NewPresenceStore(rdb, cfg.Presence.Retention),
	}

	if err := s.visitors.EnsureIndexes(ctx); err != nil {
		s.close(ctx)
		return nil, fmt.Errorf("visitor indexes: %w", err)
	}
	if err := s.users.EnsureIndexes(ctx); err != nil {
		s.close(ctx)
		return nil, fmt.Errorf("user indexes: %w", err)
	}
	return s, nil
}

func (s *stores) close(ctx context.Context) {
	_ = s.redisClient.Close()
	_ = s.mongoClient.Disconnect(ctx)
}
