package main

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/sirpyerre/proposals-api/internal/core/ports"
	"github.com/sirpyerre/proposals-api/internal/core/service"
	"github.com/sirpyerre/proposals-api/internal/infrastructure/config"
	"github.com/sirpyerre/proposals-api/internal/infrastructure/db/mongo"
	"github.com/sirpyerre/proposals-api/internal/infrastructure/db/redis"
	"github.com/sirpyerre/proposals-api/internal/infrastructure/http/handlers"
)

const disconnectTimeout = 5 * time.Second

// app holds the connected stores and the services built on them.
type app struct {
	log         zerolog.Logger
	mongoClient *mongodriver.Client
	redisClient *goredis.Client

	tokens    *service.TokenIssuer
	auth      *service.AuthService
	clients   *service.ClientService
	proposals *service.ProposalService
	readiness *handlers.ReadinessHandler
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return nil, err
	}
	a := &app{log: log, mongoClient: mongoClient}
	checks := []handlers.Check{handlers.MongoCheck(db)}

	users := mongo.NewUserRepository(db)
	clients := mongo.NewClientRepository(db)
	proposals := mongo.NewProposalRepository(db)
	indexed := []mongo.Indexer{users, clients, proposals}

	var denylist ports.TokenDenylist
	switch cfg.Auth.Denylist {
	case config.DenylistRedis:
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close()
			return nil, err
		}
		a.redisClient = rdb
		denylist = redis.NewDenylist(rdb)
		checks = append(checks, handlers.RedisCheck(rdb))
	default:
		mongoDenylist := mongo.NewDenylist(db)
		denylist = mongoDenylist
		indexed = append(indexed, mongoDenylist)
	}

	if err := mongo.EnsureIndexes(ctx, indexed...); err != nil {
		a.close()
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Str("denylist", cfg.Auth.Denylist).Msg("stores ready")

	a.tokens = service.NewTokenIssuer(cfg.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	a.auth = service.NewAuthService(users, denylist, a.tokens, log.With().Str("component", "auth").Logger())
	a.clients = service.NewClientService(clients, users, log.With().Str("component", "clients").Logger())
	a.proposals = service.NewProposalService(proposals, clients, users, log.With().Str("component", "proposals").Logger())
	a.readiness = handlers.NewReadinessHandler(checks...)
	return a, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if err := a.mongoClient.Disconnect(ctx); err != nil {
		a.log.Warn().Err(err).Msg("mongo disconnect")
	}
}
