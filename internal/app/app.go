// Package app opens the storage connections shared by the server, training
// and seeding commands.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"riskcompass/internal/cache"
	"riskcompass/internal/config"
	"riskcompass/internal/repository"
)

type App struct {
	Mongo          *mongo.Client
	DB             *mongo.Database
	Redis          *redis.Client
	Questionnaires repository.QuestionnaireRepo
	Users          repository.UserRepo
	Benchmarks     cache.BenchmarkCache
}

// Options selects which backends to open
type Options struct {
	Redis bool
}

// Open connects to MongoDB (and Redis when requested), pings them and
// builds the repositories
func Open(ctx context.Context, cfg *config.Config, opts Options, logger *slog.Logger) (*App, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	logger.Info("connected to mongodb", "database", cfg.Mongo.Database)

	db := client.Database(cfg.Mongo.Database)
	a := &App{
		Mongo:          client,
		DB:             db,
		Questionnaires: repository.NewQuestionnaireRepo(db, cfg.Mongo.Collection),
		Users:          repository.NewUserRepo(db),
	}

	if opts.Redis {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			client.Disconnect(ctx)
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.Info("connected to redis", "addr", cfg.Redis.Addr)
		a.Redis = rdb
		a.Benchmarks = cache.NewBenchmarkCache(rdb, cfg.Redis.BenchmarkTTL)
	}

	return a, nil
}

// EnsureIndexes creates the collection indexes the repositories rely on
func (a *App) EnsureIndexes(ctx context.Context) error {
	if err := a.Questionnaires.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("questionnaire indexes: %w", err)
	}
	if err := a.Users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	return nil
}

func (a *App) Close(ctx context.Context) {
	if a.Redis != nil {
		a.Redis.Close()
	}
	a.Mongo.Disconnect(ctx)
}
