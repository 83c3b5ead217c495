package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/redis/go-redis/v9"

	"github.com/thirddot45/sftrails/internal/config"
	"github.com/thirddot45/sftrails/internal/source"
	"github.com/thirddot45/sftrails/migrations"
)

// newDataSource builds the backend selected by cfg.DataSource. The returned
// close function releases whatever the backend holds and is safe to call
// more than once.
func newDataSource(ctx context.Context, cfg config.Config, log *slog.Logger) (source.DataSource, func(), error) {
	switch cfg.DataSource {
	case config.SourceHTTP:
		opts := []source.HTTPOption{source.WithTimeout(cfg.TrailsAPITimeout)}
		if cfg.TrailsAPIRPS > 0 {
			opts = append(opts, source.WithRateLimit(cfg.TrailsAPIRPS, 1))
		}
		src := source.NewHTTPSource(cfg.TrailsAPIURL, opts...)
		return src, func() { _ = src.Close() }, nil

	case config.SourcePostgres:
		if cfg.DBAutoMigrate {
			if err := migrate(ctx, cfg.DatabaseURL, log); err != nil {
				return nil, nil, err
			}
		}
		// pgxpool.New does not open connections; the first query does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		return source.NewPostgresSource(pool), pool.Close, nil

	case config.SourceRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		src := source.NewRedisSource(client, cfg.RedisKey)
		if cfg.RedisSeedSample {
			if err := src.Seed(ctx, source.SampleRecords()); err != nil {
				_ = client.Close()
				return nil, nil, fmt.Errorf("seed redis: %w", err)
			}
			log.Info("seeded sample trails", "key", cfg.RedisKey)
		}
		return src, func() { _ = client.Close() }, nil

	default:
		return source.NewMemorySource(source.SampleRecords()...), func() {}, nil
	}
}

// migrate applies pending goose migrations through a short-lived
// database/sql connection, since goose does not speak pgxpool.
func migrate(ctx context.Context, dsn string, log *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	applied, err := migrations.Up(ctx, db)
	if err != nil {
		return err
	}
	log.Info("database migrations applied", "count", applied)
	return nil
}
