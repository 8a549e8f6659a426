package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cjl-232/cryptcord-server/config"
	relaymodels "github.com/cjl-232/cryptcord-server/internal/relay/model"
	usermodels "github.com/cjl-232/cryptcord-server/internal/user/model"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	_ "modernc.org/sqlite"
)

// Open connects to the configured storage backend. PostgreSQL is the
// deployment target; SQLite serves embedded and development setups.
func Open(cfg *config.Config) (*bun.DB, error) {
	switch cfg.Bun.Driver {
	case "postgres":
		connector := pgdriver.NewConnector(pgdriver.WithDSN(cfg.Bun.DSN))
		sqlDB := sql.OpenDB(connector)
		return bun.NewDB(sqlDB, pgdialect.New()), nil

	case "sqlite":
		sqlDB, err := sql.Open("sqlite", cfg.Bun.DSN)
		if err != nil {
			return nil, errors.Wrap(err, "storage.Open.Sqlite: ")
		}
		// SQLite permits one writer; a single connection avoids busy
		// errors under concurrent request handling.
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil

	default:
		return nil, fmt.Errorf("unsupported bun driver %q", cfg.Bun.Driver)
	}
}

// Init creates the schema if it does not exist: one table per model plus
// the retrieval indexes over (recipient_id, timestamp).
func Init(ctx context.Context, db *bun.DB) error {
	tables := []any{
		(*usermodels.User)(nil),
		(*relaymodels.Message)(nil),
		(*relaymodels.ExchangeKey)(nil),
	}

	for _, t := range tables {
		if _, err := db.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			return errors.Wrapf(err, "storage.Init.CreateTable %T: ", t)
		}
	}

	indexes := []*bun.CreateIndexQuery{
		db.NewCreateIndex().
			Model((*relaymodels.Message)(nil)).
			Index("messages_retrieval_idx").
			Column("recipient_id", "timestamp").
			IfNotExists(),
		db.NewCreateIndex().
			Model((*relaymodels.ExchangeKey)(nil)).
			Index("exchange_keys_retrieval_idx").
			Column("recipient_id", "timestamp").
			IfNotExists(),
	}

	for _, idx := range indexes {
		if _, err := idx.Exec(ctx); err != nil {
			return errors.Wrap(err, "storage.Init.CreateIndex: ")
		}
	}
	return nil
}

// OpenRedis builds the client for the identity cache. Connectivity is
// verified lazily; a down cache degrades reads, it does not stop startup.
func OpenRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
}

// MemoryDSN returns a DSN for a private in-memory SQLite database. The
// name keeps separate callers from landing on the same shared cache.
func MemoryDSN(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}
