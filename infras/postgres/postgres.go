package postgres

import (
	"fmt"
	"net"
	"time"
	"trek/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
)

// Connection splits reads from writes. Tour catalog queries go through Read,
// booking finalization through Write. Both may point at the same instance in
// smaller deployments.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  connect("read", config.DB.Postgres.Read, *config),
		Write: connect("write", config.DB.Postgres.Write, *config),
	}
}

func databaseName(config config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

func connect(role string, target config.PostgresTarget, cfg config.Config) *sqlx.DB {
	dbName := databaseName(cfg, target.Name)

	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		target.Username,
		target.Password,
		net.JoinHostPort(target.Host, target.Port),
		dbName,
		target.SSLMode,
	)

	for attempt := range cfg.DB.Postgres.MaxRetry {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			sqlDB.SetMaxIdleConns(maxIdleConnections)
			sqlDB.SetMaxOpenConns(maxOpenConnections)

			log.Info().
				Str("role", role).
				Str("host", target.Host).
				Str("port", target.Port).
				Str("dbName", dbName).
				Msg("Connected to database")

			return sqlDB
		}

		log.Error().
			Err(err).
			Str("role", role).
			Str("host", target.Host).
			Str("port", target.Port).
			Str("dbName", dbName).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second)
	}

	return nil
}
