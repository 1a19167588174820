package database

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// newMySQLConfig builds the driver config.  parseTime and a UTC location
// keep DATETIME columns aligned with the UTC timestamps the vacancy write
// path stamps.  ClientFoundRows makes RowsAffected report matched rows
// rather than changed rows: resubmitting an identical vacancy status or
// shop update within the same DATETIME second is a no-op match, not a
// spurious stale-write conflict or missing row.
func newMySQLConfig(user, pass, host, port, name string) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

// Open connects to MySQL and verifies the connection before returning.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", newMySQLConfig(user, pass, host, port, name).FormatDSN())
	if err != nil {
		return nil, err
	}

	// The badge endpoint is read-heavy but short-lived; a modest pool with
	// recycled connections holds up fine behind the Redis response cache.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
