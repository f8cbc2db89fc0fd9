package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Drivers accepted by Open.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Options describes how to reach the relational store.
type Options struct {
	Driver string
	User   string
	Pass   string
	Host   string
	Port   string
	Name   string
}

// Open connects to MySQL or Postgres and verifies the connection.
func Open(o Options) (*sqlx.DB, error) {
	driverName, dsn, err := dsnFor(o)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func dsnFor(o Options) (driverName, dsn string, err error) {
	switch o.Driver {
	case "", DriverMySQL:
		auth := o.User
		if o.Pass != "" {
			auth = fmt.Sprintf("%s:%s", o.User, o.Pass)
		}
		// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
		return "mysql", fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			auth, o.Host, o.Port, o.Name), nil
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(o.User, o.Pass),
			Host:     o.Host + ":" + o.Port,
			Path:     "/" + o.Name,
			RawQuery: "sslmode=disable",
		}
		if o.Pass == "" {
			u.User = url.User(o.User)
		}
		// pgx registers its database/sql driver as "pgx"; sqlx maps it to $n binds.
		return "pgx", u.String(), nil
	}
	return "", "", fmt.Errorf("unsupported DB_DRIVER %q", o.Driver)
}
