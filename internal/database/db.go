package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection. DATETIME columns
// are parsed into time.Time in loc, the same location the streak and
// decay jobs do their calendar math in; a nil loc falls back to UTC.
func Open(user, pass, host, port, name string, loc *time.Location) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(user, pass, host, port, name, loc))
	if err != nil {
		return nil, err
	}

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

func dsn(user, pass, host, port, name string, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = host + ":" + port
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = loc
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}
