package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Source names where the connection settings were taken from.
const (
	SourceURI     = "database_uri"
	SourceCreds   = "creds_json"
	SourceSecret  = "secrets_manager"
	SourceCompose = "db_host"
	SourceSQLite  = "sqlite_fallback"
)

var ErrNoSecretReader = errors.New("DB_CREDS_SECRET_ID is set but no secret reader is configured")

// Database is a resolved connection target.
type Database struct {
	Driver string
	// URI is a pgx DSN for postgres and a file path for sqlite3.
	URI    string
	Source string
}

// MigrateURL returns the URL form golang-migrate expects for the driver.
func (d Database) MigrateURL() string {
	if d.Driver == DriverSQLite {
		return "sqlite3://" + d.URI
	}
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(d.URI, scheme) {
			return "pgx5://" + strings.TrimPrefix(d.URI, scheme)
		}
	}
	return d.URI
}

// SecretReader fetches a secret string by id.
type SecretReader interface {
	SecretString(ctx context.Context, id string) (string, error)
}

type dbCreds struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Host     string      `json:"host"`
	Port     json.Number `json:"port"`
	DBName   string      `json:"dbname"`
}

// Resolve picks the database in order: explicit URI, credentials JSON,
// credentials stored in Secrets Manager, compose-style host variables
// and finally a local SQLite file.
func (d DB) Resolve(ctx context.Context, secrets SecretReader) (Database, error) {
	switch {
	case d.DatabaseURI != "":
		return Database{Driver: DriverPostgres, URI: d.DatabaseURI, Source: SourceURI}, nil

	case d.CredsJSON != "":
		uri, err := credsURI(d.CredsJSON)
		if err != nil {
			return Database{}, err
		}
		return Database{Driver: DriverPostgres, URI: uri, Source: SourceCreds}, nil

	case d.CredsSecretID != "":
		if secrets == nil {
			return Database{}, ErrNoSecretReader
		}
		raw, err := secrets.SecretString(ctx, d.CredsSecretID)
		if err != nil {
			return Database{}, fmt.Errorf("read secret %s: %w", d.CredsSecretID, err)
		}
		uri, err := credsURI(raw)
		if err != nil {
			return Database{}, err
		}
		return Database{Driver: DriverPostgres, URI: uri, Source: SourceSecret}, nil

	case d.Host != "":
		port := d.Port
		if port == "" {
			port = "5432"
		}
		return Database{
			Driver: DriverPostgres,
			URI:    postgresURI(d.User, d.Password, d.Host, port, d.Name),
			Source: SourceCompose,
		}, nil
	}

	return Database{Driver: DriverSQLite, URI: d.SQLitePath, Source: SourceSQLite}, nil
}

func credsURI(raw string) (string, error) {
	var c dbCreds
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return "", fmt.Errorf("decode database credentials: %w", err)
	}
	if c.Host == "" || c.Username == "" || c.DBName == "" {
		return "", errors.New("database credentials must contain username, host and dbname")
	}
	port := c.Port.String()
	if port == "" {
		port = "5432"
	}
	return postgresURI(c.Username, c.Password, c.Host, port, c.DBName), nil
}

func postgresURI(user, password, host, port, name string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + name,
	}
	return u.String()
}
