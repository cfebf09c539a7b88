package storage

import (
	"context"
	"fmt"

	"tabela/internal/app/server/config"
	"tabela/internal/domain/record"
	"tabela/internal/infrastructure/migration"
	"tabela/internal/infrastructure/storage/postgres"
	"tabela/internal/infrastructure/storage/sqlite"

	"golang.org/x/exp/slog"
)

// Storage is an opened backend with its record repository.
type Storage interface {
	Records() record.Repository
	Ping(ctx context.Context) error
	Close() error
}

// Open migrates db to the latest schema and connects to it.
func Open(ctx context.Context, db config.Database, migrationsPath string, log *slog.Logger) (Storage, error) {
	if db.Driver != config.DriverPostgres && db.Driver != config.DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", db.Driver)
	}
	log = log.With("component", "storage", "driver", db.Driver, "source", db.Source)

	if err := migration.NewMigration(db, migrationsPath, migration.DefaultEngine).Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	switch db.Driver {
	case config.DriverPostgres:
		st, err := postgres.New(ctx, db.URI)
		if err != nil {
			return nil, err
		}
		log.Info("storage opened")
		return &pgStorage{Storage: st, records: postgres.NewRecordRepository(st.Pool(), log)}, nil

	case config.DriverSQLite:
		st, err := sqlite.New(ctx, db.URI)
		if err != nil {
			return nil, err
		}
		log.Info("storage opened", "path", db.URI)
		return &sqliteStorage{Storage: st, records: sqlite.NewRecordRepository(st.DB(), log)}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", db.Driver)
}

type pgStorage struct {
	*postgres.Storage
	records *postgres.RecordRepository
}

func (s *pgStorage) Records() record.Repository { return s.records }

type sqliteStorage struct {
	*sqlite.Storage
	records *sqlite.RecordRepository
}

func (s *sqliteStorage) Records() record.Repository { return s.records }
