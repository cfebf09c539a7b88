package migration

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"tabela/internal/app/server/config"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers and the file source
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql
var embedded embed.FS

const embedScheme = "embed://"

// Migrator is the part of migrate.Migrate used here.
type Migrator interface {
	Up() error
	Down() error
	Close() (error, error)
}

// MigrationEngine builds a Migrator; tests swap it to stay off disk and DB.
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	db     config.Database
	path   string
	engine MigrationEngine
}

// NewMigration prepares migrations for db. An empty path selects the
// schema embedded in the binary.
func NewMigration(db config.Database, path string, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		db:     db,
		path:   path,
		engine: engine,
	}
}

// DefaultEngine opens either an embedded source or any URL golang-migrate knows.
func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	if dir, ok := strings.CutPrefix(sourceURL, embedScheme); ok {
		src, err := iofs.New(embedded, dir)
		if err != nil {
			return nil, fmt.Errorf("open embedded migrations: %w", err)
		}
		return migrate.NewWithSourceInstance("iofs", src, databaseURL)
	}
	return migrate.New(sourceURL, databaseURL)
}

func (mg *Migration) SourceURL() string {
	if mg.path != "" {
		return "file://" + mg.path
	}
	return embedScheme + "sql/" + mg.db.Driver
}

// Up applies all pending migrations. No pending migrations is not an error.
func (mg *Migration) Up() error {
	return mg.run(func(m Migrator) error { return m.Up() }, "up")
}

// Down rolls every migration back.
func (mg *Migration) Down() error {
	return mg.run(func(m Migrator) error { return m.Down() }, "down")
}

func (mg *Migration) run(step func(Migrator) error, name string) (err error) {
	m, err := mg.engine(mg.SourceURL(), mg.db.MigrateURL())
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s: %w", name, err)
	}
	return nil
}
