package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Registers the postgres database driver and the file source.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"timetrack/internal/app/server/config"
)

// Migrator is the part of *migrate.Migrate the schema runner needs.
type Migrator interface {
	Up() error
	Down() error
	Version() (version uint, dirty bool, err error)
	Close() (source error, database error)
}

// MigrationEngine builds a Migrator. Tests swap it to stay off disk and DB.
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	db     config.DB
	engine MigrationEngine
}

func NewMigration(db config.DB, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		db:     db,
		engine: engine,
	}
}

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (mg *Migration) Up() error {
	return mg.run("up", Migrator.Up)
}

// Down rolls every migration back.
func (mg *Migration) Down() error {
	return mg.run("down", Migrator.Down)
}

// Version reports the applied schema version; zero means none.
func (mg *Migration) Version() (version uint, dirty bool, err error) {
	m, err := mg.open()
	if err != nil {
		return 0, false, err
	}
	defer func() { err = closeInto(m, err) }()

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration version: %w", err)
	}
	return version, dirty, nil
}

func (mg *Migration) run(direction string, step func(Migrator) error) (err error) {
	m, err := mg.open()
	if err != nil {
		return err
	}
	defer func() { err = closeInto(m, err) }()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s: %w", direction, err)
	}
	return nil
}

func (mg *Migration) open() (Migrator, error) {
	if mg.db.DatabaseURI == "" {
		return nil, errors.New("migration: database_uri is not set")
	}
	m, err := mg.engine("file://"+mg.db.Migrations, mg.db.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("migration init: %w", err)
	}
	return m, nil
}

func closeInto(m Migrator, err error) error {
	serr, dberr := m.Close()
	if serr != nil {
		err = errors.Join(err, fmt.Errorf("migration source: %w", serr))
	}
	if dberr != nil {
		err = errors.Join(err, fmt.Errorf("migration database: %w", dberr))
	}
	return err
}
