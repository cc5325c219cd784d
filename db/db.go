package db

import (
	"database/sql"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"

	MigrationDir = "file://db/migration"
)

const (
	// one bot writes one match at a time
	maxOpenConns = 4
	maxIdleConns = 2
	connMaxLife  = time.Minute * 15
)

// sqlite has no migration runner here; the schema mirrors db/migration.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS matches (
	id TEXT PRIMARY KEY,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	my_id INTEGER NOT NULL,
	start_x INTEGER NOT NULL,
	start_y INTEGER NOT NULL,
	map_rows TEXT NOT NULL,
	started_at DATETIME NOT NULL,
	ended_at DATETIME,
	turns INTEGER,
	my_life INTEGER,
	opp_life INTEGER,
	reason TEXT
);

CREATE TABLE IF NOT EXISTS turns (
	match_id TEXT NOT NULL REFERENCES matches (id) ON DELETE CASCADE,
	turn INTEGER NOT NULL,
	epoch INTEGER NOT NULL,
	candidates INTEGER NOT NULL,
	sector INTEGER NOT NULL,
	collapsed_x INTEGER,
	collapsed_y INTEGER,
	my_x INTEGER NOT NULL,
	my_y INTEGER NOT NULL,
	my_hp INTEGER NOT NULL,
	opp_hp INTEGER NOT NULL,
	command TEXT NOT NULL,
	marks BLOB,
	created_at DATETIME NOT NULL,
	PRIMARY KEY (match_id, turn)
);
`

func MustMigrate(db *sql.DB, migrationDir string) {
	driver, err := postgres.WithInstance(db, &postgres.Config{
		DatabaseName: "submarine",
	})
	if err != nil {
		panic(err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationDir, "submarine", driver)
	if err != nil {
		panic(err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		panic(err)
	}
	if dirty {
		panic("database is dirty")
	}
	log.Println("migration version:", version)

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return
		}
		panic(err)
	}
	log.Println("migration successful...")
}

func MustConnectToDb(psqlUrl string) *sql.DB {
	// Open may just validate its arguments without creating a connection to the database
	db, err := sql.Open(DriverPostgres, psqlUrl)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLife)

	MustMigrate(db, MigrationDir)
	return db
}

// MustOpenSqlite opens (or creates) a local journal file.
func MustOpenSqlite(dbPath string) *sql.DB {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		panic(err)
	}

	db, err := sql.Open(DriverSqlite, dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		panic(err)
	}

	// a single writer avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		panic(err)
	}

	log.Println("sqlite journal ready at", dbPath)
	return db
}

// MustOpen dispatches on the configured driver.
func MustOpen(driver, url string) *sql.DB {
	switch driver {
	case DriverPostgres:
		return MustConnectToDb(url)
	case DriverSqlite:
		return MustOpenSqlite(url)
	}
	panic("unsupported database driver: " + driver)
}
