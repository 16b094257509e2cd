package bootstrap

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/shopbot/core/config"
	coredatabase "github.com/m3rciful/shopbot/core/database"
)

func noopLoggerInit(*coreconfig.Config) error { return nil }

// lazyDB builds a handle without touching the network; lib/pq connects
// on first use only.
func lazyDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sql.Open("postgres", "user=t host=t dbname=t sslmode=disable")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return sqlx.NewDb(db, "postgres")
}

func TestRunRejectsNilConfig(t *testing.T) {
	if _, err := Run(Options{LoggerInit: noopLoggerInit}); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestRunFileBackendSkipsDatabase(t *testing.T) {
	connected := false
	cfg := &coreconfig.Config{}
	cfg.Storage.Backend = coreconfig.StorageBackendFile

	res, err := Run(Options{
		Config:     cfg,
		LoggerInit: noopLoggerInit,
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			connected = true
			return nil, nil
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if connected {
		t.Fatal("file backend must not open a database")
	}
	if res.DB != nil {
		t.Fatal("file backend result must carry no db")
	}
}

func TestRunPostgresBackendMapsDatabaseConfig(t *testing.T) {
	cfg := &coreconfig.Config{}
	cfg.Storage.Backend = coreconfig.StorageBackendPostgres
	cfg.Storage.Database = coreconfig.DatabaseConfig{
		Host:           "db.local",
		Port:           "5433",
		User:           "shopbot",
		Password:       "secret",
		Name:           "shop",
		SSLMode:        "require",
		MaxConnections: 7,
	}

	want := coredatabase.Config{
		Host:           "db.local",
		Port:           "5433",
		User:           "shopbot",
		Password:       "secret",
		Name:           "shop",
		SSLMode:        "require",
		MaxConnections: 7,
	}

	db := lazyDB(t)
	var gotConnect, gotMigrate coredatabase.Config
	res, err := Run(Options{
		Config:     cfg,
		LoggerInit: noopLoggerInit,
		Connect: func(c coredatabase.Config) (*sqlx.DB, error) {
			gotConnect = c
			return db, nil
		},
		Migrate: func(c coredatabase.Config) error {
			gotMigrate = c
			return nil
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if gotConnect != want {
		t.Fatalf("connect config = %+v", gotConnect)
	}
	if gotMigrate != want {
		t.Fatalf("migrate config = %+v", gotMigrate)
	}
	if res.DB != db {
		t.Fatal("result must expose the connected db")
	}
}

func TestRunMigrateFailure(t *testing.T) {
	cfg := &coreconfig.Config{}
	cfg.Storage.Backend = coreconfig.StorageBackendPostgres

	boom := errors.New("schema drift")
	_, err := Run(Options{
		Config:     cfg,
		LoggerInit: noopLoggerInit,
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			return lazyDB(t), nil
		},
		Migrate: func(coredatabase.Config) error { return boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected migrate error, got %v", err)
	}
}
