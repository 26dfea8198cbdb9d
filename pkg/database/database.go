package database

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"time"

	"github.com/alimgiray/gitossum/pkg/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MemoryPath opens a private in-memory database, used by tests
const MemoryPath = ":memory:"

// Open opens the SQLite database at path, tunes it and runs the bootstrap scripts
func Open(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, err
	}

	if dbPath == MemoryPath {
		// Every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(time.Hour)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err = optimizeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}

	if err = RunSQLScripts(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.WithField("path", dbPath).Info("Database connected")
	return db, nil
}

// optimizeDatabase configures SQLite for concurrent reads from the web tier
func optimizeDatabase(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=10000",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=30000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return err
		}
	}
	return nil
}

// RunSQLScripts executes the embedded bootstrap scripts in name order
func RunSQLScripts(db *sqlx.DB) error {
	files, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	for _, file := range files {
		if path.Ext(file.Name()) != ".sql" {
			continue
		}

		sqlContent, err := migrations.ReadFile(path.Join("migrations", file.Name()))
		if err != nil {
			return err
		}

		if _, err = db.Exec(string(sqlContent)); err != nil {
			return err
		}

		logger.WithField("script", file.Name()).Debug("Executed SQL script")
	}

	return nil
}
