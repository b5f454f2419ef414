package database

import (
	"database/sql"
	"fmt"
)

type migration struct {
	name string
	up   func(*sql.DB) error
}

func execSQL(stmt string) func(*sql.DB) error {
	return func(db *sql.DB) error {
		_, err := db.Exec(stmt)
		return err
	}
}

var migrations = []migration{
	{"create_agents_table", execSQL(`CREATE TABLE IF NOT EXISTS agents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nickname TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Inactive',
		x INTEGER NOT NULL DEFAULT 0,
		y INTEGER NOT NULL DEFAULT 0,
		image TEXT NOT NULL DEFAULT '',
		eliminations INTEGER NOT NULL DEFAULT 0 CHECK (eliminations >= 0),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)},

	{"create_targets_table", execSQL(`CREATE TABLE IF NOT EXISTS targets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Alive',
		x INTEGER NOT NULL DEFAULT 0,
		y INTEGER NOT NULL DEFAULT 0,
		image TEXT NOT NULL DEFAULT '',
		is_detected BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)},

	{"create_missions_table", execSQL(`CREATE TABLE IF NOT EXISTS missions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		agent_id INTEGER NOT NULL,
		target_id INTEGER NOT NULL,
		distance REAL NOT NULL DEFAULT 0,
		start_time DATETIME,
		estimated_duration REAL NOT NULL DEFAULT 0,
		execution_time REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Proposed',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (agent_id) REFERENCES agents(id) ON DELETE CASCADE,
		FOREIGN KEY (target_id) REFERENCES targets(id) ON DELETE CASCADE
	)`)},

	{"create_missions_indexes", execSQL(`CREATE INDEX IF NOT EXISTS idx_missions_agent_id ON missions(agent_id);
		CREATE INDEX IF NOT EXISTS idx_missions_target_id ON missions(target_id);
		CREATE INDEX IF NOT EXISTS idx_missions_status ON missions(status)`)},

	{"add_agents_token_column", addAgentsTokenColumn},
}

func runMigrations(db *sql.DB) error {
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	batch, err := getNextBatch(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		hasRun, err := hasMigrationRun(db, m.name)
		if err != nil {
			return err
		}
		if hasRun {
			continue
		}

		if err := m.up(db); err != nil {
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
		if err := recordMigration(db, m.name, batch); err != nil {
			return err
		}
	}
	return nil
}

func createMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		migration TEXT UNIQUE NOT NULL,
		batch INTEGER NOT NULL,
		ran_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func recordMigration(db *sql.DB, name string, batch int) error {
	_, err := db.Exec("INSERT INTO migrations (migration, batch) VALUES (?, ?)", name, batch)
	return err
}

func hasMigrationRun(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE migration = ?", name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func getNextBatch(db *sql.DB) (int, error) {
	var batch sql.NullInt64
	if err := db.QueryRow("SELECT MAX(batch) FROM migrations").Scan(&batch); err != nil {
		return 0, err
	}
	return int(batch.Int64) + 1, nil
}

// addAgentsTokenColumn is idempotent so databases created before the
// migrations table existed can be upgraded in place.
func addAgentsTokenColumn(db *sql.DB) error {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM pragma_table_info('agents') WHERE name = 'token'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = db.Exec("ALTER TABLE agents ADD COLUMN token TEXT NOT NULL DEFAULT ''")
	return err
}
