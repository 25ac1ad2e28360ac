package database

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered schema history. The schema ships with the binary
// so it is embedded here instead of scanned from a directory.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_users",
		SQL: `
			CREATE TABLE IF NOT EXISTS users (
				user_id TEXT PRIMARY KEY,
				name TEXT NOT NULL DEFAULT '',
				phone TEXT NOT NULL DEFAULT '',
				emergency_contacts TEXT NOT NULL DEFAULT '[]',
				health_info TEXT NOT NULL DEFAULT '',
				medical_conditions TEXT NOT NULL DEFAULT '[]',
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		Version: 2,
		Name:    "create_companions",
		SQL: `
			CREATE TABLE IF NOT EXISTS companions (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				user_id TEXT NOT NULL,
				route TEXT NOT NULL DEFAULT '{}',
				current_location TEXT NOT NULL DEFAULT '{}',
				status TEXT NOT NULL DEFAULT 'active',
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_companions_user ON companions(user_id);
			CREATE INDEX IF NOT EXISTS idx_companions_status ON companions(status)
		`,
	},
	{
		Version: 3,
		Name:    "create_companion_requests",
		SQL: `
			CREATE TABLE IF NOT EXISTS companion_requests (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				from_user_id TEXT NOT NULL,
				to_user_id TEXT NOT NULL,
				message TEXT NOT NULL DEFAULT '',
				timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		Version: 4,
		Name:    "create_sos_alerts",
		SQL: `
			CREATE TABLE IF NOT EXISTS sos_alerts (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				location TEXT NOT NULL,
				route TEXT,
				message TEXT NOT NULL DEFAULT '',
				user_profile TEXT,
				active_route TEXT,
				timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_sos_alerts_user ON sos_alerts(user_id)
		`,
	},
	{
		Version: 5,
		Name:    "create_cctv_detections",
		SQL: `
			CREATE TABLE IF NOT EXISTS cctv_detections (
				id TEXT PRIMARY KEY,
				location TEXT NOT NULL,
				image_url TEXT NOT NULL,
				detections TEXT NOT NULL DEFAULT '[]',
				confidence REAL NOT NULL DEFAULT 0,
				user_confirmations INTEGER NOT NULL DEFAULT 0,
				verified INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
}

// Migrate applies all pending migrations in version order.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec(
			"INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}
