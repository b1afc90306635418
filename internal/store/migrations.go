package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Normalized activities supplied by the importer
		`CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			sport TEXT NOT NULL,
			duration_minutes REAL NOT NULL,
			distance_km REAL,
			rpe REAL,
			avg_hr REAL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_sport ON activities(sport)`,

		// Training plans (macro skeleton)
		`CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			goal TEXT NOT NULL,
			total_weeks INTEGER NOT NULL,
			race_week INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS plan_weeks (
			plan_id TEXT NOT NULL,
			week_number INTEGER NOT NULL,
			phase TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			target_volume_km REAL NOT NULL,
			is_recovery_week INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (plan_id, week_number),
			FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS plan_workouts (
			id TEXT PRIMARY KEY,
			plan_id TEXT NOT NULL,
			week_number INTEGER NOT NULL,
			date TEXT NOT NULL,
			type TEXT NOT NULL,
			distance_km REAL NOT NULL,
			duration_minutes REAL NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_plan_workouts_plan ON plan_workouts(plan_id, week_number)`,

		// Import State (key-value store for import tracking)
		`CREATE TABLE IF NOT EXISTS import_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}
