package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Phrases table - maps gesture identifiers to spoken phrases
		`CREATE TABLE IF NOT EXISTS phrases (
			id TEXT PRIMARY KEY,
			gesture TEXT NOT NULL UNIQUE,
			phrase TEXT NOT NULL,
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Calibration table - single persisted gaze calibration record
		`CREATE TABLE IF NOT EXISTS calibration (
			id INTEGER PRIMARY KEY CHECK(id = 1),
			center_x REAL NOT NULL,
			center_y REAL NOT NULL,
			deadzone_radius REAL NOT NULL DEFAULT 100,
			captured_at_ms INTEGER NOT NULL
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_phrases_gesture ON phrases(gesture)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
