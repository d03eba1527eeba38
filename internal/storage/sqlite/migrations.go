package sqlite

// migrateModels adds the currency column to models tables created before it
// existed. Rows written earlier were always priced in USD.
func (s *Storage) migrateModels() error {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('models') WHERE name = 'currency'
	`).Scan(&count)
	if err != nil {
		return err
	}

	// No migration needed if column exists
	if count > 0 {
		return nil
	}

	_, err = s.db.Exec(`ALTER TABLE models ADD COLUMN currency TEXT NOT NULL DEFAULT 'USD'`)
	return err
}
