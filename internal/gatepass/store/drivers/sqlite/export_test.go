package sqlite

import "database/sql"

// RawDB exposes the underlying handle to tests that poke the schema directly.
func RawDB(s *Store) *sql.DB { return s.db }
