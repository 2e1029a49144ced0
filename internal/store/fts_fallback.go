//go:build !sqlite_fts5

package store

import "database/sql"

func initContentTable(conn *sql.DB) error {
	// FTS5 not compiled in; search falls back to a LIKE scan over the
	// same table shape.
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS link_content (
			link_id BLOB PRIMARY KEY,
			content TEXT NOT NULL
		);
	`)
	return err
}

func searchPredicate(term string) (string, any) {
	return "id IN (SELECT link_id FROM link_content WHERE content LIKE ?)", "%" + term + "%"
}
