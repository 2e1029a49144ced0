//go:build sqlite_fts5

package store

import "database/sql"

func initContentTable(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS link_content USING fts5(
			link_id UNINDEXED,
			content,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func searchPredicate(term string) (string, any) {
	return "id IN (SELECT link_id FROM link_content WHERE link_content MATCH ?)", term
}
