package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/starford/bindrune/internal/apperr"
)

// Relate inserts a directed edge from primary to related with an
// optional relationship label. Both endpoints must exist; the foreign
// keys reject dangling edges.
func (t *Tx) Relate(primaryID, relatedID ID, relationship string) error {
	_, err := t.tx.Exec(`
		INSERT INTO related_link (primary_link_id, related_link_id, relationship)
		VALUES (?, ?, ?)`,
		blob(primaryID), blob(relatedID), nullable(relationship))
	if err != nil {
		return fmt.Errorf("store: relate links: %w", err)
	}
	return nil
}

// RelatedLinks returns the edges originating at the given link as
// target URL plus label.
func (t *Tx) RelatedLinks(primaryID ID) ([]RelatedLink, error) {
	rows, err := t.tx.Query(`
		SELECT link.url, related_link.relationship
		FROM related_link
		JOIN link ON link.id = related_link.related_link_id
		WHERE related_link.primary_link_id = ?`,
		blob(primaryID))
	if err != nil {
		return nil, fmt.Errorf("store: related links: %w", err)
	}
	defer rows.Close()

	var out []RelatedLink
	for rows.Next() {
		var (
			rl    RelatedLink
			label sql.NullString
		)
		if err := rows.Scan(&rl.URL, &label); err != nil {
			return nil, fmt.Errorf("store: related links: %w", err)
		}
		rl.Relationship = label.String
		out = append(out, rl)
	}
	return out, rows.Err()
}

// InverseRelations returns the identifiers of links that relate to the
// given link. Remove uses the count to decide promote-vs-demote.
func (t *Tx) InverseRelations(linkID ID) ([]ID, error) {
	rows, err := t.tx.Query(`SELECT primary_link_id FROM related_link WHERE related_link_id = ?`,
		blob(linkID))
	if err != nil {
		return nil, fmt.Errorf("store: inverse relations: %w", err)
	}
	defer rows.Close()

	var out []ID
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("store: inverse relations: %w", err)
		}
		id, err := uuid.FromBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("store: inverse relations: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// DeleteRelations removes edges matching the given endpoints. At least
// one endpoint is required.
func (t *Tx) DeleteRelations(primaryID, relatedID *ID) error {
	b := &builder{}
	if primaryID != nil {
		b.where("primary_link_id = ?", blob(*primaryID))
	}
	if relatedID != nil {
		b.where("related_link_id = ?", blob(*relatedID))
	}
	if len(b.clauses) == 0 {
		return fmt.Errorf("%w: relation delete requires an endpoint", apperr.ErrValidation)
	}
	q, args := b.compile("DELETE FROM related_link", "")
	if _, err := t.tx.Exec(q, args...); err != nil {
		return fmt.Errorf("store: delete relations: %w", err)
	}
	return nil
}
