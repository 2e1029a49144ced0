package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RequireTag returns the id of the tag with the given slug, creating
// the row if needed. An existing row keeps its id; its display name is
// refreshed to the latest input.
func (t *Tx) RequireTag(name, slug string, now time.Time) (ID, error) {
	id := NewID(now)
	ts := fmtTime(now)
	var raw []byte
	err := t.tx.QueryRow(`
		INSERT INTO tag (id, name, slug, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE
			SET name = excluded.name, modified_at = excluded.modified_at
		RETURNING id`,
		blob(id), name, slug, ts, ts).Scan(&raw)
	if err != nil {
		return ID{}, fmt.Errorf("store: require tag %q: %w", slug, err)
	}
	got, err := uuid.FromBytes(raw)
	if err != nil {
		return ID{}, fmt.Errorf("store: require tag %q: %w", slug, err)
	}
	return got, nil
}
