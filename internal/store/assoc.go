package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/starford/bindrune/internal/apperr"
)

// ItemRef names the owner of a tag association: exactly one of a link
// or a note. The zero value is invalid.
type ItemRef struct {
	linkID *ID
	noteID *ID
}

// LinkRef makes an ItemRef owned by a link.
func LinkRef(id ID) ItemRef { return ItemRef{linkID: &id} }

// NoteRef makes an ItemRef owned by a note.
func NoteRef(id ID) ItemRef { return ItemRef{noteID: &id} }

// AssociateTag records item<->tag membership. Inserting a pair that
// already exists is a no-op.
func (t *Tx) AssociateTag(item ItemRef, tagID ID) error {
	var link, note any
	switch {
	case item.linkID != nil:
		link = blob(*item.linkID)
	case item.noteID != nil:
		note = blob(*item.noteID)
	default:
		return fmt.Errorf("%w: tag association requires a link or note owner", apperr.ErrValidation)
	}
	_, err := t.tx.Exec(`
		INSERT INTO item_tag (link_id, note_id, tag_id)
		VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING`,
		link, note, blob(tagID))
	if err != nil {
		return fmt.Errorf("store: associate tag: %w", err)
	}
	return nil
}

// TagsForItem returns the tags associated with the id, whether it
// denotes a link or a note, ordered by slug.
func (t *Tx) TagsForItem(itemID ID) ([]Tag, error) {
	rows, err := t.tx.Query(`
		SELECT DISTINCT id, name, slug, created_at, modified_at
		FROM tag
		WHERE id IN (SELECT tag_id FROM item_tag WHERE link_id = ? OR note_id = ?)
		ORDER BY slug`,
		blob(itemID), blob(itemID))
	if err != nil {
		return nil, fmt.Errorf("store: tags for item: %w", err)
	}
	defer rows.Close()

	var out []Tag
	for rows.Next() {
		var (
			raw               []byte
			created, modified string
			tag               Tag
		)
		if err := rows.Scan(&raw, &tag.Name, &tag.Slug, &created, &modified); err != nil {
			return nil, fmt.Errorf("store: tags for item: %w", err)
		}
		if tag.ID, err = uuid.FromBytes(raw); err != nil {
			return nil, fmt.Errorf("store: tags for item: %w", err)
		}
		if tag.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if tag.ModifiedAt, err = parseTime(modified); err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

// DeleteItemTags removes every association the id owns as either a
// link or a note.
func (t *Tx) DeleteItemTags(itemID ID) error {
	_, err := t.tx.Exec(`DELETE FROM item_tag WHERE link_id = ? OR note_id = ?`,
		blob(itemID), blob(itemID))
	if err != nil {
		return fmt.Errorf("store: delete item tags: %w", err)
	}
	return nil
}
