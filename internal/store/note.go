package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UpsertNote inserts a note or, when the title already exists,
// overwrites its content and modified_at in place, returning the
// surviving row's id. This is a whole-content overwrite; append
// semantics belong to the caller (read, compose, upsert).
func (t *Tx) UpsertNote(content, title string, linkID *ID, now time.Time) (ID, error) {
	id := NewID(now)
	ts := fmtTime(now)
	var link any
	if linkID != nil {
		link = blob(*linkID)
	}
	var raw []byte
	err := t.tx.QueryRow(`
		INSERT INTO note (id, content, title, link_id, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE
			SET content = excluded.content, modified_at = excluded.modified_at
		RETURNING id`,
		blob(id), content, title, link, ts, ts).Scan(&raw)
	if err != nil {
		return ID{}, fmt.Errorf("store: upsert note %q: %w", title, err)
	}
	got, err := uuid.FromBytes(raw)
	if err != nil {
		return ID{}, fmt.Errorf("store: upsert note %q: %w", title, err)
	}
	return got, nil
}

// NoteByTitle returns the note with the exact title, or nil.
func (t *Tx) NoteByTitle(title string) (*Note, error) {
	return t.getNote("title = ?", title)
}

// NoteByLink returns the note attached to the given link, or nil.
func (t *Tx) NoteByLink(linkID ID) (*Note, error) {
	return t.getNote("link_id = ?", blob(linkID))
}

func (t *Tx) getNote(clause string, arg any) (*Note, error) {
	row := t.tx.QueryRow(
		`SELECT id, content, title, link_id, created_at, modified_at FROM note WHERE `+clause, arg)
	var (
		raw, rawLink      []byte
		created, modified string
		n                 Note
	)
	err := row.Scan(&raw, &n.Content, &n.Title, &rawLink, &created, &modified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get note: %w", err)
	}
	if n.ID, err = uuid.FromBytes(raw); err != nil {
		return nil, fmt.Errorf("store: get note: %w", err)
	}
	if rawLink != nil {
		lid, err := uuid.FromBytes(rawLink)
		if err != nil {
			return nil, fmt.Errorf("store: get note: %w", err)
		}
		n.LinkID = &lid
	}
	if n.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if n.ModifiedAt, err = parseTime(modified); err != nil {
		return nil, err
	}
	return &n, nil
}

// DeleteNote hard-deletes a note; its tag associations cascade.
func (t *Tx) DeleteNote(id ID) error {
	_, err := t.tx.Exec(`DELETE FROM note WHERE id = ?`, blob(id))
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	return nil
}
