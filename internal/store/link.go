package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/starford/bindrune/internal/apperr"
)

const linkColumns = "id, url, title, description, is_primary, created_at, modified_at"

// LinkInsert carries the column values for a new link row.
type LinkInsert struct {
	URL         string
	Title       string
	Description string
	Content     string
	IsPrimary   bool
	Timestamp   time.Time
}

// InsertLink inserts a link row and, when content is present, its
// full-text content. A duplicate URL is ErrConflict unless
// mergeOnConflict is set, in which case the existing row's id is
// returned and nothing but its url is reaffirmed.
func (t *Tx) InsertLink(l LinkInsert, mergeOnConflict bool) (ID, error) {
	id := NewID(l.Timestamp)
	ts := fmtTime(l.Timestamp)
	q := `INSERT INTO link (` + linkColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if mergeOnConflict {
		// DO NOTHING would end the statement without a row to return,
		// so reaffirm a column that cannot change.
		q += ` ON CONFLICT(url) DO UPDATE SET url = excluded.url`
	}
	q += ` RETURNING id`
	var raw []byte
	err := t.tx.QueryRow(q,
		blob(id), l.URL, nullable(l.Title), nullable(l.Description), l.IsPrimary, ts, ts).Scan(&raw)
	if err != nil {
		if isUniqueViolation(err) {
			return ID{}, fmt.Errorf("%w: link %q already exists", apperr.ErrConflict, l.URL)
		}
		return ID{}, fmt.Errorf("store: insert link %q: %w", l.URL, err)
	}
	got, err := uuid.FromBytes(raw)
	if err != nil {
		return ID{}, fmt.Errorf("store: insert link %q: %w", l.URL, err)
	}
	if l.Content != "" {
		if err := t.InsertContent(got, l.Content); err != nil {
			return ID{}, err
		}
	}
	return got, nil
}

// GetLink returns the matching row with its separately stored content,
// or nil when no row matches.
func (t *Tx) GetLink(sel TermOrID, primary PrimaryFilter) (*Link, error) {
	b := &builder{}
	b.where(primary.clause())
	if err := b.whereLookup(sel); err != nil {
		return nil, err
	}
	q, args := b.compile("SELECT "+linkColumns+" FROM link", "")
	l, err := scanLink(t.tx.QueryRow(q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get link: %w", err)
	}
	var content sql.NullString
	err = t.tx.QueryRow(`SELECT content FROM link_content WHERE link_id = ?`, blob(l.ID)).Scan(&content)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: get link content: %w", err)
	}
	l.Content = content.String
	return l, nil
}

// ListLinks returns primary links filtered by tag membership and/or
// content search, newest first.
func (t *Tx) ListLinks(tagSlugs []string, searchTerm string) ([]Link, error) {
	b := &builder{}
	b.where(PrimaryOnly.clause())
	b.whereTags(tagSlugs)
	b.whereSearch(searchTerm)
	q, args := b.compile("SELECT "+linkColumns+" FROM link", "ORDER BY created_at DESC")
	rows, err := t.tx.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list links: %w", err)
	}
	defer rows.Close()

	var out []Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list links: %w", err)
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// UpdateLink rewrites a link's mutable columns and stamps modified_at.
// Used by promotion and demotion.
func (t *Tx) UpdateLink(l *Link, now time.Time) error {
	ts := fmtTime(now)
	_, err := t.tx.Exec(`
		UPDATE link SET
			url = ?, title = ?, description = ?, is_primary = ?, modified_at = ?
		WHERE id = ?`,
		l.URL, nullable(l.Title), nullable(l.Description), l.IsPrimary, ts, blob(l.ID))
	if err != nil {
		return fmt.Errorf("store: update link %q: %w", l.URL, err)
	}
	l.ModifiedAt, err = parseTime(ts)
	return err
}

// DeleteLink hard-deletes a primary link row; deleting a secondary row
// through this path is a no-op. Child rows cascade; the content row is
// removed explicitly because the content table carries no foreign key.
func (t *Tx) DeleteLink(id ID) error {
	res, err := t.tx.Exec(`DELETE FROM link WHERE id = ? AND is_primary IS TRUE`, blob(id))
	if err != nil {
		return fmt.Errorf("store: delete link: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return t.DeleteContent(id)
	}
	return nil
}

// InsertContent stores a link's full text in the content table.
func (t *Tx) InsertContent(id ID, content string) error {
	_, err := t.tx.Exec(`INSERT INTO link_content (link_id, content) VALUES (?, ?)`,
		blob(id), content)
	if err != nil {
		return fmt.Errorf("store: insert content: %w", err)
	}
	return nil
}

// DeleteContent removes a link's content row.
func (t *Tx) DeleteContent(id ID) error {
	_, err := t.tx.Exec(`DELETE FROM link_content WHERE link_id = ?`, blob(id))
	if err != nil {
		return fmt.Errorf("store: delete content: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(r rowScanner) (*Link, error) {
	var (
		raw               []byte
		title, desc       sql.NullString
		created, modified string
		l                 Link
	)
	if err := r.Scan(&raw, &l.URL, &title, &desc, &l.IsPrimary, &created, &modified); err != nil {
		return nil, err
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return nil, err
	}
	l.ID = id
	l.Title = title.String
	l.Description = desc.String
	if l.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if l.ModifiedAt, err = parseTime(modified); err != nil {
		return nil, err
	}
	return &l, nil
}
