package store

import (
	"time"

	"github.com/google/uuid"
)

// ID identifies a row in any table. IDs are UUIDv7 values stored as
// 16-byte blobs, so two independently populated databases can be
// merged without colliding and without losing creation order.
type ID = uuid.UUID

// Link is a bookmark row. Content lives in the separate content table
// and is only populated by GetLink.
type Link struct {
	ID          ID
	URL         string
	Title       string
	Description string
	Content     string
	IsPrimary   bool
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

// Note is a freeform note, unique by title, optionally attached to a
// link.
type Note struct {
	ID         ID
	Content    string
	Title      string
	LinkID     *ID
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// Tag is a display name plus its canonical slug, unique by slug.
type Tag struct {
	ID         ID
	Name       string
	Slug       string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// RelatedLink is one forward edge from a link: the target URL and the
// optional relationship label.
type RelatedLink struct {
	URL          string
	Relationship string
}

func blob(id ID) []byte { return id[:] }

// Timestamps are stored as RFC 3339 strings at second resolution; the
// store must be able to parse anything it previously wrote.
func fmtTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// nullable maps the empty string to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
