package store

import (
	"fmt"
	"strings"

	"github.com/starford/bindrune/internal/apperr"
)

// PrimaryFilter selects which side of the primary/secondary split a
// query sees.
type PrimaryFilter int

const (
	// Either matches links regardless of primary status.
	Either PrimaryFilter = iota
	// PrimaryOnly matches first-class bookmarks.
	PrimaryOnly
	// SecondaryOnly matches links that exist only as relation targets.
	SecondaryOnly
)

func (f PrimaryFilter) clause() string {
	switch f {
	case PrimaryOnly:
		return "is_primary IS TRUE"
	case SecondaryOnly:
		return "is_primary IS FALSE"
	default:
		return "1 = 1"
	}
}

// TermOrID selects a link either by its URL or by its identifier.
type TermOrID struct {
	term string
	id   ID
	byID bool
}

// ByTerm selects a link by URL.
func ByTerm(term string) TermOrID { return TermOrID{term: term} }

// ByID selects a link by identifier.
func ByID(id ID) TermOrID { return TermOrID{id: id, byID: true} }

// builder accumulates WHERE fragments and their bound values in
// matching order and compiles them into one parameterized statement.
// User input is only ever bound, never concatenated into query text.
type builder struct {
	clauses []string
	args    []any
}

func (b *builder) where(clause string, args ...any) {
	b.clauses = append(b.clauses, clause)
	b.args = append(b.args, args...)
}

func (b *builder) compile(base, tail string) (string, []any) {
	q := base
	if len(b.clauses) > 0 {
		q += " WHERE " + strings.Join(b.clauses, " AND ")
	}
	if tail != "" {
		q += " " + tail
	}
	return q, b.args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// whereTags matches links associated with any of the given tag slugs,
// either directly or through an attached note.
func (b *builder) whereTags(slugs []string) {
	if len(slugs) == 0 {
		return
	}
	ph := placeholders(len(slugs))
	clause := fmt.Sprintf(`id IN (
		SELECT link_id FROM item_tag
			WHERE link_id IS NOT NULL
			AND tag_id IN (SELECT id FROM tag WHERE slug IN (%s))
		UNION
		SELECT note.link_id FROM note
			JOIN item_tag ON item_tag.note_id = note.id
			WHERE note.link_id IS NOT NULL
			AND item_tag.tag_id IN (SELECT id FROM tag WHERE slug IN (%s)))`, ph, ph)
	args := make([]any, 0, 2*len(slugs))
	for _, s := range slugs {
		args = append(args, s)
	}
	for _, s := range slugs {
		args = append(args, s)
	}
	b.where(clause, args...)
}

// whereSearch matches the term against the content index, never the
// metadata columns.
func (b *builder) whereSearch(term string) {
	if term == "" {
		return
	}
	clause, arg := searchPredicate(term)
	b.where(clause, arg)
}

func (b *builder) whereLookup(sel TermOrID) error {
	switch {
	case sel.byID:
		b.where("id = ?", blob(sel.id))
	case sel.term != "":
		b.where("url = ?", sel.term)
	default:
		return fmt.Errorf("%w: link lookup requires a URL or an id", apperr.ErrValidation)
	}
	return nil
}
