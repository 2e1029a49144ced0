// Package linkservice coordinates the store and the content extractor
// behind the archive's commands.
package linkservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/bindrune/internal/apperr"
	"github.com/starford/bindrune/internal/fetch"
	"github.com/starford/bindrune/internal/store"
)

// Service runs each command as one transaction against the store.
type Service struct {
	store *store.Store
	fetch fetch.Extractor
	now   func() time.Time
}

// New creates a service over the given store and extractor.
func New(st *store.Store, ex fetch.Extractor) *Service {
	return &Service{store: st, fetch: ex, now: time.Now}
}

// AddInput carries everything the add command collects. Note is the
// already-composed note text, if any; editor interaction happens
// before the service is called.
type AddInput struct {
	URL         string
	Title       string
	Description string
	Tags        []string
	Note        string
	RelatedURL  string
	Relation    string
}

// Add fetches and distills the page, then records the link, its tags,
// the optional note, and the optional relation in one transaction.
// The fetch happens before the transaction opens so a network round
// trip never holds the write lock. Adding a URL that exists as a
// secondary link promotes it in place, keeping its identifier.
func (s *Service) Add(ctx context.Context, in AddInput) error {
	page, err := s.fetch.Extract(ctx, in.URL)
	if err != nil {
		return err
	}
	title := in.Title
	if title == "" {
		title = page.Title
	}
	description := in.Description
	if description == "" {
		description = page.Excerpt
	}
	content := strings.TrimSpace(page.TextContent)
	now := s.now()

	return s.store.WithTx(func(tx *store.Tx) error {
		existing, err := tx.GetLink(store.ByTerm(in.URL), store.Either)
		if err != nil {
			return err
		}
		_, effects, err := store.Transition(store.StateOf(existing), 0, store.OpAdd)
		if err != nil {
			if errors.Is(err, apperr.ErrConflict) {
				return fmt.Errorf("%w: <%s> is already bookmarked", apperr.ErrConflict, in.URL)
			}
			return err
		}

		var linkID store.ID
		for _, ef := range effects {
			switch ef {
			case store.EffectInsert:
				linkID, err = tx.InsertLink(store.LinkInsert{
					URL:         in.URL,
					Title:       title,
					Description: description,
					Content:     content,
					IsPrimary:   true,
					Timestamp:   now,
				}, false)
				if err != nil {
					return err
				}
			case store.EffectPromote:
				existing.Title = title
				existing.Description = description
				existing.IsPrimary = true
				if err := tx.UpdateLink(existing, now); err != nil {
					return err
				}
				// A secondary link never carries content before
				// promotion, so this is a first insert.
				if err := tx.InsertContent(existing.ID, content); err != nil {
					return err
				}
				linkID = existing.ID
			}
		}

		for _, name := range in.Tags {
			tagID, err := requireTag(tx, name, now)
			if err != nil {
				return err
			}
			if err := tx.AssociateTag(store.LinkRef(linkID), tagID); err != nil {
				return err
			}
		}

		if in.Note != "" {
			noteID, err := tx.UpsertNote(in.Note, in.URL, &linkID, now)
			if err != nil {
				return err
			}
			for _, name := range in.Tags {
				tagID, err := requireTag(tx, name, now)
				if err != nil {
					return err
				}
				if err := tx.AssociateTag(store.NoteRef(noteID), tagID); err != nil {
					return err
				}
			}
		}

		if in.RelatedURL != "" {
			relatedID, err := tx.InsertLink(store.LinkInsert{
				URL:       in.RelatedURL,
				IsPrimary: false,
				Timestamp: now,
			}, true)
			if err != nil {
				return err
			}
			if err := tx.Relate(linkID, relatedID, in.Relation); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns primary links, newest first, optionally filtered to
// those carrying any of the given tags.
func (s *Service) List(_ context.Context, tagNames []string) ([]store.Link, error) {
	slugs := make([]string, 0, len(tagNames))
	for _, name := range tagNames {
		slug, err := store.Slugify(name)
		if err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	var out []store.Link
	err := s.store.WithTx(func(tx *store.Tx) error {
		var err error
		out, err = tx.ListLinks(slugs, "")
		return err
	})
	return out, err
}

// Search returns primary links whose indexed content matches the term,
// newest first.
func (s *Service) Search(_ context.Context, term string) ([]store.Link, error) {
	var out []store.Link
	err := s.store.WithTx(func(tx *store.Tx) error {
		var err error
		out, err = tx.ListLinks(nil, term)
		return err
	})
	return out, err
}

// Detail is everything show renders for one link.
type Detail struct {
	Link    store.Link
	Tags    []store.Tag
	Note    *store.Note
	Related []store.RelatedLink
}

// Show returns the primary link matching the selector together with
// its tags, attached note, and forward relations.
func (s *Service) Show(_ context.Context, sel store.TermOrID) (*Detail, error) {
	var d *Detail
	err := s.store.WithTx(func(tx *store.Tx) error {
		link, err := tx.GetLink(sel, store.PrimaryOnly)
		if err != nil {
			return err
		}
		if link == nil {
			return apperr.ErrNotFound
		}
		tags, err := tx.TagsForItem(link.ID)
		if err != nil {
			return err
		}
		note, err := tx.NoteByLink(link.ID)
		if err != nil {
			return err
		}
		related, err := tx.RelatedLinks(link.ID)
		if err != nil {
			return err
		}
		d = &Detail{Link: *link, Tags: tags, Note: note, Related: related}
		return nil
	})
	return d, err
}

// RemoveResult reports which item kinds matched the removed term.
type RemoveResult struct {
	Link bool
	Note bool
}

// Remove deletes whichever of {primary link, titled note} matches the
// term. A primary link with inbound relation edges is demoted instead
// of deleted so those edges keep resolving: it loses its tags, its
// authored relations, and its content, but keeps its row and id.
func (s *Service) Remove(_ context.Context, item string) (RemoveResult, error) {
	var res RemoveResult
	err := s.store.WithTx(func(tx *store.Tx) error {
		link, err := tx.GetLink(store.ByTerm(item), store.PrimaryOnly)
		if err != nil {
			return err
		}
		if link != nil {
			inbound, err := tx.InverseRelations(link.ID)
			if err != nil {
				return err
			}
			_, effects, err := store.Transition(store.StatePrimary, len(inbound), store.OpRemove)
			if err != nil {
				return err
			}
			for _, ef := range effects {
				switch ef {
				case store.EffectDelete:
					err = tx.DeleteLink(link.ID)
				case store.EffectDemote:
					link.IsPrimary = false
					err = tx.UpdateLink(link, s.now())
				case store.EffectStripTags:
					err = tx.DeleteItemTags(link.ID)
				case store.EffectStripForwardRelations:
					err = tx.DeleteRelations(&link.ID, nil)
				case store.EffectDropContent:
					err = tx.DeleteContent(link.ID)
				}
				if err != nil {
					return err
				}
			}
			res.Link = true
		}
		note, err := tx.NoteByTitle(item)
		if err != nil {
			return err
		}
		if note != nil {
			if err := tx.DeleteNote(note.ID); err != nil {
				return err
			}
			res.Note = true
		}
		return nil
	})
	return res, err
}

// NoteContent returns the current content of the titled note, or ""
// when no such note exists. The note command uses it to compose
// appends before calling SaveNote.
func (s *Service) NoteContent(_ context.Context, title string) (string, error) {
	var content string
	err := s.store.WithTx(func(tx *store.Tx) error {
		note, err := tx.NoteByTitle(title)
		if err != nil {
			return err
		}
		if note != nil {
			content = note.Content
		}
		return nil
	})
	return content, err
}

// SaveNote stores the full content of a standalone titled note (a
// whole-content overwrite) and applies tags to it.
func (s *Service) SaveNote(_ context.Context, title, content string, tagNames []string) error {
	now := s.now()
	return s.store.WithTx(func(tx *store.Tx) error {
		noteID, err := tx.UpsertNote(content, title, nil, now)
		if err != nil {
			return err
		}
		for _, name := range tagNames {
			tagID, err := requireTag(tx, name, now)
			if err != nil {
				return err
			}
			if err := tx.AssociateTag(store.NoteRef(noteID), tagID); err != nil {
				return err
			}
		}
		return nil
	})
}

func requireTag(tx *store.Tx, name string, now time.Time) (store.ID, error) {
	slug, err := store.Slugify(name)
	if err != nil {
		return store.ID{}, err
	}
	return tx.RequireTag(name, slug, now)
}
