package store

import (
	"errors"
	"testing"

	"github.com/starford/bindrune/internal/apperr"
)

func TestAssociateTagIdempotent(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		linkID, err := tx.InsertLink(LinkInsert{
			URL: "https://once.example", IsPrimary: true, Timestamp: at(0),
		}, false)
		if err != nil {
			t.Fatal(err)
		}
		tagID, err := tx.RequireTag("dup", "dup", at(0))
		if err != nil {
			t.Fatal(err)
		}
		for range 3 {
			if err := tx.AssociateTag(LinkRef(linkID), tagID); err != nil {
				t.Fatal(err)
			}
		}
		tags, err := tx.TagsForItem(linkID)
		if err != nil {
			t.Fatal(err)
		}
		if len(tags) != 1 {
			t.Errorf("got %d tags, want 1", len(tags))
		}
	})
}

func TestAssociateTagRejectsEmptyRef(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		tagID, err := tx.RequireTag("orphan", "orphan", at(0))
		if err != nil {
			t.Fatal(err)
		}
		if err := tx.AssociateTag(ItemRef{}, tagID); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}

func TestTagsForItemOrderedBySlug(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		linkID, err := tx.InsertLink(LinkInsert{
			URL: "https://sorted.example", IsPrimary: true, Timestamp: at(0),
		}, false)
		if err != nil {
			t.Fatal(err)
		}
		for _, name := range []string{"zebra", "apple", "mango"} {
			tagID, err := tx.RequireTag(name, name, at(0))
			if err != nil {
				t.Fatal(err)
			}
			if err := tx.AssociateTag(LinkRef(linkID), tagID); err != nil {
				t.Fatal(err)
			}
		}
		tags, err := tx.TagsForItem(linkID)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"apple", "mango", "zebra"}
		if len(tags) != len(want) {
			t.Fatalf("got %d tags, want %d", len(tags), len(want))
		}
		for i, tag := range tags {
			if tag.Slug != want[i] {
				t.Errorf("tags[%d] = %s, want %s", i, tag.Slug, want[i])
			}
		}
	})
}

func TestTagsForNoteOwner(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		noteID, err := tx.UpsertNote("content", "tagged note", nil, at(0))
		if err != nil {
			t.Fatal(err)
		}
		tagID, err := tx.RequireTag("journal", "journal", at(0))
		if err != nil {
			t.Fatal(err)
		}
		if err := tx.AssociateTag(NoteRef(noteID), tagID); err != nil {
			t.Fatal(err)
		}
		tags, err := tx.TagsForItem(noteID)
		if err != nil {
			t.Fatal(err)
		}
		if len(tags) != 1 || tags[0].Slug != "journal" {
			t.Errorf("tags = %+v", tags)
		}
	})
}

func TestDeleteItemTags(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		linkID, err := tx.InsertLink(LinkInsert{
			URL: "https://stripped.example", IsPrimary: true, Timestamp: at(0),
		}, false)
		if err != nil {
			t.Fatal(err)
		}
		tagID, err := tx.RequireTag("gone", "gone", at(0))
		if err != nil {
			t.Fatal(err)
		}
		if err := tx.AssociateTag(LinkRef(linkID), tagID); err != nil {
			t.Fatal(err)
		}
		if err := tx.DeleteItemTags(linkID); err != nil {
			t.Fatal(err)
		}
		tags, err := tx.TagsForItem(linkID)
		if err != nil {
			t.Fatal(err)
		}
		if len(tags) != 0 {
			t.Errorf("tags = %+v, want none", tags)
		}
	})
}
