package store

import "testing"

func TestUpsertNoteOverwriteKeepsID(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		first, err := tx.UpsertNote("first draft", "reading list", nil, at(0))
		if err != nil {
			t.Fatal(err)
		}
		second, err := tx.UpsertNote("second draft", "reading list", nil, at(1))
		if err != nil {
			t.Fatal(err)
		}
		if second != first {
			t.Errorf("upsert returned %s, want original id %s", second, first)
		}

		note, err := tx.NoteByTitle("reading list")
		if err != nil {
			t.Fatal(err)
		}
		if note == nil {
			t.Fatal("note not found")
		}
		if note.Content != "second draft" {
			t.Errorf("content = %q, want overwrite", note.Content)
		}
		if !note.CreatedAt.Equal(at(0)) {
			t.Errorf("created_at = %v, want original", note.CreatedAt)
		}
		if !note.ModifiedAt.Equal(at(1)) {
			t.Errorf("modified_at = %v, want updated", note.ModifiedAt)
		}
	})
}

func TestNoteByLink(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		linkID, err := tx.InsertLink(LinkInsert{
			URL: "https://attached.example", IsPrimary: true, Timestamp: at(0),
		}, false)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := tx.UpsertNote("attached thoughts", "https://attached.example", &linkID, at(0)); err != nil {
			t.Fatal(err)
		}

		note, err := tx.NoteByLink(linkID)
		if err != nil {
			t.Fatal(err)
		}
		if note == nil {
			t.Fatal("note not found by link")
		}
		if note.LinkID == nil || *note.LinkID != linkID {
			t.Errorf("link_id = %v, want %s", note.LinkID, linkID)
		}
	})
}

func TestNoteMissingIsNil(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		note, err := tx.NoteByTitle("no such note")
		if err != nil {
			t.Fatal(err)
		}
		if note != nil {
			t.Errorf("note = %+v, want nil", note)
		}
	})
}

func TestDeleteNote(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		id, err := tx.UpsertNote("content", "doomed", nil, at(0))
		if err != nil {
			t.Fatal(err)
		}
		if err := tx.DeleteNote(id); err != nil {
			t.Fatal(err)
		}
		note, err := tx.NoteByTitle("doomed")
		if err != nil {
			t.Fatal(err)
		}
		if note != nil {
			t.Error("note survived delete")
		}
	})
}

func TestNoteCascadesOnLinkDelete(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		linkID, err := tx.InsertLink(LinkInsert{
			URL: "https://parent.example", IsPrimary: true, Timestamp: at(0),
		}, false)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := tx.UpsertNote("child", "https://parent.example", &linkID, at(0)); err != nil {
			t.Fatal(err)
		}
		if err := tx.DeleteLink(linkID); err != nil {
			t.Fatal(err)
		}
		note, err := tx.NoteByTitle("https://parent.example")
		if err != nil {
			t.Fatal(err)
		}
		if note != nil {
			t.Error("note survived its link's delete")
		}
	})
}
