package store

import (
	"errors"
	"testing"

	"github.com/starford/bindrune/internal/apperr"
)

func relationFixture(t *testing.T, tx *Tx) (primary, related ID) {
	t.Helper()
	primary, err := tx.InsertLink(LinkInsert{
		URL: "https://primary.example", IsPrimary: true, Timestamp: at(0),
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	related, err = tx.InsertLink(LinkInsert{
		URL: "https://related.example", IsPrimary: false, Timestamp: at(0),
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	return primary, related
}

func TestRelateAndRelatedLinks(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		primary, related := relationFixture(t, tx)
		if err := tx.Relate(primary, related, "discussed at"); err != nil {
			t.Fatal(err)
		}

		out, err := tx.RelatedLinks(primary)
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 1 {
			t.Fatalf("got %d related links, want 1", len(out))
		}
		if out[0].URL != "https://related.example" || out[0].Relationship != "discussed at" {
			t.Errorf("related = %+v", out[0])
		}

		// The edge is directed; the target has no forward relations.
		back, err := tx.RelatedLinks(related)
		if err != nil {
			t.Fatal(err)
		}
		if len(back) != 0 {
			t.Errorf("target has forward relations: %+v", back)
		}
	})
}

func TestInverseRelations(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		primary, related := relationFixture(t, tx)
		if err := tx.Relate(primary, related, ""); err != nil {
			t.Fatal(err)
		}

		inbound, err := tx.InverseRelations(related)
		if err != nil {
			t.Fatal(err)
		}
		if len(inbound) != 1 || inbound[0] != primary {
			t.Errorf("inbound = %v, want [%s]", inbound, primary)
		}

		inbound, err = tx.InverseRelations(primary)
		if err != nil {
			t.Fatal(err)
		}
		if len(inbound) != 0 {
			t.Errorf("primary has inbound edges: %v", inbound)
		}
	})
}

func TestDeleteRelations(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		primary, related := relationFixture(t, tx)
		if err := tx.Relate(primary, related, ""); err != nil {
			t.Fatal(err)
		}
		if err := tx.DeleteRelations(&primary, nil); err != nil {
			t.Fatal(err)
		}
		out, err := tx.RelatedLinks(primary)
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 0 {
			t.Errorf("relations survived delete: %+v", out)
		}
	})
}

func TestDeleteRelationsRequiresEndpoint(t *testing.T) {
	st := testStore(t)
	withTx(t, st, func(tx *Tx) {
		if err := tx.DeleteRelations(nil, nil); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}
