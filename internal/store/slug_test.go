package store

import (
	"errors"
	"testing"

	"github.com/starford/bindrune/internal/apperr"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"rust", "rust"},
		{"Rust", "rust"},
		{"  rust  ", "rust"},
		{"rust lang", "rust-lang"},
		{"rust   lang", "rust-lang"},
		{"Rust & Go!", "rust-go"},
		{"c++", "c"},
		{"-hello-", "hello"},
		{"lang:rust", "lang:rust"},
		{"Lang:Rust Lang", "lang:rust-lang"},
		{"lang: rust", "lang:rust"},
		{"a:b:c", "a:b:c"},
		{"über", "über"},
		{"日本語", "日本語"},
	}
	for _, tc := range cases {
		got, err := Slugify(tc.in)
		if err != nil {
			t.Errorf("Slugify(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	for _, in := range []string{"Rust & Go!", "lang: rust", "  Hello World  "} {
		once, err := Slugify(in)
		if err != nil {
			t.Fatal(err)
		}
		twice, err := Slugify(once)
		if err != nil {
			t.Fatal(err)
		}
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSlugifyInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "???", "---", ":", ":foo", "foo:", "foo::bar", "foo: :bar", "-:-"} {
		if _, err := Slugify(in); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Slugify(%q) error = %v, want ErrValidation", in, err)
		}
	}
}
