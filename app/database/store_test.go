package database

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
)

func TestWrapClassifiesDriverErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, ErrDuplicate},
		{"foreign key violation", &pq.Error{Code: "23503"}, ErrReference},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := wrap("op", tc.err); !errors.Is(got, tc.want) {
				t.Fatalf("wrap(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestWrapKeepsOtherErrors(t *testing.T) {
	cause := errors.New("connection refused")
	got := wrap("list workers", cause)
	if !errors.Is(got, cause) {
		t.Fatalf("cause lost: %v", got)
	}
	if errors.Is(got, ErrNotFound) || errors.Is(got, ErrDuplicate) {
		t.Fatalf("misclassified: %v", got)
	}
	if got.Error() != "list workers: connection refused" {
		t.Fatalf("message = %q", got.Error())
	}
	if wrap("noop", nil) != nil {
		t.Fatal("nil error must stay nil")
	}
}
