package store

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPageSkip(t *testing.T) {
	if got := (Page{Page: 3, Limit: 20}).Skip(); got != 40 {
		t.Fatalf("expected skip 40, got %d", got)
	}
	if got := (Page{Page: 1, Limit: 50}).Skip(); got != 0 {
		t.Fatalf("expected skip 0, got %d", got)
	}
}

func TestObjectIDRejectsInvalidHex(t *testing.T) {
	if _, err := objectID("not-an-id"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := objectID("65f1c2a9e4b0a1b2c3d4e5f6"); err != nil {
		t.Fatalf("expected valid id, got %v", err)
	}
}

func TestExpectedUpdatedAt(t *testing.T) {
	read := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	if got, ok := expectedUpdatedAt(read).(time.Time); !ok || !got.Equal(read) {
		t.Fatalf("expected exact match on %v, got %v", read, got)
	}

	zero, ok := expectedUpdatedAt(time.Time{}).(bson.M)
	if !ok {
		t.Fatalf("expected $in filter for zero time, got %T", expectedUpdatedAt(time.Time{}))
	}
	in, ok := zero["$in"].(bson.A)
	if !ok || len(in) != 2 || in[0] != nil {
		t.Fatalf("expected $in [nil, zero], got %v", zero)
	}
}
