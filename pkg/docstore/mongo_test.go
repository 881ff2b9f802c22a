package docstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/sheet"
)

// Set SKETCHNOTE_TEST_MONGO_URI to run against a live server.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("SKETCHNOTE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SKETCHNOTE_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := NewMongoStore(ctx, uri, "sketchnote_test")
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer store.Close()
	defer store.coll.Drop(ctx)

	if err := store.Put(ctx, "notes", newTestSheet(t)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(ctx, "notes")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Len() != 1 {
		t.Errorf("Len() = %d, want 1", got.Len())
	}
	if err := store.Put(ctx, "notes", sheet.New()); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 {
		t.Errorf("List() = %d entries, want 1", len(infos))
	}
	if err := store.Delete(ctx, "notes"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "notes"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after delete = %v, want NOT_FOUND", err)
	}
}

func TestMongoStoreBadURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := NewMongoStore(ctx, "not-a-uri", ""); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("NewMongoStore(bad) = %v, want IO error", err)
	}
}
