package docstore

import (
	"context"
	"os"
	"testing"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
	"github.com/matzehuels/sketchnote/pkg/sheet"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="20"><rect width="10" height="20"/></svg>`

func newTestSheet(t *testing.T) *sheet.Sheet {
	t.Helper()
	s := sheet.New()
	if _, err := s.ImportData([]byte(testSVG), geom.V(5, 5)); err != nil {
		t.Fatalf("ImportData: %v", err)
	}
	return s
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"notes", true},
		{"week-12_v2.final", true},
		{"", false},
		{"../escape", false},
		{".hidden", false},
		{"a/b", false},
		{"with space", false},
	}
	for _, tt := range tests {
		err := ValidateName(tt.name)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateName(%q) = %v, want ok=%v", tt.name, err, tt.ok)
		}
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer store.Close()

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

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "notes" {
		t.Fatalf("List() = %+v, want [notes]", infos)
	}
	if infos[0].Size == 0 {
		t.Error("Size = 0, want > 0")
	}

	if err := store.Delete(ctx, "notes"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "notes"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after delete = %v, want NOT_FOUND", err)
	}
	if err := store.Delete(ctx, "notes"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Delete twice = %v, want NOT_FOUND", err)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(t.TempDir())

	if err := store.Put(ctx, "a", newTestSheet(t)); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, "a", sheet.New()); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after overwrite", got.Len())
	}
}

func TestFileStoreListSorted(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, _ := NewFileStore(dir)
	for _, name := range []string{"c", "a", "b"} {
		if err := store.Put(ctx, name, sheet.New()); err != nil {
			t.Fatal(err)
		}
	}
	os.WriteFile(dir+"/ignored.txt", []byte("x"), 0o600)

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, in := range infos {
		names = append(names, in.Name)
	}
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("List() names = %v, want [a b c]", names)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileStore(dir)
	os.WriteFile(store.sheetPath("bad"), []byte("{not json"), 0o600)

	_, err := store.Get(context.Background(), "bad")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Get(corrupt) = %v, want INVALID_FORMAT", err)
	}
}

func TestFileStoreRejectsBadName(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	err := store.Put(context.Background(), "../x", sheet.New())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Put(../x) = %v, want INVALID_INPUT", err)
	}
}

func TestDefaultDirXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/xdg/sketchnote/sheets" {
		t.Errorf("DefaultDir() = %q, want /tmp/xdg/sketchnote/sheets", dir)
	}
}
