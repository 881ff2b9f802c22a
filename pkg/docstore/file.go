package docstore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/sheet"
)

// FileStore is a file-based sheet store for CLI usage.
// Sheets are stored as JSON files in a data directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// DefaultDir returns $XDG_DATA_HOME/sketchnote/sheets, falling back to
// ~/.local/share when XDG_DATA_HOME is unset.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "sketchnote", "sheets"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "get home dir")
	}
	return filepath.Join(home, ".local", "share", "sketchnote", "sheets"), nil
}

// NewFileStore creates a new file-based store.
// If baseDir is empty, DefaultDir is used.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create sheet dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) sheetPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

func (s *FileStore) Put(ctx context.Context, name string, sh *sheet.Sheet) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := sh.Save(&buf); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.sheetPath(name) + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write sheet file")
	}
	if err := os.Rename(tmp, s.sheetPath(name)); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeIO, err, "write sheet file")
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, name string) (*sheet.Sheet, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.sheetPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(name)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read sheet file")
	}
	defer f.Close()
	return sheet.Load(f)
}

func (s *FileStore) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read sheet dir")
	}
	var out []Info
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{
			Name:      strings.TrimSuffix(entry.Name(), ".json"),
			UpdatedAt: fi.ModTime(),
			Size:      fi.Size(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.sheetPath(name)); err != nil {
		if os.IsNotExist(err) {
			return notFound(name)
		}
		return errors.Wrap(errors.ErrCodeIO, err, "remove sheet file")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for sheet files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
