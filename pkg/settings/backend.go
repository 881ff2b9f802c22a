package settings

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sketchnote/pkg/errors"
)

// Backend persists raw settings values.
type Backend interface {
	Load(ctx context.Context) (map[string]any, error)
	Save(ctx context.Context, values map[string]any) error
}

// DefaultPath returns the settings file location,
// $XDG_CONFIG_HOME/sketchnote/settings.toml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "locate config dir")
	}
	return filepath.Join(dir, "sketchnote", "settings.toml"), nil
}

// TOMLBackend stores settings in a TOML file.
type TOMLBackend struct {
	mu   sync.Mutex
	path string
}

// NewTOMLBackend returns a backend for path. An empty path selects
// DefaultPath.
func NewTOMLBackend(path string) (*TOMLBackend, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &TOMLBackend{path: path}, nil
}

// Path returns the settings file path.
func (b *TOMLBackend) Path() string { return b.path }

// Load reads the file. A missing file yields no values.
func (b *TOMLBackend) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	values := map[string]any{}
	if _, err := toml.DecodeFile(b.path, &values); err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", b.path)
	}
	return values, nil
}

// Save writes values atomically through a temporary file.
func (b *TOMLBackend) Save(ctx context.Context, values map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(values); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode settings")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create settings dir")
	}
	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".settings-*.toml")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write settings")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write settings")
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "replace %s", b.path)
	}
	return nil
}

// MemoryBackend keeps values in memory.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]any
	saves  int
}

// NewMemoryBackend returns a backend preloaded with values.
func NewMemoryBackend(values map[string]any) *MemoryBackend {
	m := &MemoryBackend{values: map[string]any{}}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MemoryBackend) Load(ctx context.Context) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = clone(v)
	}
	return out, nil
}

func (m *MemoryBackend) Save(ctx context.Context, values map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]any, len(values))
	for k, v := range values {
		m.values[k] = clone(v)
	}
	m.saves++
	return nil
}

// Saves returns how often Save was called.
func (m *MemoryBackend) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
