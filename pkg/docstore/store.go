// Package docstore persists named sheets.
//
// Two backends implement [Store]:
//
//   - [FileStore]: one JSON file per sheet under $XDG_DATA_HOME/sketchnote/sheets
//   - [MongoStore]: documents in the "sheets" collection of a MongoDB database
//
// Names are restricted to letters, digits, '.', '_' and '-' so they are
// safe as file names. Getting or deleting a missing sheet fails with
// NOT_FOUND.
package docstore

import (
	"context"
	"regexp"
	"time"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/sheet"
)

// Store persists sheets by name.
type Store interface {
	Put(ctx context.Context, name string, s *sheet.Sheet) error
	Get(ctx context.Context, name string) (*sheet.Sheet, error)
	List(ctx context.Context) ([]Info, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Info describes a stored sheet.
type Info struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
	Size      int64     `json:"size"`
}

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName checks that name can be used as a sheet name.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid sheet name %q", name)
	}
	return nil
}

func notFound(name string) error {
	return errors.New(errors.ErrCodeNotFound, "sheet %q not found", name)
}
