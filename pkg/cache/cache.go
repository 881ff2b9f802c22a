package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte blobs under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the data stored under key. hit is false on a miss, which
	// is not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTL for exported artifacts.
const ArtifactTTL = 7 * 24 * time.Hour

// ArtifactKeyOpts are the export options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey keys an export of the sheet whose JSON hashes to sheetHash.
	ArtifactKey(sheetHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(sheetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sheetHash, opts)
}
