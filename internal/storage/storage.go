package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// Storage areas. Object keys are "<area>/<name>".
const (
	AreaPlayers = "players"
	AreaDrills  = "drills"
)

// FileStorage defines the interface for the photo and drill file areas.
type FileStorage interface {
	// Save stores the content under key, replacing any existing object.
	Save(ctx context.Context, key string, content io.Reader, size int64, contentType string) error

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the names (without the area prefix) of the objects in an area,
	// sorted, skipping hidden names.
	List(ctx context.Context, area string) ([]string, error)

	// URL returns an address a browser can fetch the object from.
	URL(ctx context.Context, key string) (string, error)
}

// Key joins an area and an object name.
func Key(area, name string) string {
	return path.Join(area, name)
}

// NewObjectName generates a collision-free name such as "p_3f2a...e1.jpg".
// The extension of the original filename is kept (lower-cased); fallbackExt is
// used when the original has none.
func NewObjectName(prefix, originalFilename, fallbackExt string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(originalFilename, `\`, "/")))
	if ext == "" {
		ext = fallbackExt
	}
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:16] + ext
}

func visible(name string) bool {
	return name != "" && !strings.HasPrefix(name, ".")
}
