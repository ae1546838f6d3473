package storage

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound is returned when an operation targets an absent object.
var ErrBlobNotFound = errors.New("storage: blob not found")

// Area is a logical blob bucket reflecting a submission's lifecycle state.
type Area string

const (
	AreaPending  Area = "pending"
	AreaApproved Area = "approved"
)

// BlobStore holds submission images. Object names are area-relative; the
// same name is kept when an object moves between areas.
type BlobStore interface {
	// Save writes the object into the given area.
	Save(ctx context.Context, area Area, name string, r io.Reader, size int64) error

	// Move relocates the object between areas. The source must exist.
	Move(ctx context.Context, from, to Area, name string) error

	// Delete removes the object from the area.
	Delete(ctx context.Context, area Area, name string) error

	// Exists reports whether the object is present in the area.
	Exists(ctx context.Context, area Area, name string) (bool, error)
}
