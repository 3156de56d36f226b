package repository

import (
	"context"

	"contentapi/internal/model"
)

// ContentRepository owns the single JSON content database. Every operation is
// a full load-modify-store cycle against the backing object; there is no
// per-record persistence.
//
// Reads fail soft: a missing, unreachable or corrupt backing object degrades
// to an empty document instead of an error. Writes propagate storage errors.
type ContentRepository interface {
	// Load fetches the backing object. Absent or unreadable storage yields an
	// empty document, never an error.
	Load(ctx context.Context) *model.ContentData

	// Store overwrites the backing object with the serialized document.
	Store(ctx context.Context, data *model.ContentData) error

	// AddDoc prepends a new doc record and persists. Empty title defaults to
	// "Untitled Document".
	AddDoc(ctx context.Context, url, title string) (*model.Item, error)

	// AddPhoto prepends a new photo record and persists. Empty title defaults
	// to "Photo".
	AddPhoto(ctx context.Context, blobURL, title string) (*model.Item, error)

	// UpdateItemTitle sets the title of the record with the given id and type.
	// Returns false without writing when the record does not exist.
	UpdateItemTitle(ctx context.Context, id string, t model.ItemType, title string) (bool, error)

	// DeleteItem removes the record with the given id and type. Returns false
	// without writing when the record does not exist.
	DeleteItem(ctx context.Context, id string, t model.ItemType) (bool, error)

	// FindItem returns a copy of the record with the given id and type.
	FindItem(ctx context.Context, id string, t model.ItemType) (*model.Item, bool)
}
