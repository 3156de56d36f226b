package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"contentapi/internal/model"
	"contentapi/internal/repository"
	"contentapi/internal/storage"
)

var (
	ErrURLRequired     = errors.New("url is required")
	ErrNotGoogleDocURL = errors.New("url is not a google doc link")
	ErrReaderNil       = errors.New("reader is nil")
	ErrNotFound        = errors.New("item not found")
)

// ItemRef identifies one record for batch operations.
type ItemRef struct {
	ID   string         `json:"id"`
	Type model.ItemType `json:"type"`
}

// BulkDeleteResult reports aggregate counts for a batch delete. A batch never
// fails as a whole; per-item failures only increment Failed.
type BulkDeleteResult struct {
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// ContentService defines the use cases over the content collection.
type ContentService interface {
	// ListContent returns the full collection. The read path fails soft, so
	// it degrades to an empty collection rather than erroring.
	ListContent(ctx context.Context) (*model.ContentData, error)

	// AddDocument validates and registers a Google Doc link.
	AddDocument(ctx context.Context, url, title string) (*model.Item, error)

	// GetDocument returns a single doc record by id.
	GetDocument(ctx context.Context, id string) (*model.Item, error)

	// UploadPhoto stores the payload as a blob under a unique key derived from
	// originalFilename and registers it as a photo record titled after the
	// original filename. The blob is removed again if registration fails.
	UploadPhoto(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*model.Item, error)

	// UpdateItemTitle renames a record. Returns false when it does not exist.
	UpdateItemTitle(ctx context.Context, id string, t model.ItemType, title string) (bool, error)

	// DeleteItem removes a record. For photos the underlying blob is deleted
	// first, best effort: a failed blob delete is logged and never blocks the
	// record removal. Returns false when the record does not exist.
	DeleteItem(ctx context.Context, id string, t model.ItemType) (bool, error)

	// DeleteItems deletes a batch of records, tolerating per-item failures.
	DeleteItems(ctx context.Context, refs []ItemRef) *BulkDeleteResult
}

// contentService is a concrete implementation of ContentService.
type contentService struct {
	store storage.Storage
	repo  repository.ContentRepository
}

// NewContentService constructs a new ContentService.
func NewContentService(store storage.Storage, repo repository.ContentRepository) ContentService {
	return &contentService{store: store, repo: repo}
}

func (s *contentService) ListContent(ctx context.Context) (*model.ContentData, error) {
	return s.repo.Load(ctx), nil
}

func (s *contentService) AddDocument(ctx context.Context, url, title string) (*model.Item, error) {
	if url == "" {
		return nil, ErrURLRequired
	}
	// Deliberately shallow allow-list check, kept as-is from day one. It
	// accepts any URL containing the substring, e.g. a docs.google.com path
	// segment on a foreign host.
	if !strings.Contains(url, "docs.google.com") {
		return nil, ErrNotGoogleDocURL
	}
	return s.repo.AddDoc(ctx, url, title)
}

func (s *contentService) GetDocument(ctx context.Context, id string) (*model.Item, error) {
	item, ok := s.repo.FindItem(ctx, id, model.TypeDoc)
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *contentService) UploadPhoto(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*model.Item, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	key := photoKey(originalFilename)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	item, err := s.repo.AddPhoto(ctx, objInfo.URL, originalFilename)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("register photo failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("register photo failed: %w", err)
	}
	return item, nil
}

func (s *contentService) UpdateItemTitle(ctx context.Context, id string, t model.ItemType, title string) (bool, error) {
	return s.repo.UpdateItemTitle(ctx, id, t, title)
}

// DeleteItem runs the two-step photo cleanup: blob first, record second.
// Step one failing is tolerated (orphaned blob), so the listing always wins
// over storage hygiene. A crash between the steps leaves the record pointing
// at a dead blob, which renders broken but stays deletable.
func (s *contentService) DeleteItem(ctx context.Context, id string, t model.ItemType) (bool, error) {
	if t == model.TypePhoto {
		item, ok := s.repo.FindItem(ctx, id, t)
		if !ok {
			return false, nil
		}
		if key, err := s.store.KeyFromURL(item.URL); err != nil {
			log.Printf("content service: photo %s: %v, skipping blob delete", id, err)
		} else if err := s.store.Delete(ctx, key); err != nil {
			log.Printf("content service: photo %s: blob delete failed, removing record anyway: %v", id, err)
		}
	}
	return s.repo.DeleteItem(ctx, id, t)
}

func (s *contentService) DeleteItems(ctx context.Context, refs []ItemRef) *BulkDeleteResult {
	res := &BulkDeleteResult{}
	for _, ref := range refs {
		ok, err := s.DeleteItem(ctx, ref.ID, ref.Type)
		if err != nil || !ok {
			res.Failed++
			continue
		}
		res.Deleted++
	}
	return res
}

// photoKey builds a unique storage key from the original filename. The random
// suffix keeps repeated uploads of the same filename from overwriting each
// other.
func photoKey(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	base := strings.TrimSuffix(filepath.Base(originalFilename), ext)
	if base == "" || base == "." {
		base = "photo"
	}
	suffix := uuid.NewString()[:8]
	return filepath.ToSlash(filepath.Join("photos", base+"-"+suffix+ext))
}
