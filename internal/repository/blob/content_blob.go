package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"strconv"
	"sync"
	"time"

	"contentapi/internal/model"
	"contentapi/internal/repository"
	"contentapi/internal/storage"
)

// dbKey is the well-known key of the JSON content database in the blob store.
const dbKey = "content.json"

// contentBlob stores the whole ContentData aggregate as one JSON object in
// the blob store and rewrites it on every mutation.
//
// A single mutex serializes every load-modify-store cycle, so concurrent
// mutations within one process cannot lose each other's writes. Writers in
// other processes still race with last-write-wins semantics; running more
// than one instance against the same bucket is unsupported.
type contentBlob struct {
	store storage.Storage

	mu sync.Mutex
}

// NewContentBlob returns a ContentRepository backed by the given object store.
func NewContentBlob(store storage.Storage) repository.ContentRepository {
	return &contentBlob{store: store}
}

func (r *contentBlob) Load(ctx context.Context) *model.ContentData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *contentBlob) Store(ctx context.Context, data *model.ContentData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persist(ctx, data)
}

func (r *contentBlob) AddDoc(ctx context.Context, url, title string) (*model.Item, error) {
	if title == "" {
		title = "Untitled Document"
	}
	return r.add(ctx, model.TypeDoc, url, title)
}

func (r *contentBlob) AddPhoto(ctx context.Context, blobURL, title string) (*model.Item, error) {
	if title == "" {
		title = "Photo"
	}
	return r.add(ctx, model.TypePhoto, blobURL, title)
}

func (r *contentBlob) add(ctx context.Context, t model.ItemType, url, title string) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := r.load(ctx)
	item := model.Item{
		ID:      newID(data.Collection(t)),
		Title:   title,
		Type:    t,
		URL:     url,
		AddedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if t == model.TypeDoc {
		data.Docs = append([]model.Item{item}, data.Docs...)
	} else {
		data.Photos = append([]model.Item{item}, data.Photos...)
	}
	if err := r.persist(ctx, data); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentBlob) UpdateItemTitle(ctx context.Context, id string, t model.ItemType, title string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := r.load(ctx)
	items := data.Collection(t)
	for i := range items {
		if items[i].ID == id {
			items[i].Title = title
			return true, r.persist(ctx, data)
		}
	}
	// Not found: skip the write entirely.
	return false, nil
}

func (r *contentBlob) DeleteItem(ctx context.Context, id string, t model.ItemType) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := r.load(ctx)
	items := data.Collection(t)
	kept := items[:0:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if kept == nil {
		kept = []model.Item{}
	}
	if t == model.TypeDoc {
		data.Docs = kept
	} else {
		data.Photos = kept
	}
	return true, r.persist(ctx, data)
}

func (r *contentBlob) FindItem(ctx context.Context, id string, t model.ItemType) (*model.Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range r.load(ctx).Collection(t) {
		if it.ID == id {
			found := it
			return &found, true
		}
	}
	return nil, false
}

// load fetches and decodes the backing object. Any failure degrades to an
// empty document: the app prefers rendering an empty collection over failing
// every request while storage is unreachable or corrupt.
func (r *contentBlob) load(ctx context.Context) *model.ContentData {
	objs, err := r.store.List(ctx, dbKey)
	if err != nil {
		log.Printf("content repository: list %s: %v, serving empty document", dbKey, err)
		return model.Empty()
	}
	if len(objs) == 0 {
		// First read before anything was written. Not persisted until the
		// first mutation.
		return model.Empty()
	}

	rc, _, err := r.store.Get(ctx, dbKey)
	if err != nil {
		log.Printf("content repository: get %s: %v, serving empty document", dbKey, err)
		return model.Empty()
	}
	defer rc.Close()

	data := model.Empty()
	if err := json.NewDecoder(rc).Decode(data); err != nil && err != io.EOF {
		log.Printf("content repository: decode %s: %v, serving empty document", dbKey, err)
		return model.Empty()
	}
	if data.Docs == nil {
		data.Docs = []model.Item{}
	}
	if data.Photos == nil {
		data.Photos = []model.Item{}
	}
	return data
}

// persist overwrites the backing object with pretty-printed JSON. The indent
// keeps the stored file hand-inspectable; it is not part of the contract.
func (r *contentBlob) persist(ctx context.Context, data *model.ContentData) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = r.store.Put(ctx, dbKey, bytes.NewReader(b), storage.PutObjectOptions{
		Size:        int64(len(b)),
		ContentType: "application/json",
	})
	return err
}

// newID derives a record id from the current millisecond clock, bumping until
// it is unique within the collection. Two adds inside the same millisecond
// would otherwise collide now that the mutex removes the network round-trip
// between them.
func newID(items []model.Item) string {
	ms := time.Now().UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if !containsID(items, id) {
			return id
		}
		ms++
	}
}

func containsID(items []model.Item, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
