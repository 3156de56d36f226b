package model

// ItemType distinguishes the two record collections.
type ItemType string

const (
	TypeDoc   ItemType = "doc"
	TypePhoto ItemType = "photo"
)

// Item is a single document link or photo entry. JSON tags match the
// persisted content.json layout; changing them breaks existing databases.
type Item struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Type    ItemType `json:"type"`
	URL     string   `json:"url"`
	AddedAt string   `json:"addedAt"` // ISO-8601, set once at creation
}

// ContentData is the whole persisted aggregate: one JSON object holding both
// collections, newest-first. It is the sole source of truth; there is no
// secondary index.
type ContentData struct {
	Docs   []Item `json:"docs"`
	Photos []Item `json:"photos"`
}

// Empty returns an initialized aggregate with no items. Collections are
// non-nil so the serialized form is always {"docs":[],"photos":[]}.
func Empty() *ContentData {
	return &ContentData{Docs: []Item{}, Photos: []Item{}}
}

// Collection returns the slice that records of the given type live in.
// Every type other than doc resolves to the photo collection, matching the
// permissive lookup the API has always had.
func (d *ContentData) Collection(t ItemType) []Item {
	if t == TypeDoc {
		return d.Docs
	}
	return d.Photos
}
