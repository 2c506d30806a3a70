package models

// MediaKind classifies an embedded media reference.
type MediaKind string

const (
	MediaKindImage   MediaKind = "image"
	MediaKindVideo   MediaKind = "video"
	MediaKindAudio   MediaKind = "audio"
	MediaKindYouTube MediaKind = "youtube"
	MediaKindVimeo   MediaKind = "vimeo"
)

// MediaReference is one embedded media item found in a document.
// Src holds the source locator; for youtube and vimeo it is the canonical
// locator rebuilt from the platform video id.
type MediaReference struct {
	Kind      MediaKind `json:"type"`
	Src       string    `json:"src"`
	Alt       string    `json:"alt"`
	Name      string    `json:"name"`
	Thumbnail string    `json:"thumbnail,omitempty"`
}

// IdentityKey returns the value two references are compared by.
// Fields other than the key (alt text, display name) never affect identity.
func (m MediaReference) IdentityKey() string {
	// platform embeds carry their canonical locator in Src already
	return m.Src
}

// MediaChangeSet lists media added and removed between two revisions.
type MediaChangeSet struct {
	Added   []MediaReference `json:"added"`
	Removed []MediaReference `json:"removed"`
}

// IsEmpty reports whether no media changed.
func (s MediaChangeSet) IsEmpty() bool {
	return len(s.Added) == 0 && len(s.Removed) == 0
}
