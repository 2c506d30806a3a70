package normalizer

import (
	"net/url"
	"path"
	"strings"

	"github.com/alansmodic/edit-ledger/internal/models"
)

var extensionKinds = map[string]models.MediaKind{
	".jpg": models.MediaKindImage, ".jpeg": models.MediaKindImage, ".png": models.MediaKindImage,
	".gif": models.MediaKindImage, ".webp": models.MediaKindImage, ".svg": models.MediaKindImage,
	".bmp": models.MediaKindImage, ".avif": models.MediaKindImage,
	".mp4": models.MediaKindVideo, ".webm": models.MediaKindVideo, ".mov": models.MediaKindVideo,
	".m4v": models.MediaKindVideo, ".ogv": models.MediaKindVideo,
	".mp3": models.MediaKindAudio, ".wav": models.MediaKindAudio, ".ogg": models.MediaKindAudio,
	".m4a": models.MediaKindAudio, ".flac": models.MediaKindAudio, ".aac": models.MediaKindAudio,
}

// fileName returns the last path segment of a locator, ignoring query and fragment.
func fileName(locator string) string {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return ""
	}
	p := locator
	if u, err := url.Parse(locator); err == nil {
		p = u.Path
	} else if idx := strings.IndexAny(p, "?#"); idx >= 0 {
		p = p[:idx]
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

func kindForExtension(locator string) (models.MediaKind, bool) {
	kind, ok := extensionKinds[strings.ToLower(path.Ext(fileName(locator)))]
	return kind, ok
}

// imageReference builds an image reference; the display name is the alt text, else the file name
func imageReference(src, alt string) (models.MediaReference, bool) {
	if strings.TrimSpace(src) == "" {
		return models.MediaReference{}, false
	}
	name := alt
	if strings.TrimSpace(name) == "" {
		name = fileName(src)
	}
	return models.MediaReference{Kind: models.MediaKindImage, Src: src, Alt: alt, Name: name}, true
}

func fileReference(kind models.MediaKind, src string) (models.MediaReference, bool) {
	if strings.TrimSpace(src) == "" {
		return models.MediaReference{}, false
	}
	if kind == models.MediaKindImage {
		return imageReference(src, "")
	}
	return models.MediaReference{Kind: kind, Src: src, Name: fileName(src)}, true
}

// mediaCollector keeps the first reference seen for each identity key
type mediaCollector struct {
	seen map[string]struct{}
	refs []models.MediaReference
}

func newMediaCollector() *mediaCollector {
	return &mediaCollector{
		seen: make(map[string]struct{}),
		refs: make([]models.MediaReference, 0),
	}
}

func (c *mediaCollector) add(ref models.MediaReference, ok bool) {
	if !ok {
		return
	}
	key := ref.IdentityKey()
	if key == "" {
		return
	}
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}
	c.refs = append(c.refs, ref)
}
