package normalizer

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/alansmodic/edit-ledger/internal/models"
)

var (
	youTubePattern = regexp.MustCompile(`(?:youtube(?:-nocookie)?\.com/(?:embed/|watch\?v=|shorts/)|youtu\.be/)([a-zA-Z0-9_-]+)`)
	vimeoPattern   = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`)
	bareURLPattern = regexp.MustCompile(`https?://[^\s<>"']+`)
)

type platform int

const (
	platformUnknown platform = iota
	platformYouTube
	platformVimeo
	platformTwitter
	platformSpotify
	platformInstagram
)

var platformLabels = map[platform]string{
	platformYouTube:   "[YouTube Video]",
	platformVimeo:     "[Vimeo Video]",
	platformTwitter:   "[Twitter/X Embed]",
	platformSpotify:   "[Spotify Embed]",
	platformInstagram: "[Instagram Embed]",
}

// detectPlatform looks for a known provider marker in an embed locator.
// Block editor figures also recognise instagram.
func detectPlatform(locator string, withInstagram bool) platform {
	lower := strings.ToLower(locator)
	switch {
	case strings.Contains(lower, "youtube"), strings.Contains(lower, "youtu.be"):
		return platformYouTube
	case strings.Contains(lower, "vimeo"):
		return platformVimeo
	case strings.Contains(lower, "twitter"), isXHost(hostOf(lower)):
		return platformTwitter
	case strings.Contains(lower, "spotify"):
		return platformSpotify
	case withInstagram && strings.Contains(lower, "instagram"):
		return platformInstagram
	}
	return platformUnknown
}

func isXHost(host string) bool {
	return host == "x.com" || strings.HasSuffix(host, ".x.com")
}

// hostOf returns the lowercase hostname of a locator, or "" when it has none
func hostOf(locator string) string {
	u, err := url.Parse(strings.TrimSpace(locator))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// embedPlaceholder picks the label for an embeddable frame and builds
// references for the platforms that have a canonical video locator.
func embedPlaceholder(locator string, withInstagram bool) (string, []models.MediaReference) {
	if strings.TrimSpace(locator) == "" {
		return "[Embed]", nil
	}

	p := detectPlatform(locator, withInstagram)
	var refs []models.MediaReference
	switch p {
	case platformYouTube:
		if m := youTubePattern.FindStringSubmatch(locator); m != nil {
			refs = append(refs, youTubeReference(m[1]))
		}
	case platformVimeo:
		if m := vimeoPattern.FindStringSubmatch(locator); m != nil {
			refs = append(refs, vimeoReference(m[1]))
		}
	case platformUnknown:
		return bracket("Embed", hostOf(locator)), nil
	}
	return platformLabels[p], refs
}

func youTubeReference(id string) models.MediaReference {
	return models.MediaReference{
		Kind:      models.MediaKindYouTube,
		Src:       "https://www.youtube.com/embed/" + id,
		Name:      "YouTube Video",
		Thumbnail: "https://img.youtube.com/vi/" + id + "/hqdefault.jpg",
	}
}

func vimeoReference(id string) models.MediaReference {
	return models.MediaReference{
		Kind: models.MediaKindVimeo,
		Src:  "https://vimeo.com/" + id,
		Name: "Vimeo Video (" + id + ")",
	}
}
