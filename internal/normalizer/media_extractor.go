package normalizer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alansmodic/edit-ledger/internal/models"
	"golang.org/x/net/html"
)

// ExtractMedia scans the original markup for media references. Element
// references come first in document order, followed by YouTube and Vimeo
// ids found anywhere in the raw text, including bare URLs. Each identity key
// is reported once.
func (n *Normalizer) ExtractMedia(raw string) []models.MediaReference {
	collector := newMediaCollector()
	if strings.TrimSpace(raw) == "" {
		return collector.refs
	}

	// scripting off so noscript fallbacks parse as elements
	if root, err := html.ParseWithOptions(strings.NewReader(raw), html.ParseOptionEnableScripting(false)); err == nil {
		goquery.NewDocumentFromNode(root).Find("img, video, audio").Each(func(_ int, sel *goquery.Selection) {
			switch goquery.NodeName(sel) {
			case "img":
				collector.add(imageReference(sel.AttrOr("src", ""), sel.AttrOr("alt", "")))
			case "video":
				collector.add(fileReference(models.MediaKindVideo, playerSource(sel)))
			case "audio":
				collector.add(fileReference(models.MediaKindAudio, playerSource(sel)))
			}
		})
	}

	for _, m := range youTubePattern.FindAllStringSubmatch(raw, -1) {
		collector.add(youTubeReference(m[1]), true)
	}
	for _, m := range vimeoPattern.FindAllStringSubmatch(raw, -1) {
		collector.add(vimeoReference(m[1]), true)
	}

	return collector.refs
}

// playerSource returns the element's own src, else the first nested source src
func playerSource(sel *goquery.Selection) string {
	if src := sel.AttrOr("src", ""); src != "" {
		return src
	}
	return sel.Find("source[src]").First().AttrOr("src", "")
}
