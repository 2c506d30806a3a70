package normalizer

import (
	"strings"

	"github.com/alansmodic/edit-ledger/internal/models"
	"golang.org/x/net/html"
)

// Result is the diff-ready form of one markup field.
type Result struct {
	Text  string                  `json:"text"`
	Media []models.MediaReference `json:"media"`
}

// Normalizer turns stored post markup into plain text with media placeholders.
// It holds no state and is safe for concurrent use.
type Normalizer struct{}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

var defaultNormalizer = NewNormalizer()

// Normalize converts raw markup using the shared Normalizer.
func Normalize(raw string) Result {
	return defaultNormalizer.Normalize(raw)
}

// ExtractMedia scans raw markup using the shared Normalizer.
func ExtractMedia(raw string) []models.MediaReference {
	return defaultNormalizer.ExtractMedia(raw)
}

// blockClosers are the end tags that become line breaks
var blockClosers = map[string]bool{
	"p": true, "div": true, "li": true, "blockquote": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// Normalize converts raw markup into plain text. Media elements are replaced
// by bracketed placeholders at their position before any other tag is
// stripped. Malformed markup never fails; unmatched pieces pass through.
func (n *Normalizer) Normalize(raw string) Result {
	media := make([]models.MediaReference, 0)
	if raw == "" {
		return Result{Text: "", Media: media}
	}

	stream := lex(raw)
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(stream.tokens); i++ {
		tok := stream.tokens[i]
		switch tok.kind {
		case html.TextToken:
			b.WriteString(tok.text)
		case html.StartTagToken, html.SelfClosingTagToken:
			if p, ok := stream.placeholderAt(i); ok {
				b.WriteString(p.label)
				media = append(media, p.refs...)
				i = p.end
				continue
			}
			switch tok.name {
			case "script", "style":
				i = stream.skipRawText(i)
			case "br", "hr":
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			if blockClosers[tok.name] {
				b.WriteByte('\n')
			}
		}
	}

	return Result{Text: cleanText(b.String()), Media: media}
}
