package normalizer

import (
	"strings"

	"github.com/alansmodic/edit-ledger/internal/models"
)

// placeholder is the outcome of one media rule applied to an element.
type placeholder struct {
	label string
	refs  []models.MediaReference
	end   int
}

// mediaRule inspects the element starting at i and reports whether it applies.
type mediaRule func(s *tokenStream, i int) (placeholder, bool)

// mediaRules are tried in order; the first one that applies wins.
var mediaRules = []mediaRule{
	imageRule,
	playerRule("video", "Video", models.MediaKindVideo),
	playerRule("audio", "Audio", models.MediaKindAudio),
	iframeRule,
	embedFigureRule,
	galleryRule,
	tableRule,
	fileRule,
	buttonRule,
}

func (s *tokenStream) placeholderAt(i int) (placeholder, bool) {
	for _, rule := range mediaRules {
		if p, ok := rule(s, i); ok {
			return p, true
		}
	}
	return placeholder{}, false
}

// bracket renders "[Label]" or "[Label: detail]"
func bracket(label, detail string) string {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return "[" + label + "]"
	}
	return "[" + label + ": " + detail + "]"
}

func imageRule(s *tokenStream, i int) (placeholder, bool) {
	tok := s.tokens[i]
	if tok.name != "img" {
		return placeholder{}, false
	}
	src := tok.attr("src")
	alt := strings.TrimSpace(tok.attr("alt"))

	p := placeholder{end: i}
	if alt != "" {
		p.label = bracket("Image", alt)
	} else {
		p.label = bracket("Image", fileName(src))
	}
	if ref, ok := imageReference(src, tok.attr("alt")); ok {
		p.refs = append(p.refs, ref)
	}
	return p, true
}

// playerRule handles video and audio, whose source may sit on a nested source element
func playerRule(name, label string, kind models.MediaKind) mediaRule {
	return func(s *tokenStream, i int) (placeholder, bool) {
		tok := s.tokens[i]
		if tok.name != name {
			return placeholder{}, false
		}
		end, ok := s.span(i)
		if !ok {
			return placeholder{}, false
		}
		src := tok.attr("src")
		if src == "" {
			src = s.firstAttr("source", "src", i, end)
		}
		p := placeholder{label: bracket(label, fileName(src)), end: end}
		if ref, ok := fileReference(kind, src); ok {
			p.refs = append(p.refs, ref)
		}
		return p, true
	}
}

func iframeRule(s *tokenStream, i int) (placeholder, bool) {
	tok := s.tokens[i]
	if tok.name != "iframe" {
		return placeholder{}, false
	}
	end, ok := s.span(i)
	if !ok {
		return placeholder{}, false
	}
	src := tok.attr("src")
	label, refs := embedPlaceholder(src, false)
	return placeholder{label: label, refs: refs, end: end}, true
}

func embedFigureRule(s *tokenStream, i int) (placeholder, bool) {
	tok := s.tokens[i]
	if tok.name != "figure" || !tok.hasClass("wp-block-embed") {
		return placeholder{}, false
	}
	end, ok := s.span(i)
	if !ok {
		return placeholder{}, false
	}
	locator := s.firstAttr("iframe", "src", i, end)
	if locator == "" {
		locator = bareURLPattern.FindString(s.textBetween(i, end))
	}
	if locator == "" {
		locator = tok.attr("class")
	}
	label, refs := embedPlaceholder(locator, true)
	return placeholder{label: label, refs: refs, end: end}, true
}

func galleryRule(s *tokenStream, i int) (placeholder, bool) {
	tok := s.tokens[i]
	if tok.name != "figure" || !tok.hasClass("wp-block-gallery") {
		return placeholder{}, false
	}
	end, ok := s.span(i)
	if !ok {
		return placeholder{}, false
	}
	p := placeholder{label: "[Gallery]", end: end}
	for k := i + 1; k < end; k++ {
		if s.tokens[k].isStart("img") {
			if ref, ok := imageReference(s.tokens[k].attr("src"), s.tokens[k].attr("alt")); ok {
				p.refs = append(p.refs, ref)
			}
		}
	}
	return p, true
}

func tableRule(s *tokenStream, i int) (placeholder, bool) {
	if s.tokens[i].name != "table" {
		return placeholder{}, false
	}
	end, ok := s.span(i)
	if !ok {
		return placeholder{}, false
	}
	return placeholder{label: "[Table]", end: end}, true
}

func fileRule(s *tokenStream, i int) (placeholder, bool) {
	tok := s.tokens[i]
	if (tok.name != "a" && tok.name != "div") || !tok.hasClass("wp-block-file") {
		return placeholder{}, false
	}
	end, ok := s.span(i)
	if !ok {
		return placeholder{}, false
	}
	href := tok.attr("href")
	if href == "" {
		href = s.firstAttr("a", "href", i, end)
	}
	p := placeholder{label: bracket("File", fileName(href)), end: end}
	if kind, ok := kindForExtension(href); ok {
		if ref, ok := fileReference(kind, href); ok {
			p.refs = append(p.refs, ref)
		}
	}
	return p, true
}

func buttonRule(s *tokenStream, i int) (placeholder, bool) {
	tok := s.tokens[i]
	if tok.name != "div" || !tok.hasClass("wp-block-button") {
		return placeholder{}, false
	}
	end, ok := s.span(i)
	if !ok {
		return placeholder{}, false
	}
	label := ""
	if a, found := s.firstStart("a", i, end); found {
		aEnd, closed := s.span(a)
		if !closed || aEnd > end {
			aEnd = end
		}
		label = collapseSpaces(s.textBetween(a, aEnd))
	}
	return placeholder{label: bracket("Button", label), end: end}, true
}

// collapseSpaces flattens a label onto one line
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
