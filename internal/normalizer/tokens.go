package normalizer

import (
	"strings"

	"golang.org/x/net/html"
)

// token is a decoded html token: tag names are lowercase and text is unescaped
type token struct {
	kind  html.TokenType
	name  string
	attrs []html.Attribute
	text  string
}

func (t token) attr(key string) string {
	for _, a := range t.attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass matches one whitespace separated class token exactly
func (t token) hasClass(class string) bool {
	for _, c := range strings.Fields(t.attr("class")) {
		if c == class {
			return true
		}
	}
	return false
}

func (t token) isStart(name string) bool {
	return (t.kind == html.StartTagToken || t.kind == html.SelfClosingTagToken) && t.name == name
}

// tokenStream holds the full token list and, for every start tag, the index
// of its matching end tag (-1 when unclosed).
type tokenStream struct {
	tokens  []token
	closers []int
}

// textOnlyTags are the raw text elements whose bodies still hold markup worth
// reading. script and style stay raw and are dropped as a whole.
var textOnlyTags = map[string]bool{
	"iframe": true, "noscript": true, "noembed": true, "noframes": true,
	"textarea": true, "title": true, "xmp": true, "plaintext": true,
}

// lex tokenizes raw and pairs start and end tags in a single pass.
func lex(raw string) *tokenStream {
	z := html.NewTokenizer(strings.NewReader(raw))
	tokens := make([]token, 0, len(raw)/8+1)
	consumed := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// an unterminated trailing tag is dropped by the tokenizer; keep it as text
			if consumed < len(raw) {
				tokens = append(tokens, token{kind: html.TextToken, text: html.UnescapeString(raw[consumed:])})
			}
			break
		}
		consumed += len(z.Raw())

		t := z.Token()
		switch tt {
		case html.TextToken:
			tokens = append(tokens, token{kind: tt, text: t.Data})
		case html.StartTagToken, html.SelfClosingTagToken:
			if textOnlyTags[t.Data] {
				z.NextIsNotRawText()
			}
			tokens = append(tokens, token{kind: tt, name: t.Data, attrs: t.Attr})
		case html.EndTagToken:
			tokens = append(tokens, token{kind: tt, name: t.Data, attrs: t.Attr})
		default:
			// comments and doctypes carry nothing into the text
			tokens = append(tokens, token{kind: tt})
		}
	}

	closers := make([]int, len(tokens))
	open := make(map[string][]int)
	for i, t := range tokens {
		closers[i] = -1
		switch t.kind {
		case html.StartTagToken:
			open[t.name] = append(open[t.name], i)
		case html.EndTagToken:
			if stack := open[t.name]; len(stack) > 0 {
				closers[stack[len(stack)-1]] = i
				open[t.name] = stack[:len(stack)-1]
			}
		}
	}

	return &tokenStream{tokens: tokens, closers: closers}
}

// span returns the index of the last token of the element starting at i.
// ok is false for a start tag that is never closed.
func (s *tokenStream) span(i int) (end int, ok bool) {
	if s.tokens[i].kind == html.SelfClosingTagToken {
		return i, true
	}
	if c := s.closers[i]; c >= 0 {
		return c, true
	}
	return i, false
}

// skipRawText returns the last token index belonging to a script or style element
func (s *tokenStream) skipRawText(i int) int {
	if c := s.closers[i]; c >= 0 {
		return c
	}
	if i+1 < len(s.tokens) && s.tokens[i+1].kind == html.TextToken {
		return i + 1
	}
	return i
}

// textBetween concatenates the text tokens strictly inside (start, end)
func (s *tokenStream) textBetween(start, end int) string {
	var b strings.Builder
	for k := start + 1; k < end && k < len(s.tokens); k++ {
		if s.tokens[k].kind == html.TextToken {
			b.WriteString(s.tokens[k].text)
		}
	}
	return b.String()
}

// firstStart finds the first start tag named name inside (start, end)
func (s *tokenStream) firstStart(name string, start, end int) (int, bool) {
	for k := start + 1; k < end && k < len(s.tokens); k++ {
		if s.tokens[k].isStart(name) {
			return k, true
		}
	}
	return -1, false
}

// firstAttr returns the first non-empty attr of a name element inside (start, end)
func (s *tokenStream) firstAttr(name, key string, start, end int) string {
	for k := start + 1; k < end && k < len(s.tokens); k++ {
		if s.tokens[k].isStart(name) {
			if v := s.tokens[k].attr(key); v != "" {
				return v
			}
		}
	}
	return ""
}
