package reporter

import (
	"encoding/json"
	"html/template"
	"strings"
	"unicode"

	"github.com/alansmodic/edit-ledger/internal/models"
)

// titleCase converts string to title case (replaces deprecated strings.Title)
func titleCase(s string) string {
	if s == "" {
		return s
	}

	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// GetComparisonTemplateFunctions returns the functions available to the report page.
// diffHTML is the only function that marks text as trusted; it must only
// receive markup produced by the differ, which escapes every literal.
func GetComparisonTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		"json": func(v interface{}) (template.JS, error) {
			data, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(data), nil
		},
		"title":       titleCase,
		"joinStrings": strings.Join,
		"diffHTML": func(fd models.FieldDiff) template.HTML {
			return template.HTML(fd.DiffMarkup)
		},
		"changed": func(fd models.FieldDiff) bool {
			return fd.From != fd.To
		},
		"inc": func(i int) int {
			return i + 1
		},
	}
}
