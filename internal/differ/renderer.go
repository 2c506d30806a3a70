package differ

import (
	"html/template"
	"strings"

	"github.com/alansmodic/edit-ledger/internal/models"
)

// mergeSegments joins consecutive operations that share a tag and drops empty text
func mergeSegments(ops []models.ContentDiff) []models.ContentDiff {
	merged := make([]models.ContentDiff, 0, len(ops))
	var run strings.Builder
	current := models.DiffEqual
	flush := func() {
		if run.Len() > 0 {
			merged = append(merged, models.ContentDiff{Operation: current, Text: run.String()})
			run.Reset()
		}
	}
	for _, op := range ops {
		if op.Text == "" {
			continue
		}
		if op.Operation != current {
			flush()
			current = op.Operation
		}
		run.WriteString(op.Text)
	}
	flush()
	return merged
}

// render wraps inserted and deleted segments in ins/del tags. Every literal is escaped.
func (d *WordDiffer) render(segments []models.ContentDiff) string {
	var b strings.Builder
	for _, seg := range segments {
		text := template.HTMLEscapeString(seg.Text)
		switch seg.Operation {
		case models.DiffInsert:
			b.WriteString(`<ins class="`)
			b.WriteString(d.insertClass)
			b.WriteString(`">`)
			b.WriteString(text)
			b.WriteString(`</ins>`)
		case models.DiffDelete:
			b.WriteString(`<del class="`)
			b.WriteString(d.deleteClass)
			b.WriteString(`">`)
			b.WriteString(text)
			b.WriteString(`</del>`)
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}
