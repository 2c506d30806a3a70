package reporter

import (
	"encoding/json"
	"io"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/models"
)

// ComparisonWriter writes a ComparisonResult in one of the supported formats
type ComparisonWriter struct {
	html         *HTMLDiffReporter
	contextLines int
}

// NewComparisonWriter creates a writer backed by html for the html format
func NewComparisonWriter(html *HTMLDiffReporter, contextLines int) *ComparisonWriter {
	return &ComparisonWriter{html: html, contextLines: contextLines}
}

// Write renders result to w as json, html or text
func (cw *ComparisonWriter) Write(w io.Writer, format string, result *models.ComparisonResult) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return errorwrapper.WrapError(err, "failed to encode comparison as JSON")
		}
		return nil
	case FormatHTML:
		if cw.html == nil {
			return errorwrapper.NewError("html reporter is not configured")
		}
		return cw.html.Render(w, result)
	case FormatText:
		text, err := UnifiedText(result, cw.contextLines)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	default:
		return errorwrapper.NewValidationError("format", format, "must be one of json, html, text")
	}
}
