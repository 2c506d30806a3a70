package reporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/config"
	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *models.ComparisonResult {
	return &models.ComparisonResult{
		From: models.ComparisonEndpoint{ID: "41"},
		To:   models.ComparisonEndpoint{ID: "42"},
		Fields: models.ComparisonFields{
			Title: models.FieldDiff{
				From:       "Old <title>",
				To:         "New <title>",
				DiffMarkup: `<del class="edit-ledger-diff-del">Old</del><ins class="edit-ledger-diff-ins">New</ins> &lt;title&gt;`,
			},
			Content: models.FieldDiff{From: "same body", To: "same body"},
			Excerpt: models.FieldDiff{
				From:         "a\nb",
				To:           "a\nc",
				DiffMarkup:   "a\n<del class=\"edit-ledger-diff-del\">b</del><ins class=\"edit-ledger-diff-ins\">c</ins>",
				ErrorMessage: "too big",
			},
		},
		MediaChanges: models.MediaChangeSet{
			Added:   []models.MediaReference{{Kind: models.MediaKindImage, Src: "/new.png", Alt: "<b>alt</b>"}},
			Removed: []models.MediaReference{{Kind: models.MediaKindYouTube, Src: "https://www.youtube.com/embed/abc"}},
		},
		ChangedFields: []string{models.FieldTitle, models.FieldExcerpt},
	}
}

func newTestReporter(t *testing.T) *HTMLDiffReporter {
	t.Helper()
	r, err := NewHTMLDiffReporter(config.NewDefaultReporterConfig(), config.NewDefaultDiffConfig(), zerolog.Nop())
	require.NoError(t, err)
	r.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return r
}

func TestHTMLDiffReporter_Render(t *testing.T) {
	r := newTestReporter(t)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleResult()))
	page := buf.String()

	assert.Contains(t, page, config.DefaultReporterReportTitle)
	assert.Contains(t, page, "2024-01-02T03:04:05Z")
	// diff markup is trusted
	assert.Contains(t, page, `<ins class="edit-ledger-diff-ins">New</ins> &lt;title&gt;`)
	// everything else is escaped
	assert.NotContains(t, page, "<b>alt</b>")
	assert.Contains(t, page, "&lt;b&gt;alt&lt;/b&gt;")
	assert.Contains(t, page, "too big")
	assert.Contains(t, page, `id="field-content"`)
	assert.Contains(t, page, "https://www.youtube.com/embed/abc")
}

func TestHTMLDiffReporter_RenderNil(t *testing.T) {
	r := newTestReporter(t)
	err := r.Render(&bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, errorwrapper.ErrInvalidInput)
}

func TestHTMLDiffReporter_WriteReport(t *testing.T) {
	r := newTestReporter(t)
	path := filepath.Join(t.TempDir(), "nested", "report.html")

	require.NoError(t, r.WriteReport(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}

func TestUnifiedText(t *testing.T) {
	text, err := UnifiedText(sampleResult(), 3)
	require.NoError(t, err)

	assert.Contains(t, text, "comparison 41 -> 42\n")
	assert.Contains(t, text, "--- title@41\n+++ title@42\n")
	assert.Contains(t, text, "-Old <title>\n+New <title>\n")
	assert.Contains(t, text, "-b\n+c\n")
	assert.Contains(t, text, "! excerpt: too big\n")
	assert.NotContains(t, text, "content@")
	assert.Contains(t, text, "+ media image /new.png\n")
	assert.Contains(t, text, "- media youtube https://www.youtube.com/embed/abc\n")
}

func TestUnifiedText_Nil(t *testing.T) {
	text, err := UnifiedText(nil, 3)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestComparisonWriter_Formats(t *testing.T) {
	cw := NewComparisonWriter(newTestReporter(t), 1)
	result := sampleResult()

	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{FormatJSON, func(t *testing.T, out string) {
			var decoded models.ComparisonResult
			require.NoError(t, json.Unmarshal([]byte(out), &decoded))
			assert.Equal(t, "42", decoded.To.ID)
			assert.Equal(t, result.ChangedFields, decoded.ChangedFields)
		}},
		{FormatHTML, func(t *testing.T, out string) {
			assert.Contains(t, out, "<html")
		}},
		{FormatText, func(t *testing.T, out string) {
			assert.Contains(t, out, "+++ excerpt@42")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, cw.Write(&buf, tt.format, result))
			tt.check(t, buf.String())
		})
	}

	err := cw.Write(&bytes.Buffer{}, "pdf", result)
	assert.ErrorIs(t, err, errorwrapper.ErrInvalidInput)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Content", titleCase("content"))
	assert.Equal(t, "", titleCase(""))
}
