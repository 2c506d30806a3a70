package reporter

import (
	"fmt"
	"strings"

	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedText renders result as plain text: a unified line diff for every
// changed field followed by one line per added or removed media reference.
func UnifiedText(result *models.ComparisonResult, contextLines int) (string, error) {
	if result == nil {
		return "", nil
	}
	if contextLines < 0 {
		contextLines = 0
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "comparison %s -> %s\n", result.From.ID, result.To.ID)

	fields := []struct {
		name string
		diff models.FieldDiff
	}{
		{models.FieldTitle, result.Fields.Title},
		{models.FieldContent, result.Fields.Content},
		{models.FieldExcerpt, result.Fields.Excerpt},
	}

	for _, f := range fields {
		if f.diff.From == f.diff.To {
			continue
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(f.diff.From),
			B:        difflib.SplitLines(f.diff.To),
			FromFile: f.name + "@" + result.From.ID,
			ToFile:   f.name + "@" + result.To.ID,
			Context:  contextLines,
		})
		if err != nil {
			return "", fmt.Errorf("failed to build unified diff for %s: %w", f.name, err)
		}
		sb.WriteString(text)
		if f.diff.ErrorMessage != "" {
			fmt.Fprintf(&sb, "! %s: %s\n", f.name, f.diff.ErrorMessage)
		}
	}

	for _, m := range result.MediaChanges.Added {
		fmt.Fprintf(&sb, "+ media %s %s\n", m.Kind, m.Src)
	}
	for _, m := range result.MediaChanges.Removed {
		fmt.Fprintf(&sb, "- media %s %s\n", m.Kind, m.Src)
	}

	return sb.String(), nil
}
