package models

// Field names used by ComparisonResult and revision summaries.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldExcerpt = "excerpt"
)

// Document is one side of a comparison as supplied by the caller.
// ID is echoed back untouched.
type Document struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
}

// FieldDiff holds both sides of one field and the rendered inline diff.
type FieldDiff struct {
	From         string         `json:"from"`
	To           string         `json:"to"`
	DiffMarkup   string         `json:"diff_markup"`
	Stats        DiffStatistics `json:"stats"`
	Patch        string         `json:"patch,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// ComparisonFields groups the per-field diffs.
type ComparisonFields struct {
	Title   FieldDiff `json:"title"`
	Content FieldDiff `json:"content"`
	Excerpt FieldDiff `json:"excerpt"`
}

// ComparisonEndpoint echoes one side of the comparison.
type ComparisonEndpoint struct {
	ID string `json:"id"`
}

// ComparisonResult is the full output of comparing two documents.
type ComparisonResult struct {
	From             ComparisonEndpoint `json:"from"`
	To               ComparisonEndpoint `json:"to"`
	Fields           ComparisonFields   `json:"fields"`
	MediaChanges     MediaChangeSet     `json:"media_changes"`
	ChangedFields    []string           `json:"changed_fields"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
}

// HasChanges reports whether any field or media reference changed.
func (r *ComparisonResult) HasChanges() bool {
	return len(r.ChangedFields) > 0 || !r.MediaChanges.IsEmpty()
}

// ChangedFieldsBetween lists the fields whose raw values differ.
func ChangedFieldsBetween(from, to Document) []string {
	changes := make([]string, 0, 3)
	if from.Title != to.Title {
		changes = append(changes, FieldTitle)
	}
	if from.Content != to.Content {
		changes = append(changes, FieldContent)
	}
	if from.Excerpt != to.Excerpt {
		changes = append(changes, FieldExcerpt)
	}
	return changes
}
