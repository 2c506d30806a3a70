package models

// DiffOperation defines the type of change.
type DiffOperation int

const (
	// DiffEqual indicates an unchanged segment.
	DiffEqual DiffOperation = 0
	// DiffInsert indicates an inserted segment.
	DiffInsert DiffOperation = 1
	// DiffDelete indicates a deleted segment.
	DiffDelete DiffOperation = -1
)

// String returns the lowercase name used in JSON and templates.
func (op DiffOperation) String() string {
	switch op {
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "equal"
	}
}

// ContentDiff represents a single difference between two texts.
type ContentDiff struct {
	Operation DiffOperation `json:"operation"`
	Text      string        `json:"text"`
}

// DiffStatistics counts the tokens touched by an edit script.
type DiffStatistics struct {
	TokensEqual    int  `json:"tokens_equal"`
	TokensInserted int  `json:"tokens_inserted"`
	TokensDeleted  int  `json:"tokens_deleted"`
	IsIdentical    bool `json:"is_identical"`
}
