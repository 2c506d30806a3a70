package differ

import (
	"strings"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/config"
	"github.com/alansmodic/edit-ledger/internal/models"
)

// WordDiffer computes word level diffs and renders them as inline markup.
// It is immutable after Build and safe for concurrent use.
type WordDiffer struct {
	insertClass string
	deleteClass string
}

// WordDifferBuilder provides a fluent interface for creating WordDiffer
type WordDifferBuilder struct {
	cfg config.DiffConfig
}

// NewWordDifferBuilder creates a builder with the default classes
func NewWordDifferBuilder() *WordDifferBuilder {
	return &WordDifferBuilder{cfg: config.NewDefaultDiffConfig()}
}

// WithDiffConfig sets the diff configuration
func (b *WordDifferBuilder) WithDiffConfig(cfg config.DiffConfig) *WordDifferBuilder {
	b.cfg = cfg
	return b
}

// Build creates the WordDiffer
func (b *WordDifferBuilder) Build() (*WordDiffer, error) {
	if strings.TrimSpace(b.cfg.InsertClass) == "" {
		return nil, errorwrapper.NewValidationError("insert_class", b.cfg.InsertClass, "insert class cannot be empty")
	}
	if strings.TrimSpace(b.cfg.DeleteClass) == "" {
		return nil, errorwrapper.NewValidationError("delete_class", b.cfg.DeleteClass, "delete class cannot be empty")
	}
	return &WordDiffer{insertClass: b.cfg.InsertClass, deleteClass: b.cfg.DeleteClass}, nil
}

var defaultDiffer = &WordDiffer{
	insertClass: config.DefaultDiffInsertClass,
	deleteClass: config.DefaultDiffDeleteClass,
}

// Diff renders the word level diff of two texts with the default classes.
func Diff(from, to string) string {
	return defaultDiffer.Diff(from, to)
}

// Outcome is the full result of diffing one pair of texts.
type Outcome struct {
	Markup   string
	Segments []models.ContentDiff
	Stats    models.DiffStatistics
}

// TableAdmitter decides whether an alignment table for m by n tokens may be built.
type TableAdmitter func(m, n int) error

// Diff renders the diff markup. Equal inputs produce an empty string.
func (d *WordDiffer) Diff(from, to string) string {
	return d.Analyze(from, to).Markup
}

// Analyze diffs from and to without any size limit.
func (d *WordDiffer) Analyze(from, to string) Outcome {
	out, _ := d.AnalyzeWithLimit(from, to, nil)
	return out
}

// AnalyzeWithLimit diffs from and to. When admit is set and rejects the
// table size the returned error comes from admit and the Outcome is empty.
func (d *WordDiffer) AnalyzeWithLimit(from, to string, admit TableAdmitter) (Outcome, error) {
	if from == to {
		toks := Tokenize(from)
		return Outcome{
			Segments: mergeSegments([]models.ContentDiff{{Operation: models.DiffEqual, Text: from}}),
			Stats:    models.DiffStatistics{TokensEqual: len(toks), IsIdentical: true},
		}, nil
	}

	fromTokens, toTokens := Tokenize(from), Tokenize(to)

	var ops []models.ContentDiff
	switch {
	case from == "":
		ops = []models.ContentDiff{{Operation: models.DiffInsert, Text: to}}
	case to == "":
		ops = []models.ContentDiff{{Operation: models.DiffDelete, Text: from}}
	default:
		if admit != nil {
			if err := admit(len(fromTokens), len(toTokens)); err != nil {
				return Outcome{}, err
			}
		}
		ops = editScript(fromTokens, toTokens)
	}

	segments := mergeSegments(ops)
	stats := tokenStats(ops)
	if from == "" {
		stats.TokensInserted = len(toTokens)
	}
	if to == "" {
		stats.TokensDeleted = len(fromTokens)
	}
	return Outcome{Markup: d.render(segments), Segments: segments, Stats: stats}, nil
}

// Coarse renders a whole-field replacement without aligning tokens.
func (d *WordDiffer) Coarse(from, to string) Outcome {
	if from == to {
		return d.Analyze(from, to)
	}
	segments := mergeSegments([]models.ContentDiff{
		{Operation: models.DiffDelete, Text: from},
		{Operation: models.DiffInsert, Text: to},
	})
	return Outcome{
		Markup:   d.render(segments),
		Segments: segments,
		Stats: models.DiffStatistics{
			TokensDeleted:  len(Tokenize(from)),
			TokensInserted: len(Tokenize(to)),
		},
	}
}

func tokenStats(ops []models.ContentDiff) models.DiffStatistics {
	var stats models.DiffStatistics
	for _, op := range ops {
		switch op.Operation {
		case models.DiffInsert:
			stats.TokensInserted++
		case models.DiffDelete:
			stats.TokensDeleted++
		default:
			stats.TokensEqual++
		}
	}
	stats.IsIdentical = stats.TokensInserted == 0 && stats.TokensDeleted == 0
	return stats
}
