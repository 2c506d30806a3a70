package comparator

import (
	"context"
	"errors"
	"time"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/config"
	"github.com/alansmodic/edit-ledger/internal/differ"
	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/alansmodic/edit-ledger/internal/normalizer"
	"github.com/rs/zerolog"
)

// Comparator compares two documents field by field and resolves media changes.
// It is safe for concurrent use.
type Comparator struct {
	normalizer   *normalizer.Normalizer
	differ       *differ.WordDiffer
	validator    *sizeValidator
	includePatch bool
	logger       zerolog.Logger
}

// ComparatorBuilder provides a fluent interface for creating Comparator
type ComparatorBuilder struct {
	logger        zerolog.Logger
	diffCfg       config.DiffConfig
	comparatorCfg config.ComparatorConfig
	guard         *MemoryGuard
}

// NewComparatorBuilder creates a new builder with default configuration
func NewComparatorBuilder(logger zerolog.Logger) *ComparatorBuilder {
	return &ComparatorBuilder{
		logger:        logger.With().Str("component", "Comparator").Logger(),
		diffCfg:       config.NewDefaultDiffConfig(),
		comparatorCfg: config.NewDefaultComparatorConfig(),
	}
}

// WithDiffConfig sets the diff configuration
func (b *ComparatorBuilder) WithDiffConfig(cfg config.DiffConfig) *ComparatorBuilder {
	b.diffCfg = cfg
	return b
}

// WithComparatorConfig sets the size ceilings
func (b *ComparatorBuilder) WithComparatorConfig(cfg config.ComparatorConfig) *ComparatorBuilder {
	b.comparatorCfg = cfg
	return b
}

// WithMemoryGuard overrides the guard built from the comparator configuration
func (b *ComparatorBuilder) WithMemoryGuard(guard *MemoryGuard) *ComparatorBuilder {
	b.guard = guard
	return b
}

// Build creates the Comparator
func (b *ComparatorBuilder) Build() (*Comparator, error) {
	if b.comparatorCfg.MaxInputBytes <= 0 {
		return nil, errorwrapper.NewValidationError("max_input_bytes", b.comparatorCfg.MaxInputBytes, "must be positive")
	}
	if b.comparatorCfg.MaxTableCells <= 0 {
		return nil, errorwrapper.NewValidationError("max_table_cells", b.comparatorCfg.MaxTableCells, "must be positive")
	}

	wordDiffer, err := differ.NewWordDifferBuilder().WithDiffConfig(b.diffCfg).Build()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to build word differ")
	}

	guard := b.guard
	if guard == nil && b.comparatorCfg.MemoryGuardEnabled {
		guard = NewMemoryGuard(b.comparatorCfg.MaxMemoryFraction, b.logger)
	}

	return &Comparator{
		normalizer: normalizer.NewNormalizer(),
		differ:     wordDiffer,
		validator: &sizeValidator{
			maxInputBytes: b.comparatorCfg.MaxInputBytes,
			maxTableCells: b.comparatorCfg.MaxTableCells,
			guard:         guard,
		},
		includePatch: b.diffCfg.IncludePatch,
		logger:       b.logger,
	}, nil
}

// NewComparator builds a Comparator from the global configuration
func NewComparator(cfg *config.GlobalConfig, logger zerolog.Logger) (*Comparator, error) {
	if cfg == nil {
		return nil, errorwrapper.NewValidationError("config", cfg, "config cannot be nil")
	}
	return NewComparatorBuilder(logger).
		WithDiffConfig(cfg.DiffConfig).
		WithComparatorConfig(cfg.ComparatorConfig).
		Build()
}

// Compare diffs title, content and excerpt of two documents. Titles are
// compared as stored; content and excerpt are normalized first. Media changes
// come from the raw content. The context is checked between fields.
func (c *Comparator) Compare(ctx context.Context, from, to models.Document) (*models.ComparisonResult, error) {
	startTime := time.Now()

	result := &models.ComparisonResult{
		From:          models.ComparisonEndpoint{ID: from.ID},
		To:            models.ComparisonEndpoint{ID: to.ID},
		ChangedFields: models.ChangedFieldsBetween(from, to),
	}

	steps := []struct {
		name      string
		from, to  string
		normalize bool
		target    *models.FieldDiff
	}{
		{models.FieldTitle, from.Title, to.Title, false, &result.Fields.Title},
		{models.FieldContent, from.Content, to.Content, true, &result.Fields.Content},
		{models.FieldExcerpt, from.Excerpt, to.Excerpt, true, &result.Fields.Excerpt},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fromText, toText := step.from, step.to
		if step.normalize {
			fromText = c.normalizer.Normalize(step.from).Text
			toText = c.normalizer.Normalize(step.to).Text
		}
		*step.target = c.compareField(step.name, fromText, toText)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.MediaChanges = differ.ResolveMediaChanges(
		c.normalizer.ExtractMedia(from.Content),
		c.normalizer.ExtractMedia(to.Content),
	)
	result.ProcessingTimeMs = time.Since(startTime).Milliseconds()

	c.logger.Debug().
		Str("from", from.ID).
		Str("to", to.ID).
		Strs("changed_fields", result.ChangedFields).
		Int("media_added", len(result.MediaChanges.Added)).
		Int("media_removed", len(result.MediaChanges.Removed)).
		Int64("processing_time_ms", result.ProcessingTimeMs).
		Msg("Comparison complete")

	return result, nil
}

// compareField diffs one field. A field over a ceiling is rendered as a
// whole replacement and carries the reason in ErrorMessage.
func (c *Comparator) compareField(field, from, to string) models.FieldDiff {
	fd := models.FieldDiff{From: from, To: to}

	outcome, err := c.diffWithinLimits(from, to)
	if err != nil {
		if !errors.Is(err, errorwrapper.ErrTooLarge) {
			c.logger.Error().Err(err).Str("field", field).Msg("Unexpected diff failure, falling back to coarse diff")
		} else {
			c.logger.Warn().Err(err).Str("field", field).Msg("Field too large for word-level diff")
		}
		outcome = c.differ.Coarse(from, to)
		fd.ErrorMessage = err.Error()
	} else if c.includePatch {
		fd.Patch = differ.BuildPatch(from, to)
	}

	fd.DiffMarkup = outcome.Markup
	fd.Stats = outcome.Stats
	return fd
}

func (c *Comparator) diffWithinLimits(from, to string) (differ.Outcome, error) {
	if from == to {
		return c.differ.Analyze(from, to), nil
	}
	if err := c.validator.ValidateInput(from, to); err != nil {
		return differ.Outcome{}, err
	}
	return c.differ.AnalyzeWithLimit(from, to, c.validator.AdmitTable)
}
