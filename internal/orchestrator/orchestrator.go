package orchestrator

import (
	"context"
	"errors"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/comparator"
	"github.com/alansmodic/edit-ledger/internal/datastore"
	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/rs/zerolog"
)

// LedgerOrchestrator ties the revision store to the comparator.
// It is shared by the HTTP API and the CLI.
type LedgerOrchestrator struct {
	store      *datastore.RevisionStore
	comparator *comparator.Comparator
	logger     zerolog.Logger
}

// NewLedgerOrchestrator creates a new LedgerOrchestrator.
func NewLedgerOrchestrator(store *datastore.RevisionStore, cmp *comparator.Comparator, logger zerolog.Logger) (*LedgerOrchestrator, error) {
	if store == nil {
		return nil, errorwrapper.NewValidationError("store", nil, "revision store cannot be nil")
	}
	if cmp == nil {
		return nil, errorwrapper.NewValidationError("comparator", nil, "comparator cannot be nil")
	}
	return &LedgerOrchestrator{
		store:      store,
		comparator: cmp,
		logger:     logger.With().Str("component", "LedgerOrchestrator").Logger(),
	}, nil
}

// Compare diffs two caller-supplied documents.
func (o *LedgerOrchestrator) Compare(ctx context.Context, from, to models.Document) (*models.ComparisonResult, error) {
	return o.comparator.Compare(ctx, from, to)
}

// SaveRevision stores rev unless it repeats the post's latest content.
func (o *LedgerOrchestrator) SaveRevision(ctx context.Context, rev models.Revision) (*models.Revision, bool, error) {
	saved, created, err := o.store.SaveRevision(ctx, rev)
	if err != nil {
		return nil, false, err
	}
	if created {
		o.logger.Info().Int64("post_id", saved.PostID).Int64("revision_id", saved.ID).Str("author", saved.Author).Msg("Revision stored")
	}
	return saved, created, nil
}

// ListRevisions returns a post's revisions, newest first.
func (o *LedgerOrchestrator) ListRevisions(ctx context.Context, postID int64, perPage int) ([]models.RevisionSummary, error) {
	return o.store.ListRevisions(ctx, postID, perPage)
}

// RecentRevisions returns revisions across all posts.
func (o *LedgerOrchestrator) RecentRevisions(ctx context.Context, filter models.RevisionFilter) ([]models.RevisionSummary, int, error) {
	return o.store.RecentRevisions(ctx, filter)
}

// DiffRevision compares a stored revision against compareTo, or against the
// revision before it when compareTo is zero. A post's first revision is
// compared against an empty document, so everything it holds reads as
// inserted. The revision being inspected is always the "to" side.
func (o *LedgerOrchestrator) DiffRevision(ctx context.Context, revisionID, compareTo int64) (*models.RevisionDiff, error) {
	target, err := o.store.GetRevision(ctx, revisionID)
	if err != nil {
		return nil, err
	}

	var base *models.Revision
	if compareTo > 0 {
		base, err = o.store.GetRevision(ctx, compareTo)
		if err != nil {
			return nil, errorwrapper.WrapError(err, "comparison revision")
		}
	} else {
		base, err = o.store.PreviousRevision(ctx, target)
		if errors.Is(err, errorwrapper.ErrNotFound) {
			o.logger.Debug().Int64("revision_id", revisionID).Msg("No previous revision, comparing against an empty document")
			base, err = &models.Revision{PostID: target.PostID}, nil
		}
		if err != nil {
			return nil, err
		}
	}

	result, err := o.comparator.Compare(ctx, base.Document(), target.Document())
	if err != nil {
		return nil, err
	}

	return &models.RevisionDiff{
		RevisionID: target.ID,
		CompareTo:  base.ID,
		From:       base.Meta(),
		To:         target.Meta(),
		Comparison: result,
	}, nil
}
