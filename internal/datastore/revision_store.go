package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/models"
)

const revisionColumns = `id, post_id, title, content, excerpt, author, type, content_hash, created_at`

// SaveRevision appends a revision to its post's ledger. When the post's
// latest revision already has the same content hash nothing is written and
// that revision is returned with created set to false.
func (s *RevisionStore) SaveRevision(ctx context.Context, rev models.Revision) (saved *models.Revision, created bool, err error) {
	if rev.PostID <= 0 {
		return nil, false, errorwrapper.NewValidationError("post_id", rev.PostID, "post id must be positive")
	}
	if rev.Type == "" {
		rev.Type = models.RevisionManual
	}
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = time.Now()
	}
	rev.CreatedAt = rev.CreatedAt.UTC().Truncate(time.Millisecond)
	rev.ContentHash = ContentHash(rev.Title, rev.Content, rev.Excerpt)

	// the hash check and the insert share one transaction so concurrent saves
	// of the same content store it once
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin revision transaction: %w", err)
	}
	defer tx.Rollback()

	latest, err := latestRevision(ctx, tx, rev.PostID)
	if err != nil && !errors.Is(err, errorwrapper.ErrNotFound) {
		return nil, false, err
	}
	if latest != nil && latest.ContentHash == rev.ContentHash {
		s.logger.Debug().Int64("post_id", rev.PostID).Int64("revision_id", latest.ID).Msg("Content unchanged, revision not stored")
		return latest, false, nil
	}

	query := `INSERT INTO revisions (post_id, title, content, excerpt, author, type, content_hash, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		rev.PostID, rev.Title, rev.Content, rev.Excerpt, rev.Author, string(rev.Type), rev.ContentHash, rev.CreatedAt.UnixMilli())
	if err != nil {
		s.logger.Error().Err(err).Int64("post_id", rev.PostID).Msg("Failed to insert revision")
		return nil, false, fmt.Errorf("failed to insert revision: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit revision: %w", err)
	}
	rev.ID = id

	s.logger.Info().Int64("post_id", rev.PostID).Int64("revision_id", id).Str("author", rev.Author).Msg("Stored revision")
	return &rev, true, nil
}

// GetRevision loads one revision by id.
func (s *RevisionStore) GetRevision(ctx context.Context, id int64) (*models.Revision, error) {
	query := `SELECT ` + revisionColumns + ` FROM revisions WHERE id = ?`
	rev, err := scanRevision(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorwrapper.NewNotFoundError("revision", id)
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("revision_id", id).Msg("Failed to query revision")
		return nil, fmt.Errorf("failed to query revision %d: %w", id, err)
	}
	return rev, nil
}

// PreviousRevision returns the revision stored just before rev for the same post.
func (s *RevisionStore) PreviousRevision(ctx context.Context, rev *models.Revision) (*models.Revision, error) {
	query := `SELECT ` + revisionColumns + ` FROM revisions WHERE post_id = ? AND id < ? ORDER BY id DESC LIMIT 1`
	prev, err := scanRevision(s.db.QueryRowContext(ctx, query, rev.PostID, rev.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorwrapper.NewNotFoundError("previous revision of", rev.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query previous revision of %d: %w", rev.ID, err)
	}
	return prev, nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func latestRevision(ctx context.Context, q rowQuerier, postID int64) (*models.Revision, error) {
	query := `SELECT ` + revisionColumns + ` FROM revisions WHERE post_id = ? ORDER BY id DESC LIMIT 1`
	rev, err := scanRevision(q.QueryRowContext(ctx, query, postID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorwrapper.NewNotFoundError("post", postID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest revision of post %d: %w", postID, err)
	}
	return rev, nil
}

// ListRevisions returns up to limit summaries for a post, newest first.
func (s *RevisionStore) ListRevisions(ctx context.Context, postID int64, limit int) ([]models.RevisionSummary, error) {
	summaries, _, err := s.querySummaries(ctx, []string{"post_id = ?"}, []any{postID}, s.clampPerPage(limit, s.cfg.PostPerPage), 0)
	return summaries, err
}

// RecentRevisions returns revisions across posts, newest first, narrowed by
// the filter, along with the total number of matching revisions.
func (s *RevisionStore) RecentRevisions(ctx context.Context, filter models.RevisionFilter) ([]models.RevisionSummary, int, error) {
	var where []string
	var args []any
	if filter.Author != "" {
		where = append(where, "author = ?")
		args = append(args, filter.Author)
	}
	if filter.PostID > 0 {
		where = append(where, "post_id = ?")
		args = append(args, filter.PostID)
	}
	if !filter.After.IsZero() {
		where = append(where, "created_at > ?")
		args = append(args, filter.After.UnixMilli())
	}
	if !filter.Before.IsZero() {
		where = append(where, "created_at < ?")
		args = append(args, filter.Before.UnixMilli())
	}

	perPage := s.clampPerPage(filter.PerPage, s.cfg.RecentPerPage)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return s.querySummaries(ctx, where, args, perPage, (page-1)*perPage)
}

// ledgerQuery pairs every revision with its predecessor in the same post
const ledgerQuery = `
	WITH ledger AS (
		SELECT id, post_id, title, content, excerpt, author, type, created_at,
			LAG(id) OVER w AS prev_id,
			LAG(title) OVER w AS prev_title,
			LAG(content) OVER w AS prev_content,
			LAG(excerpt) OVER w AS prev_excerpt
		FROM revisions
		WINDOW w AS (PARTITION BY post_id ORDER BY id)
	)`

func (s *RevisionStore) querySummaries(ctx context.Context, where []string, args []any, limit, offset int) ([]models.RevisionSummary, int, error) {
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM revisions` + clause
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		s.logger.Error().Err(err).Str("query", countQuery).Msg("Failed to count revisions")
		return nil, 0, fmt.Errorf("failed to count revisions: %w", err)
	}

	query := ledgerQuery + `
	SELECT id, post_id, title, content, excerpt, author, type, created_at,
		prev_id, prev_title, prev_content, prev_excerpt
	FROM ledger` + clause + `
	ORDER BY created_at DESC, id DESC
	LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to query revision summaries")
		return nil, 0, fmt.Errorf("failed to query revisions: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.RevisionSummary, 0)
	for rows.Next() {
		var (
			cur                                 models.Revision
			revType                             string
			createdAt                           int64
			prevID                              sql.NullInt64
			prevTitle, prevContent, prevExcerpt sql.NullString
		)
		if err := rows.Scan(&cur.ID, &cur.PostID, &cur.Title, &cur.Content, &cur.Excerpt, &cur.Author, &revType, &createdAt,
			&prevID, &prevTitle, &prevContent, &prevExcerpt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan revision summary: %w", err)
		}

		changes := []string{}
		if prevID.Valid {
			prev := models.Document{Title: prevTitle.String, Content: prevContent.String, Excerpt: prevExcerpt.String}
			changes = models.ChangedFieldsBetween(prev, cur.Document())
		}
		summaries = append(summaries, models.RevisionSummary{
			ID:        cur.ID,
			PostID:    cur.PostID,
			Title:     cur.Title,
			Author:    cur.Author,
			Type:      models.RevisionType(revType),
			CreatedAt: time.UnixMilli(createdAt).UTC(),
			Changes:   changes,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate revisions: %w", err)
	}
	return summaries, total, nil
}

// ForEachRevision streams every revision in ledger order.
func (s *RevisionStore) ForEachRevision(ctx context.Context, fn func(rev *models.Revision) error) error {
	rows, err := s.db.QueryContext(ctx, `SELECT `+revisionColumns+` FROM revisions ORDER BY post_id, id`)
	if err != nil {
		return fmt.Errorf("failed to query revisions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return err
		}
		if err := fn(rev); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *RevisionStore) clampPerPage(requested, fallback int) int {
	perPage := requested
	if perPage <= 0 {
		perPage = fallback
	}
	if perPage <= 0 {
		perPage = 20
	}
	if s.cfg.MaxPerPage > 0 && perPage > s.cfg.MaxPerPage {
		perPage = s.cfg.MaxPerPage
	}
	return perPage
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRevision(row rowScanner) (*models.Revision, error) {
	var (
		rev       models.Revision
		revType   string
		createdAt int64
	)
	if err := row.Scan(&rev.ID, &rev.PostID, &rev.Title, &rev.Content, &rev.Excerpt, &rev.Author, &revType, &rev.ContentHash, &createdAt); err != nil {
		return nil, err
	}
	rev.Type = models.RevisionType(revType)
	rev.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &rev, nil
}
