package datastore

import (
	"time"

	"github.com/alansmodic/edit-ledger/internal/models"
)

// LedgerRecord is one exported revision row.
type LedgerRecord struct {
	RevisionID  int64    `parquet:"revision_id"`
	PostID      int64    `parquet:"post_id"`
	Title       string   `parquet:"title"`
	Content     string   `parquet:"content"`
	Excerpt     string   `parquet:"excerpt"`
	Author      *string  `parquet:"author,optional"`
	Type        string   `parquet:"type"`
	ContentHash string   `parquet:"content_hash"`
	CreatedAt   int64    `parquet:"created_at"` // unix milliseconds
	PreviousID  *int64   `parquet:"previous_id,optional"`
	Changes     []string `parquet:"changes,list"`
}

func newLedgerRecord(rev *models.Revision, prev *models.Revision) LedgerRecord {
	rec := LedgerRecord{
		RevisionID:  rev.ID,
		PostID:      rev.PostID,
		Title:       rev.Title,
		Content:     rev.Content,
		Excerpt:     rev.Excerpt,
		Type:        string(rev.Type),
		ContentHash: rev.ContentHash,
		CreatedAt:   rev.CreatedAt.UnixMilli(),
		Changes:     []string{},
	}
	if rev.Author != "" {
		author := rev.Author
		rec.Author = &author
	}
	if prev != nil {
		prevID := prev.ID
		rec.PreviousID = &prevID
		rec.Changes = models.ChangedFieldsBetween(prev.Document(), rev.Document())
	}
	return rec
}

// ToRevision converts the row back into a revision.
func (r LedgerRecord) ToRevision() models.Revision {
	rev := models.Revision{
		ID:          r.RevisionID,
		PostID:      r.PostID,
		Title:       r.Title,
		Content:     r.Content,
		Excerpt:     r.Excerpt,
		Type:        models.RevisionType(r.Type),
		ContentHash: r.ContentHash,
		CreatedAt:   time.UnixMilli(r.CreatedAt).UTC(),
	}
	if r.Author != nil {
		rev.Author = *r.Author
	}
	return rev
}
