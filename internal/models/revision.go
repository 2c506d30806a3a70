package models

import (
	"strconv"
	"time"
)

// RevisionType distinguishes editor autosaves from explicit saves.
type RevisionType string

const (
	RevisionManual   RevisionType = "manual"
	RevisionAutosave RevisionType = "autosave"
)

// Revision is a stored snapshot of a post.
type Revision struct {
	ID          int64        `json:"id"`
	PostID      int64        `json:"post_id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Excerpt     string       `json:"excerpt"`
	Author      string       `json:"author"`
	Type        RevisionType `json:"type"`
	ContentHash string       `json:"content_hash"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Document converts the revision into a comparison side.
func (r *Revision) Document() Document {
	return Document{
		ID:      strconv.FormatInt(r.ID, 10),
		Title:   r.Title,
		Content: r.Content,
		Excerpt: r.Excerpt,
	}
}

// RevisionSummary is the list view of a revision.
type RevisionSummary struct {
	ID        int64        `json:"id"`
	PostID    int64        `json:"post_id"`
	Title     string       `json:"title"`
	Author    string       `json:"author"`
	Type      RevisionType `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	Changes   []string     `json:"changes"`
}

// RevisionFilter narrows RecentRevisions queries.
type RevisionFilter struct {
	Author  string
	PostID  int64
	After   time.Time
	Before  time.Time
	Page    int
	PerPage int
}

// RevisionMeta identifies one side of a revision diff.
type RevisionMeta struct {
	ID        int64        `json:"id"`
	Author    string       `json:"author"`
	Type      RevisionType `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
}

// Meta returns the identifying fields of the revision.
func (r *Revision) Meta() RevisionMeta {
	return RevisionMeta{ID: r.ID, Author: r.Author, Type: r.Type, CreatedAt: r.CreatedAt}
}

// RevisionDiff is the comparison of a stored revision against another one.
type RevisionDiff struct {
	RevisionID int64             `json:"revision_id"`
	CompareTo  int64             `json:"compare_to"`
	From       RevisionMeta      `json:"from_revision"`
	To         RevisionMeta      `json:"to_revision"`
	Comparison *ComparisonResult `json:"comparison"`
}
