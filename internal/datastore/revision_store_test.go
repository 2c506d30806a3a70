package datastore

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/config"
	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RevisionStore {
	t.Helper()
	cfg := config.NewDefaultStorageConfig()
	cfg.SQLiteDBPath = filepath.Join(t.TempDir(), "db", "ledger.db")
	store, err := NewRevisionStore(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *RevisionStore, rev models.Revision) *models.Revision {
	t.Helper()
	saved, created, err := store.SaveRevision(context.Background(), rev)
	require.NoError(t, err)
	require.True(t, created)
	return saved
}

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestContentHash(t *testing.T) {
	h := ContentHash("t", "c", "e")
	assert.Len(t, h, 64)
	assert.Equal(t, h, ContentHash("t", "c", "e"))
	assert.NotEqual(t, h, ContentHash("tc", "", "e"))
	assert.NotEqual(t, h, ContentHash("t", "c", "E"))
}

func TestSaveRevision_AssignsIDAndHash(t *testing.T) {
	store := newTestStore(t)

	rev := save(t, store, models.Revision{PostID: 7, Title: "Hello", Content: "<p>Body</p>", Author: "ana", CreatedAt: baseTime})

	assert.Positive(t, rev.ID)
	assert.Equal(t, models.RevisionManual, rev.Type)
	assert.Equal(t, ContentHash("Hello", "<p>Body</p>", ""), rev.ContentHash)

	got, err := store.GetRevision(context.Background(), rev.ID)
	require.NoError(t, err)
	assert.Equal(t, rev, got)
}

func TestSaveRevision_SkipsUnchangedContent(t *testing.T) {
	store := newTestStore(t)
	first := save(t, store, models.Revision{PostID: 1, Title: "Same", Content: "x", CreatedAt: baseTime})

	again, created, err := store.SaveRevision(context.Background(),
		models.Revision{PostID: 1, Title: "Same", Content: "x", Author: "other", CreatedAt: baseTime.Add(time.Minute)})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	// the same content on another post is a new revision
	save(t, store, models.Revision{PostID: 2, Title: "Same", Content: "x", CreatedAt: baseTime})
}

func TestSaveRevision_ConcurrentDuplicatesStoredOnce(t *testing.T) {
	store := newTestStore(t)
	const workers = 8

	var wg sync.WaitGroup
	var createdCount atomic.Int32
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := store.SaveRevision(context.Background(),
				models.Revision{PostID: 3, Title: "Race", Content: "same body", CreatedAt: baseTime})
			if err != nil {
				errs <- err
				return
			}
			if created {
				createdCount.Add(1)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), createdCount.Load())

	summaries, err := store.ListRevisions(context.Background(), 3, 0)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestSaveRevision_RejectsMissingPost(t *testing.T) {
	store := newTestStore(t)
	_, _, err := store.SaveRevision(context.Background(), models.Revision{Title: "orphan"})
	assert.ErrorIs(t, err, errorwrapper.ErrInvalidInput)
}

func TestGetRevision_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetRevision(context.Background(), 404)
	assert.ErrorIs(t, err, errorwrapper.ErrNotFound)
}

func TestPreviousRevision(t *testing.T) {
	store := newTestStore(t)
	r1 := save(t, store, models.Revision{PostID: 3, Title: "v1", CreatedAt: baseTime})
	save(t, store, models.Revision{PostID: 4, Title: "other post", CreatedAt: baseTime})
	r2 := save(t, store, models.Revision{PostID: 3, Title: "v2", CreatedAt: baseTime.Add(time.Hour)})

	prev, err := store.PreviousRevision(context.Background(), r2)
	require.NoError(t, err)
	assert.Equal(t, r1.ID, prev.ID)

	_, err = store.PreviousRevision(context.Background(), r1)
	assert.ErrorIs(t, err, errorwrapper.ErrNotFound)
}

func TestListRevisions_ChangesAgainstPrevious(t *testing.T) {
	store := newTestStore(t)
	save(t, store, models.Revision{PostID: 9, Title: "A", Content: "one", CreatedAt: baseTime})
	save(t, store, models.Revision{PostID: 9, Title: "A", Content: "two", CreatedAt: baseTime.Add(time.Minute)})
	save(t, store, models.Revision{PostID: 9, Title: "B", Content: "two", Excerpt: "ex", CreatedAt: baseTime.Add(2 * time.Minute)})

	summaries, err := store.ListRevisions(context.Background(), 9, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "B", summaries[0].Title)
	assert.Equal(t, []string{models.FieldTitle, models.FieldExcerpt}, summaries[0].Changes)
	assert.Equal(t, []string{models.FieldContent}, summaries[1].Changes)
	assert.Empty(t, summaries[2].Changes)
	assert.NotNil(t, summaries[2].Changes)

	limited, err := store.ListRevisions(context.Background(), 9, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRecentRevisions_Filters(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 5; i++ {
		author := "ana"
		if i%2 == 1 {
			author = "ben"
		}
		save(t, store, models.Revision{
			PostID:    int64(100 + i%2),
			Title:     "rev",
			Content:   string(rune('a' + i)),
			Author:    author,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Hour),
		})
	}
	ctx := context.Background()

	all, total, err := store.RecentRevisions(ctx, models.RevisionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, all, 5)
	assert.True(t, all[0].CreatedAt.After(all[4].CreatedAt))

	byAuthor, total, err := store.RecentRevisions(ctx, models.RevisionFilter{Author: "ben"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, s := range byAuthor {
		assert.Equal(t, "ben", s.Author)
	}

	byPost, _, err := store.RecentRevisions(ctx, models.RevisionFilter{PostID: 100})
	require.NoError(t, err)
	assert.Len(t, byPost, 3)

	window, _, err := store.RecentRevisions(ctx, models.RevisionFilter{
		After:  baseTime.Add(30 * time.Minute),
		Before: baseTime.Add(3*time.Hour + 30*time.Minute),
	})
	require.NoError(t, err)
	assert.Len(t, window, 3)

	page2, total, err := store.RecentRevisions(ctx, models.RevisionFilter{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page2, 2)
	assert.Equal(t, all[2].ID, page2[0].ID)
}

func TestRecentRevisions_PerPageClamped(t *testing.T) {
	store := newTestStore(t)
	store.cfg.MaxPerPage = 2
	for i := 0; i < 3; i++ {
		save(t, store, models.Revision{PostID: 1, Content: string(rune('a' + i)), CreatedAt: baseTime.Add(time.Duration(i) * time.Second)})
	}

	got, total, err := store.RecentRevisions(context.Background(), models.RevisionFilter{PerPage: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, got, 2)
}
