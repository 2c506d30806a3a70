package differ

import (
	"encoding/json"
	"testing"

	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/stretchr/testify/assert"
)

func image(src, alt string) models.MediaReference {
	return models.MediaReference{Kind: models.MediaKindImage, Src: src, Alt: alt, Name: alt}
}

func keys(refs []models.MediaReference) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.IdentityKey())
	}
	return out
}

func TestResolveMediaChanges_AltChangeIsNotAChange(t *testing.T) {
	changes := ResolveMediaChanges(
		[]models.MediaReference{image("a.jpg", "Old")},
		[]models.MediaReference{image("a.jpg", "New")},
	)
	assert.Empty(t, changes.Added)
	assert.Empty(t, changes.Removed)
	assert.True(t, changes.IsEmpty())
}

func TestResolveMediaChanges_AddedAndRemoved(t *testing.T) {
	yt := models.MediaReference{
		Kind:      models.MediaKindYouTube,
		Src:       "https://www.youtube.com/embed/abc123",
		Name:      "YouTube Video",
		Thumbnail: "https://img.youtube.com/vi/abc123/hqdefault.jpg",
	}
	from := []models.MediaReference{image("a.jpg", ""), image("b.jpg", ""), image("c.jpg", "")}
	to := []models.MediaReference{image("c.jpg", ""), yt, image("d.jpg", ""), image("a.jpg", "")}

	changes := ResolveMediaChanges(from, to)

	assert.Equal(t, []string{yt.Src, "d.jpg"}, keys(changes.Added))
	assert.Equal(t, []string{"b.jpg"}, keys(changes.Removed))
}

func TestResolveMediaChanges_DuplicatesCollapse(t *testing.T) {
	changes := ResolveMediaChanges(nil, []models.MediaReference{image("x.jpg", "first"), image("x.jpg", "second")})
	assert.Len(t, changes.Added, 1)
	assert.Equal(t, "first", changes.Added[0].Alt)
}

func TestResolveMediaChanges_Laws(t *testing.T) {
	lists := [][]models.MediaReference{
		nil,
		{image("a", "")},
		{image("a", ""), image("b", "")},
		{image("b", ""), image("c", ""), image("b", "dup")},
	}

	for _, a := range lists {
		same := ResolveMediaChanges(a, a)
		assert.Empty(t, same.Added)
		assert.Empty(t, same.Removed)

		for _, b := range lists {
			changes := ResolveMediaChanges(a, b)
			aKeys, bKeys := keySet(a), keySet(b)
			removed := keySet(changes.Removed)
			for _, ref := range changes.Added {
				_, inA := aKeys[ref.IdentityKey()]
				_, inRemoved := removed[ref.IdentityKey()]
				assert.False(t, inA)
				assert.False(t, inRemoved)
			}
			for _, ref := range changes.Removed {
				_, inB := bKeys[ref.IdentityKey()]
				assert.False(t, inB)
			}
		}
	}
}

func TestResolveMediaChanges_EmptyListsSerializeAsArrays(t *testing.T) {
	data, err := json.Marshal(ResolveMediaChanges(nil, nil))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"added":[],"removed":[]}`, string(data))
}
