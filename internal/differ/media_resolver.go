package differ

import "github.com/alansmodic/edit-ledger/internal/models"

// ResolveMediaChanges reports media present on only one side, compared by
// identity key. Source order is kept and repeated keys collapse to their
// first occurrence. Both lists are non-nil.
func ResolveMediaChanges(from, to []models.MediaReference) models.MediaChangeSet {
	return models.MediaChangeSet{
		Added:   missingFrom(to, keySet(from)),
		Removed: missingFrom(from, keySet(to)),
	}
}

func keySet(refs []models.MediaReference) map[string]struct{} {
	keys := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		keys[ref.IdentityKey()] = struct{}{}
	}
	return keys
}

func missingFrom(refs []models.MediaReference, other map[string]struct{}) []models.MediaReference {
	out := make([]models.MediaReference, 0)
	emitted := make(map[string]struct{})
	for _, ref := range refs {
		key := ref.IdentityKey()
		if _, ok := other[key]; ok {
			continue
		}
		if _, ok := emitted[key]; ok {
			continue
		}
		emitted[key] = struct{}{}
		out = append(out, ref)
	}
	return out
}
