package differ

import (
	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// BuildPatch serializes the change from one text to another as a
// diff-match-patch patch. Equal texts produce an empty patch.
func BuildPatch(from, to string) string {
	if from == to {
		return ""
	}
	dmp := diffmatchpatch.New()
	return dmp.PatchToText(dmp.PatchMake(from, to))
}

// ApplyPatch replays a patch produced by BuildPatch onto from.
func ApplyPatch(from, patchText string) (string, error) {
	if patchText == "" {
		return from, nil
	}
	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(patchText)
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to parse patch")
	}
	result, applied := dmp.PatchApply(patches, from)
	for i, ok := range applied {
		if !ok {
			return "", errorwrapper.NewError("patch hunk %d did not apply", i)
		}
	}
	return result, nil
}
