package comparator

import (
	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/differ"
)

// sizeValidator enforces the per-field ceilings before a word-level diff
type sizeValidator struct {
	maxInputBytes int
	maxTableCells int64
	guard         *MemoryGuard
}

// ValidateInput rejects texts above the byte ceiling
func (v *sizeValidator) ValidateInput(from, to string) error {
	if len(from) > v.maxInputBytes || len(to) > v.maxInputBytes {
		return errorwrapper.WrapErrorf(errorwrapper.ErrTooLarge,
			"field is too large for a word-level diff (limit: %d bytes, previous: %d bytes, current: %d bytes)",
			v.maxInputBytes, len(from), len(to))
	}
	return nil
}

// AdmitTable is a differ.TableAdmitter enforcing the cell ceiling and the memory guard
func (v *sizeValidator) AdmitTable(m, n int) error {
	if cells := differ.TableCells(m, n); cells > v.maxTableCells {
		return errorwrapper.WrapErrorf(errorwrapper.ErrTooLarge,
			"word-level diff would need %d table cells (limit: %d)", cells, v.maxTableCells)
	}
	if v.guard != nil {
		return v.guard.Admit(differ.TableBytes(m, n))
	}
	return nil
}
