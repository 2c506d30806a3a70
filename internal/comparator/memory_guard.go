package comparator

import (
	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
)

// AvailableMemoryFunc reports how many bytes of system memory are available.
type AvailableMemoryFunc func() (uint64, error)

// MemoryGuard refuses alignment tables that would take more than a fixed
// fraction of the memory currently available on the host.
type MemoryGuard struct {
	fraction  float64
	available AvailableMemoryFunc
	logger    zerolog.Logger
}

// NewMemoryGuard creates a guard reading system memory through gopsutil.
func NewMemoryGuard(fraction float64, logger zerolog.Logger) *MemoryGuard {
	return &MemoryGuard{
		fraction:  fraction,
		available: systemAvailableMemory,
		logger:    logger.With().Str("component", "MemoryGuard").Logger(),
	}
}

// WithAvailableFunc replaces the memory source
func (g *MemoryGuard) WithAvailableFunc(fn AvailableMemoryFunc) *MemoryGuard {
	g.available = fn
	return g
}

// Admit returns an ErrTooLarge error when tableBytes exceeds the budget.
// If memory stats cannot be read the table is allowed.
func (g *MemoryGuard) Admit(tableBytes uint64) error {
	avail, err := g.available()
	if err != nil {
		g.logger.Warn().Err(err).Msg("Failed to read system memory stats, skipping memory check")
		return nil
	}

	budget := uint64(float64(avail) * g.fraction)
	if tableBytes > budget {
		g.logger.Warn().
			Uint64("table_mb", tableBytes/1024/1024).
			Uint64("budget_mb", budget/1024/1024).
			Uint64("available_mb", avail/1024/1024).
			Msg("Diff table exceeds memory budget")
		return errorwrapper.WrapErrorf(errorwrapper.ErrTooLarge,
			"diff table needs %d MB but only %d MB of memory may be used", tableBytes/1024/1024, budget/1024/1024)
	}
	return nil
}

func systemAvailableMemory() (uint64, error) {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return 0, errorwrapper.WrapError(err, "failed to get system memory stats")
	}
	return vmStat.Available, nil
}
