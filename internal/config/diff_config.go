package config

// DiffConfig controls how word-level diffs are rendered
type DiffConfig struct {
	InsertClass  string `json:"insert_class,omitempty" yaml:"insert_class,omitempty" validate:"required,cssclass"`
	DeleteClass  string `json:"delete_class,omitempty" yaml:"delete_class,omitempty" validate:"required,cssclass"`
	IncludePatch bool   `json:"include_patch" yaml:"include_patch"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		InsertClass:  DefaultDiffInsertClass,
		DeleteClass:  DefaultDiffDeleteClass,
		IncludePatch: DefaultDiffIncludePatch,
	}
}

// ComparatorConfig bounds the cost of a single comparison.
// A field over either ceiling is diffed coarsely instead of word by word.
type ComparatorConfig struct {
	MaxInputBytes      int     `json:"max_input_bytes,omitempty" yaml:"max_input_bytes,omitempty" validate:"min=1"`
	MaxTableCells      int64   `json:"max_table_cells,omitempty" yaml:"max_table_cells,omitempty" validate:"min=1"`
	MemoryGuardEnabled bool    `json:"memory_guard_enabled" yaml:"memory_guard_enabled"`
	MaxMemoryFraction  float64 `json:"max_memory_fraction,omitempty" yaml:"max_memory_fraction,omitempty" validate:"gt=0,lte=1"`
}

// NewDefaultComparatorConfig creates default comparator configuration
func NewDefaultComparatorConfig() ComparatorConfig {
	return ComparatorConfig{
		MaxInputBytes:      DefaultComparatorMaxInputBytes,
		MaxTableCells:      DefaultComparatorMaxTableCells,
		MemoryGuardEnabled: DefaultComparatorMemoryGuardEnabled,
		MaxMemoryFraction:  DefaultComparatorMaxMemoryFraction,
	}
}
