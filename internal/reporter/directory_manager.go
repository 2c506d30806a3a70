package reporter

import (
	"os"
	"path/filepath"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// DirectoryManager creates report output directories
type DirectoryManager struct {
	logger zerolog.Logger
}

// NewDirectoryManager creates a new DirectoryManager
func NewDirectoryManager(logger zerolog.Logger) *DirectoryManager {
	return &DirectoryManager{
		logger: logger,
	}
}

// EnsureParentDirectory creates the directory that will hold filePath
func (dm *DirectoryManager) EnsureParentDirectory(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." || dir == "" {
		return nil
	}
	return dm.createDirectory(dir)
}

// createDirectory creates directory with standard permissions
func (dm *DirectoryManager) createDirectory(path string) error {
	if err := os.MkdirAll(path, DirPermissions); err != nil {
		dm.logger.Error().Err(err).Str("path", path).Msg("Failed to create directory")
		return errorwrapper.WrapErrorf(err, "failed to create report directory '%s'", path)
	}

	dm.logger.Debug().Str("path", path).Msg("Directory ready")
	return nil
}
