package config

// StorageConfig defines configuration for the revision ledger
type StorageConfig struct {
	SQLiteDBPath     string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty" validate:"required"`
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,codec"`
	PostPerPage      int    `json:"post_per_page,omitempty" yaml:"post_per_page,omitempty" validate:"omitempty,min=1"`
	RecentPerPage    int    `json:"recent_per_page,omitempty" yaml:"recent_per_page,omitempty" validate:"omitempty,min=1"`
	MaxPerPage       int    `json:"max_per_page,omitempty" yaml:"max_per_page,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		SQLiteDBPath:     DefaultStorageSQLiteDBPath,
		CompressionCodec: DefaultStorageCompressionCodec,
		PostPerPage:      DefaultStoragePostPerPage,
		RecentPerPage:    DefaultStorageRecentPerPage,
		MaxPerPage:       DefaultStorageMaxPerPage,
	}
}
