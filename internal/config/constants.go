package config

const (
	// ConfigPathEnvVar overrides the config file location
	ConfigPathEnvVar = "EDITLEDGER_CONFIG_PATH"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Diff Defaults
	DefaultDiffInsertClass  = "edit-ledger-diff-ins"
	DefaultDiffDeleteClass  = "edit-ledger-diff-del"
	DefaultDiffIncludePatch = false

	// Comparator Defaults
	DefaultComparatorMaxInputBytes      = 2 * 1024 * 1024
	DefaultComparatorMaxTableCells      = 25_000_000
	DefaultComparatorMemoryGuardEnabled = true
	DefaultComparatorMaxMemoryFraction  = 0.25

	// Reporter Defaults
	DefaultReporterOutputDir   = "reports/diff"
	DefaultReporterReportTitle = "Edit Ledger Revision Comparison"
	DefaultReporterFormat      = "json"

	// Storage Defaults
	DefaultStorageSQLiteDBPath     = "database/edit_ledger.db"
	DefaultStorageCompressionCodec = "zstd"
	DefaultStoragePostPerPage      = 50
	DefaultStorageRecentPerPage    = 20
	DefaultStorageMaxPerPage       = 100

	// Server Defaults
	DefaultServerListenAddr       = "127.0.0.1:8420"
	DefaultServerReadTimeoutSecs  = 15
	DefaultServerWriteTimeoutSecs = 60
	DefaultServerMaxBodyBytes     = 8 * 1024 * 1024
)
