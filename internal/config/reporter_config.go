package config

// ReporterConfig defines configuration for generating comparison reports
type ReporterConfig struct {
	OutputDir     string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	ReportTitle   string `json:"report_title,omitempty" yaml:"report_title,omitempty"`
	DefaultFormat string `json:"default_format,omitempty" yaml:"default_format,omitempty" validate:"omitempty,reportformat"`
	ContextLines  int    `json:"context_lines,omitempty" yaml:"context_lines,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		OutputDir:     DefaultReporterOutputDir,
		ReportTitle:   DefaultReporterReportTitle,
		DefaultFormat: DefaultReporterFormat,
		ContextLines:  3,
	}
}
