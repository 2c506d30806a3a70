package reporter

const (
	// ComparisonTemplateName is the embedded page template
	ComparisonTemplateName = "comparison_report.html.tmpl"

	// Report formats accepted by WriteComparison
	FormatJSON = "json"
	FormatHTML = "html"
	FormatText = "text"

	// File permissions
	DirPermissions  = 0755
	FilePermissions = 0644
)
