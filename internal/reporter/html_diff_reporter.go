package reporter

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/alansmodic/edit-ledger/internal/common/errorwrapper"
	"github.com/alansmodic/edit-ledger/internal/config"
	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/rs/zerolog"
)

//go:embed templates/*
var templateFS embed.FS

// fieldView is one field section of the report page
type fieldView struct {
	Name string
	Diff models.FieldDiff
}

// comparisonPageData is the data handed to the report template
type comparisonPageData struct {
	ReportTitle string
	GeneratedAt string
	InsertClass string
	DeleteClass string
	Result      *models.ComparisonResult
	Fields      []fieldView
}

// HTMLDiffReporter renders a ComparisonResult as a standalone HTML page
type HTMLDiffReporter struct {
	logger       zerolog.Logger
	template     *template.Template
	directoryMgr *DirectoryManager
	reportTitle  string
	insertClass  string
	deleteClass  string
	now          func() time.Time
}

// NewHTMLDiffReporter parses the embedded template
func NewHTMLDiffReporter(reporterCfg config.ReporterConfig, diffCfg config.DiffConfig, logger zerolog.Logger) (*HTMLDiffReporter, error) {
	componentLogger := logger.With().Str("component", "HTMLDiffReporter").Logger()

	tmpl, err := template.New("").Funcs(GetComparisonTemplateFunctions()).ParseFS(templateFS, "templates/"+ComparisonTemplateName)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse HTML comparison template")
	}
	componentLogger.Debug().Str("defined_templates", tmpl.DefinedTemplates()).Msg("HTML comparison template parsed")

	title := reporterCfg.ReportTitle
	if title == "" {
		title = config.DefaultReporterReportTitle
	}
	insertClass, deleteClass := diffCfg.InsertClass, diffCfg.DeleteClass
	if insertClass == "" {
		insertClass = config.DefaultDiffInsertClass
	}
	if deleteClass == "" {
		deleteClass = config.DefaultDiffDeleteClass
	}

	return &HTMLDiffReporter{
		logger:       componentLogger,
		template:     tmpl,
		directoryMgr: NewDirectoryManager(componentLogger),
		reportTitle:  title,
		insertClass:  insertClass,
		deleteClass:  deleteClass,
		now:          time.Now,
	}, nil
}

// Render writes the report page for result to w
func (r *HTMLDiffReporter) Render(w io.Writer, result *models.ComparisonResult) error {
	if result == nil {
		return errorwrapper.NewValidationError("result", nil, "comparison result cannot be nil")
	}

	data := comparisonPageData{
		ReportTitle: r.reportTitle,
		GeneratedAt: r.now().UTC().Format(time.RFC3339),
		InsertClass: r.insertClass,
		DeleteClass: r.deleteClass,
		Result:      result,
		Fields: []fieldView{
			{Name: models.FieldTitle, Diff: result.Fields.Title},
			{Name: models.FieldContent, Diff: result.Fields.Content},
			{Name: models.FieldExcerpt, Diff: result.Fields.Excerpt},
		},
	}

	if err := r.template.ExecuteTemplate(w, ComparisonTemplateName, data); err != nil {
		return errorwrapper.WrapError(err, "failed to execute comparison template")
	}
	return nil
}

// WriteReport renders result into filePath, creating parent directories.
// The page is rendered in memory first so a failed render leaves no file.
func (r *HTMLDiffReporter) WriteReport(filePath string, result *models.ComparisonResult) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, result); err != nil {
		return err
	}

	if err := r.directoryMgr.EnsureParentDirectory(filePath); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, buf.Bytes(), FilePermissions); err != nil {
		return errorwrapper.WrapErrorf(err, "failed to write HTML report '%s'", filePath)
	}

	r.logger.Info().Str("path", filePath).Int("size_bytes", buf.Len()).Msg("HTML comparison report written")
	return nil
}
