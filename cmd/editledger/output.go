package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/alansmodic/edit-ledger/internal/models"
	"github.com/alansmodic/edit-ledger/internal/reporter"
)

func (a *app) comparisonWriter() (*reporter.ComparisonWriter, error) {
	html, err := reporter.NewHTMLDiffReporter(a.cfg.ReporterConfig, a.cfg.DiffConfig, a.logger)
	if err != nil {
		return nil, err
	}
	return reporter.NewComparisonWriter(html, a.cfg.ReporterConfig.ContextLines), nil
}

// writeComparison renders result to out, or to stdout when out is empty
func (a *app) writeComparison(stdout io.Writer, format, out string, result *models.ComparisonResult) error {
	if format == "" {
		format = a.cfg.ReporterConfig.DefaultFormat
	}
	cw, err := a.comparisonWriter()
	if err != nil {
		return err
	}

	if out == "" {
		return cw.Write(stdout, format, result)
	}

	var buf bytes.Buffer
	if err := cw.Write(&buf, format, result); err != nil {
		return err
	}
	return writeFile(out, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, reporter.DirPermissions); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, reporter.FilePermissions)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readOptional returns the file's content, or "" when path is empty
func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
