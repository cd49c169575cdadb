package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// KindLabel renders a kind for people ("Status", "Comment").
func KindLabel(k UpdateKind) string {
	return titleCaser.String(k.String())
}

type Exporter struct {
	OutputDir string
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{OutputDir: outputDir}
}

func (e *Exporter) path(filename string) string {
	if filepath.IsAbs(filename) || e.OutputDir == "" {
		return filename
	}
	return filepath.Join(e.OutputDir, filename)
}

func (e *Exporter) ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

type jsonDigest struct {
	Generated time.Time       `json:"generated"`
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Groups    []AssigneeGroup `json:"assignees"`
}

func (e *Exporter) ExportJSON(d Digest, filename string) error {
	out := jsonDigest{
		Generated: time.Now(),
		Start:     d.Window.Start,
		End:       d.Window.End,
		Groups:    d.Groups,
	}
	data, err := json.MarshalIndent(out, "", "\t")
	if err != nil {
		return err
	}

	path := e.path(filename)
	if err := e.ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
