package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"tradeline-calculator/domain"
	"tradeline-calculator/metrics"
)

type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
)

// Exporter delivers an exported file, e.g. to disk or as a download.
type Exporter interface {
	Export(ctx context.Context, filename, contentType string, data []byte) error
}

// BuildExportRecord formats an evaluation for download.
func BuildExportRecord(ev Evaluation) domain.ExportRecord {
	rec := domain.ExportRecord{
		CurrentBalance:    FormatCurrency(ev.Balance),
		CurrentCredit:     FormatCurrency(ev.CreditLimit),
		TargetUtilization: FormatTarget(ev.Target) + "%",
	}
	if ev.Result != nil {
		rec.AdditionalCreditNeeded = FormatCurrency(ev.Result.AdditionalCreditNeeded)
		rec.CurrentUtilization = FormatPercent(ev.Result.CurrentUtilizationPercent)
	}
	return rec
}

// MarshalExport encodes rec and returns the payload with its file name and content type.
func MarshalExport(rec domain.ExportRecord, format ExportFormat) ([]byte, string, string, error) {
	switch format {
	case "", ExportJSON:
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, "", "", errors.Wrap(err, "encoding export as json")
		}
		return data, ExportBaseName + ".json", "application/json", nil
	case ExportYAML:
		data, err := yaml.Marshal(rec)
		if err != nil {
			return nil, "", "", errors.Wrap(err, "encoding export as yaml")
		}
		return data, ExportBaseName + ".yaml", "application/yaml", nil
	default:
		return nil, "", "", errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

type ExportService struct {
	exporter Exporter
}

func NewExportService(exporter Exporter) *ExportService {
	return &ExportService{exporter: exporter}
}

// Export encodes the evaluation and hands it to the exporter. It returns the
// exported file name.
func (s *ExportService) Export(ctx context.Context, ev Evaluation, format ExportFormat) (string, error) {
	if !ev.actionable() {
		return "", ErrNothingToExport
	}

	data, filename, contentType, err := MarshalExport(BuildExportRecord(ev), format)
	if err != nil {
		return "", err
	}
	if err := s.exporter.Export(ctx, filename, contentType, data); err != nil {
		return "", err
	}

	if format == "" {
		format = ExportJSON
	}
	metrics.IncreaseExportsTotalMetric(string(format))
	return filename, nil
}

// FileExporter writes exports into Dir.
type FileExporter struct {
	Dir string
}

func (e FileExporter) Export(ctx context.Context, filename, _ string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(e.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing export to %s", path)
	}
	return nil
}
