package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/student-roster/internal/models"
	appErrors "github.com/noah-isme/student-roster/pkg/errors"
	"github.com/noah-isme/student-roster/pkg/export"
)

// Export formats accepted by ExportService.
const (
	ExportFormatCSV  = "csv"
	ExportFormatPDF  = "pdf"
	ExportFormatXLSX = "xlsx"
)

type rosterLister interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, bool, error)
}

// ExportResult is a rendered roster document ready to be served.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
	Rows        int
}

// ExportService renders the roster as a downloadable document.
type ExportService struct {
	students  rosterLister
	renderers map[string]export.Renderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService with CSV, PDF and XLSX renderers.
func NewExportService(students rosterLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students: students,
		renderers: map[string]export.Renderer{
			ExportFormatCSV:  export.NewCSVExporter(),
			ExportFormatPDF:  export.NewPDFExporter(),
			ExportFormatXLSX: export.NewXLSXExporter(),
		},
		logger: logger,
		now:    time.Now,
	}
}

// Export renders the students matching filter. Unlike List, a partial filter still narrows the
// rows: the cohort and course constraints are applied independently.
func (s *ExportService) Export(ctx context.Context, filter models.StudentFilter, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}

	filter = filter.Normalize()
	students, _, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Title:   rosterTitle(filter),
		Headers: models.RosterHeaders,
		Rows:    make([][]string, 0, len(students)),
	}
	for _, student := range students {
		if filter.Matches(student) {
			dataset.Rows = append(dataset.Rows, student.RosterRow())
		}
	}

	payload, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster export")
	}

	result := &ExportResult{
		Filename:    fmt.Sprintf("roster_%s_%s.%s", sanitizeFilename(filter), s.now().UTC().Format("20060102_150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Payload:     payload,
		Rows:        len(dataset.Rows),
	}
	s.logger.Info("roster exported", zap.String("format", format), zap.Int("rows", result.Rows))
	return result, nil
}

func rosterTitle(filter models.StudentFilter) string {
	parts := []string{"Student Roster"}
	if filter.Cohort != "" {
		parts = append(parts, filter.Cohort)
	}
	if filter.Course != "" {
		parts = append(parts, filter.Course)
	}
	return strings.Join(parts, " - ")
}

func sanitizeFilename(filter models.StudentFilter) string {
	raw := strings.Trim(filter.Cohort+"_"+filter.Course, "_")
	if raw == "" {
		return "all"
	}
	replacer := strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-", "..", ".", "\"", "")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
