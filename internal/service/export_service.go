package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
	"github.com/MaazSajjad/smart-scheduler-sub001/pkg/export"
)

type scheduleDetailReader interface {
	GetDetail(ctx context.Context, versionID string) (*models.ScheduleVersionDetail, error)
}

// ExportService renders schedule versions as downloadable CSV or PDF.
type ExportService struct {
	schedules scheduleDetailReader
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService wires exporter dependencies.
func NewExportService(schedules scheduleDetailReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		schedules: schedules,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// ScheduleCSV renders a version's timetable as CSV bytes.
func (s *ExportService) ScheduleCSV(ctx context.Context, versionID string) ([]byte, string, error) {
	detail, err := s.schedules.GetDetail(ctx, versionID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.csv.Render(timetableFrom(detail))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return payload, exportFilename(detail, "csv"), nil
}

// SchedulePDF renders a version's timetable as a PDF with one table block
// per group.
func (s *ExportService) SchedulePDF(ctx context.Context, versionID string) ([]byte, string, error) {
	detail, err := s.schedules.GetDetail(ctx, versionID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.Render(timetableFrom(detail))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	return payload, exportFilename(detail, "pdf"), nil
}

// timetableFrom projects a version detail into the exporter's shape.
func timetableFrom(detail *models.ScheduleVersionDetail) export.Timetable {
	timetable := export.Timetable{
		Title: fmt.Sprintf("Level %d schedule - %s (v%d)", detail.Level, detail.Semester, detail.Version),
	}
	for _, group := range detail.Groups {
		block := export.TimetableGroup{Name: group.GroupName}
		for _, section := range group.Sections {
			block.Rows = append(block.Rows, export.TimetableRow{
				Group:    group.GroupName,
				Course:   section.CourseCode,
				Section:  section.SectionLabel,
				Day:      string(section.Window.Day),
				Start:    section.Window.Start.String(),
				End:      section.Window.End.String(),
				Room:     section.Room,
				Students: section.StudentCount,
				Capacity: section.Capacity,
			})
		}
		timetable.Groups = append(timetable.Groups, block)
	}
	return timetable
}

func exportFilename(detail *models.ScheduleVersionDetail, ext string) string {
	return fmt.Sprintf("schedule_level%d_%s_v%d.%s", detail.Level, detail.Semester, detail.Version, ext)
}
