package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// timetableHeaders is the column order shared by the CSV and PDF renderers.
var timetableHeaders = []string{"Group", "Course", "Section", "Day", "Start", "End", "Room", "Students", "Capacity"}

// TimetableRow is one rendered section line.
type TimetableRow struct {
	Group    string
	Course   string
	Section  string
	Day      string
	Start    string
	End      string
	Room     string
	Students int
	Capacity int
}

func (r TimetableRow) record() []string {
	return []string{
		r.Group, r.Course, r.Section, r.Day, r.Start, r.End, r.Room,
		strconv.Itoa(r.Students), strconv.Itoa(r.Capacity),
	}
}

// TimetableGroup is one group's block of section rows.
type TimetableGroup struct {
	Name string
	Rows []TimetableRow
}

// Timetable is the renderable projection of one schedule version.
type Timetable struct {
	Title  string
	Groups []TimetableGroup
}

// CSVExporter renders a timetable as one flat CSV table.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV bytes: a single header row followed by every group's
// sections in group order. The group column keeps rows attributable after
// spreadsheet sorting.
func (e *CSVExporter) Render(timetable Timetable) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(timetableHeaders); err != nil {
		return nil, fmt.Errorf("write timetable headers: %w", err)
	}
	for _, group := range timetable.Groups {
		for _, row := range group.Rows {
			if err := writer.Write(row.record()); err != nil {
				return nil, fmt.Errorf("write timetable row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush timetable csv: %w", err)
	}
	return buf.Bytes(), nil
}
