package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/hagwon-io/hagwon-api/pkg/timegrid"
)

var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekTable is a timetable flattened for tabular export: one row per
// block, ordered by day then start time.
type WeekTable struct {
	Title  string
	Blocks []timegrid.ScheduleBlock
}

func (t WeekTable) sorted() []timegrid.ScheduleBlock {
	blocks := make([]timegrid.ScheduleBlock, len(t.Blocks))
	copy(blocks, t.Blocks)
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].DayOfWeek != blocks[j].DayOfWeek {
			return blocks[i].DayOfWeek < blocks[j].DayOfWeek
		}
		return blocks[i].StartTime < blocks[j].StartTime
	})
	return blocks
}

func dayName(day int) string {
	if day >= 0 && day < len(dayNames) {
		return dayNames[day]
	}
	return fmt.Sprintf("day-%d", day)
}

// CSVExporter renders a week table into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the timetable.
func (e *CSVExporter) Render(table WeekTable) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write([]string{"day", "start", "end", "title", "kind", "room", "teacher"}); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, b := range table.sorted() {
		record := []string{dayName(b.DayOfWeek), b.StartTime, b.EndTime, b.Title, string(b.Kind), b.Room, b.TeacherName}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
