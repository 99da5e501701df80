package models

import (
	"strings"
	"time"
)

// Schedule row kinds, mirroring timegrid block kinds at the storage
// boundary.
const (
	ScheduleKindClass    = "class"
	ScheduleKindPersonal = "personal"
	ScheduleKindClinic   = "clinic"
	ScheduleKindEvent    = "event"
)

// ScheduleRow is one persisted weekly schedule entry. Rows store the
// day as an uppercase name; the service layer translates to the
// engine's Monday=0 indexing.
type ScheduleRow struct {
	ID          string    `db:"id" json:"id"`
	GroupID     string    `db:"group_id" json:"group_id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	StudentName string    `db:"student_name" json:"student_name"`
	DayOfWeek   string    `db:"day_of_week" json:"day_of_week"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	Kind        string    `db:"kind" json:"kind"`
	Title       string    `db:"title" json:"title"`
	Room        string    `db:"room" json:"room"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleFilter describes query params for listing schedule rows.
type ScheduleFilter struct {
	StudentID  string
	StudentIDs []string
	GroupID    string
	Room       string
	DayOfWeek  string
	Kind       string
}

var dayNames = []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

// DayNameToIndex translates a stored day name into the engine's
// Monday=0 index. Unknown names yield -1.
func DayNameToIndex(name string) int {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, day := range dayNames {
		if day == upper {
			return i
		}
	}
	return -1
}

// DayIndexToName translates an engine day index back to the stored
// name. Out-of-range indexes yield the empty string.
func DayIndexToName(index int) string {
	if index < 0 || index >= len(dayNames) {
		return ""
	}
	return dayNames[index]
}
