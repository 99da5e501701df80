package dto

import "github.com/hagwon-io/hagwon-api/pkg/timegrid"

// TimetableScope selects whose blocks a timetable query covers. Exactly
// one of the fields should be set; student scope wins when both are.
type TimetableScope struct {
	StudentID string `form:"studentId" json:"studentId"`
	ClassID   string `form:"classId" json:"classId"`
}

// LayoutQuery requests a pixel layout for a scope.
type LayoutQuery struct {
	TimetableScope
	Width float64 `form:"width" json:"width"`
}

// LayoutResponse carries the positioned week plus the grid geometry the
// positions were computed against.
type LayoutResponse struct {
	Model          timegrid.LayoutModel `json:"model"`
	VisibleColumns int                  `json:"visible_columns"`
	ColumnWidth    float64              `json:"column_width"`
}

// DensityQuery requests slot occupancy for a scope.
type DensityQuery struct {
	TimetableScope
}

// DensityResponse carries per-slot occupancy and tooltip detail.
type DensityResponse struct {
	Density  timegrid.DensityMap   `json:"density"`
	Tooltips timegrid.TooltipIndex `json:"tooltips"`
	Max      int                   `json:"max"`
	Total    int                   `json:"total"`
}

// AvailabilityResponse carries one student's free intervals for a day.
type AvailabilityResponse struct {
	Analysis timegrid.AvailabilityAnalysis `json:"analysis"`
}

// SuggestRequest scores a candidate window against a class roster.
type SuggestRequest struct {
	ClassID   string `json:"classId" validate:"required"`
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// SuggestResponse carries the scored suggestion and its band.
type SuggestResponse struct {
	Suggestion timegrid.Suggestion `json:"suggestion"`
	Band       string              `json:"band"`
}

// AutoSuggestRequest searches a day for the best common free window.
type AutoSuggestRequest struct {
	ClassID         string `json:"classId" validate:"required"`
	DayOfWeek       int    `json:"dayOfWeek" validate:"min=0,max=6"`
	SlotMinutes     int    `json:"slotMinutes" validate:"omitempty,min=5"`
	MinClassMinutes int    `json:"minClassMinutes" validate:"omitempty,min=5"`
}

// AutoSuggestResponse carries the proposal, or found=false when no
// common window of the required length exists.
type AutoSuggestResponse struct {
	Found      bool                 `json:"found"`
	Suggestion *timegrid.Suggestion `json:"suggestion,omitempty"`
	Band       string               `json:"band,omitempty"`
}

// ExportQuery selects the export scope and format.
type ExportQuery struct {
	TimetableScope
	Format string `form:"format" json:"format" validate:"omitempty,oneof=csv pdf"`
	Title  string `form:"title" json:"title"`
}
