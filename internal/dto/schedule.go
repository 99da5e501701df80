package dto

import "github.com/hagwon-io/hagwon-api/pkg/timegrid"

// BlockPayload is the wire shape of one weekly schedule block.
type BlockPayload struct {
	ID          string `json:"id"`
	GroupID     string `json:"groupId,omitempty"`
	Draft       bool   `json:"draft,omitempty"`
	DayOfWeek   int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Kind        string `json:"kind" validate:"omitempty,oneof=class personal clinic event"`
	Title       string `json:"title"`
	Room        string `json:"room,omitempty"`
	TeacherName string `json:"teacherName,omitempty"`
	StudentID   string `json:"studentId,omitempty"`
	StudentName string `json:"studentName,omitempty"`
}

// Block converts the payload into an engine schedule block.
func (p BlockPayload) Block() timegrid.ScheduleBlock {
	kind := timegrid.BlockKind(p.Kind)
	if p.Kind == "" {
		kind = timegrid.KindClass
	}
	return timegrid.ScheduleBlock{
		ID:          p.ID,
		GroupID:     p.GroupID,
		Draft:       p.Draft,
		DayOfWeek:   p.DayOfWeek,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Kind:        kind,
		Title:       p.Title,
		Room:        p.Room,
		TeacherName: p.TeacherName,
		StudentID:   p.StudentID,
		StudentName: p.StudentName,
	}
}

// PayloadFromBlock converts an engine block into the wire shape.
func PayloadFromBlock(b timegrid.ScheduleBlock) BlockPayload {
	return BlockPayload{
		ID:          b.ID,
		GroupID:     b.GroupID,
		Draft:       b.Draft,
		DayOfWeek:   b.DayOfWeek,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Kind:        string(b.Kind),
		Title:       b.Title,
		Room:        b.Room,
		TeacherName: b.TeacherName,
		StudentID:   b.StudentID,
		StudentName: b.StudentName,
	}
}

// CreateBlockRequest creates a single schedule block.
type CreateBlockRequest struct {
	StudentID   string `json:"studentId" validate:"required"`
	GroupID     string `json:"groupId"`
	DayOfWeek   int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Kind        string `json:"kind" validate:"omitempty,oneof=class personal clinic event"`
	Title       string `json:"title" validate:"required"`
	Room        string `json:"room"`
	TeacherName string `json:"teacherName"`
}

// UpdateBlockRequest updates the mutable fields of a schedule block.
type UpdateBlockRequest struct {
	DayOfWeek   *int    `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Kind        *string `json:"kind" validate:"omitempty,oneof=class personal clinic event"`
	Title       *string `json:"title"`
	Room        *string `json:"room"`
	TeacherName *string `json:"teacherName"`
}

// ApplyBlocksRequest submits an edited week for one student. The server
// diffs against the persisted rows and reconciles.
type ApplyBlocksRequest struct {
	StudentID string         `json:"studentId" validate:"required"`
	Blocks    []BlockPayload `json:"blocks" validate:"dive"`
}

// ApplyBlocksResponse reports the reconciliation result along with the
// authoritative week after the writes.
type ApplyBlocksResponse struct {
	Added   int            `json:"added"`
	Updated int            `json:"updated"`
	Deleted int            `json:"deleted"`
	Blocks  []BlockPayload `json:"blocks"`
}
