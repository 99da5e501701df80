package timegrid

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"
)

// BlockKind categorises a schedule block. It drives colouring and
// whether the block is user-editable; the geometry maths never
// inspects it.
type BlockKind string

const (
	KindClass    BlockKind = "class"
	KindPersonal BlockKind = "personal"
	KindClinic   BlockKind = "clinic"
	KindEvent    BlockKind = "event"
)

// draftPrefix marks transient client-side ids. Draft ids are produced
// only by NewDraftID so they cannot collide with persisted uuids.
const draftPrefix = "draft-"

// ScheduleBlock is the normalised schedule unit used throughout the
// engine: one occupation of a time range on one day of the week.
// Day convention is Monday=0 through Sunday=6.
type ScheduleBlock struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"group_id,omitempty"`
	Draft        bool      `json:"draft,omitempty"`
	DayOfWeek    int       `json:"day_of_week"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Kind         BlockKind `json:"kind"`
	Title        string    `json:"title,omitempty"`
	Color        string    `json:"color,omitempty"`
	Room         string    `json:"room,omitempty"`
	TeacherName  string    `json:"teacher_name,omitempty"`
	StudentID    string    `json:"student_id,omitempty"`
	StudentName  string    `json:"student_name,omitempty"`
	StudentCount int       `json:"student_count,omitempty"`
	MaxStudents  int       `json:"max_students,omitempty"`
}

// NewDraftID mints a transient id for a block that has not been
// persisted yet.
func NewDraftID() string {
	return draftPrefix + uuid.NewString()
}

// IsDraftID reports whether the id was produced by NewDraftID.
func IsDraftID(id string) bool {
	return strings.HasPrefix(id, draftPrefix)
}

// IsDraft reports whether the block is unpersisted. Both the tagged
// field and the id shape are honoured so blocks decoded from older
// clients classify correctly.
func (b ScheduleBlock) IsDraft() bool {
	return b.Draft || IsDraftID(b.ID)
}

// StartMinutes returns the block start as minutes since midnight.
func (b ScheduleBlock) StartMinutes() (int, error) {
	return ParseClock(b.StartTime)
}

// EndMinutes returns the block end as minutes since midnight.
func (b ScheduleBlock) EndMinutes() (int, error) {
	return ParseClock(b.EndTime)
}

// DurationMinutes returns end-start, or an error when either bound is
// malformed or the range is not strictly positive.
func (b ScheduleBlock) DurationMinutes() (int, error) {
	start, err := b.StartMinutes()
	if err != nil {
		return 0, err
	}
	end, err := b.EndMinutes()
	if err != nil {
		return 0, err
	}
	if end <= start {
		return 0, fmt.Errorf("block %s: end %s not after start %s", b.ID, b.EndTime, b.StartTime)
	}
	return end - start, nil
}

// Overlaps reports whether two blocks on the same day intersect.
// The test is half-open: blocks that merely touch do not overlap.
func (b ScheduleBlock) Overlaps(other ScheduleBlock) bool {
	if b.DayOfWeek != other.DayOfWeek {
		return false
	}
	bs, err1 := b.StartMinutes()
	be, err2 := b.EndMinutes()
	os, err3 := other.StartMinutes()
	oe, err4 := other.EndMinutes()
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	return bs < oe && be > os
}

// kindPalette provides a stable base colour per kind.
var kindPalette = map[BlockKind]string{
	KindClass:    "#4F86C6",
	KindPersonal: "#8FBF88",
	KindClinic:   "#C98A4B",
	KindEvent:    "#9B7EC8",
}

// subjectShades are cycled deterministically for class blocks so the
// same subject always renders the same shade.
var subjectShades = []string{
	"#4F86C6", "#5B9E7D", "#C05B5B", "#B08C3E",
	"#7D6BB0", "#4BA2A0", "#B06B9A", "#6B87B0",
}

// BlockColor derives a stable display colour for a block. Class
// blocks hash their title into a shade; other kinds use a fixed
// palette entry.
func BlockColor(b ScheduleBlock) string {
	if b.Color != "" {
		return b.Color
	}
	if b.Kind == KindClass && b.Title != "" {
		h := fnv.New32a()
		_, _ = h.Write([]byte(b.Title))
		return subjectShades[int(h.Sum32())%len(subjectShades)]
	}
	if c, ok := kindPalette[b.Kind]; ok {
		return c
	}
	return kindPalette[KindEvent]
}
