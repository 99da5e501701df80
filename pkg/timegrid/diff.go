package timegrid

// BlockDiff partitions an edit into the minimal create/update/delete
// sets. Computed once per save action and handed to the persistence
// boundary; the three sets are disjoint and unchanged blocks appear
// in none of them.
type BlockDiff struct {
	Added   []ScheduleBlock `json:"added"`
	Deleted []ScheduleBlock `json:"deleted"`
	Updated []ScheduleBlock `json:"updated"`
}

// Empty reports whether the diff is a no-op.
func (d BlockDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Deleted) == 0 && len(d.Updated) == 0
}

// sameBlock compares every field that an edit can change. A block
// whose comparable fields all match is a no-op regardless of pointer
// or ordering differences.
func sameBlock(a, b ScheduleBlock) bool {
	return a.DayOfWeek == b.DayOfWeek &&
		a.StartTime == b.StartTime &&
		a.EndTime == b.EndTime &&
		a.GroupID == b.GroupID &&
		a.Kind == b.Kind &&
		a.Title == b.Title &&
		a.Room == b.Room &&
		a.TeacherName == b.TeacherName &&
		a.StudentID == b.StudentID &&
		a.StudentName == b.StudentName &&
		a.StudentCount == b.StudentCount &&
		a.MaxStudents == b.MaxStudents
}

// Diff reconciles an original block list against a user-edited one.
// Identity is the block id, except that draft blocks are always
// classified as added: their transient ids are minted by NewDraftID
// and must never match a persisted row. Diff(x, x) yields an empty
// diff for any list x.
func Diff(original, edited []ScheduleBlock) BlockDiff {
	var diff BlockDiff

	originalByID := make(map[string]ScheduleBlock, len(original))
	for _, b := range original {
		originalByID[b.ID] = b
	}

	editedIDs := make(map[string]bool, len(edited))
	for _, b := range edited {
		if b.IsDraft() {
			diff.Added = append(diff.Added, b)
			continue
		}
		editedIDs[b.ID] = true
		before, exists := originalByID[b.ID]
		switch {
		case !exists:
			diff.Added = append(diff.Added, b)
		case !sameBlock(before, b):
			diff.Updated = append(diff.Updated, b)
		}
	}

	for _, b := range original {
		if !editedIDs[b.ID] {
			diff.Deleted = append(diff.Deleted, b)
		}
	}
	return diff
}
