package timegrid

// DragPhase enumerates the interaction states of a pointer drag.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragActive
	DragDropped
	DragCancelled
)

// DragState is the single source of truth for one drag interaction:
// Idle -> Active -> (Dropped | Cancelled). While active it carries
// the grabbed block, the pointer offset inside the block at grab
// time, and the live preview window. Every transition method returns
// the value unchanged when called out of phase, so stray pointer
// events cannot corrupt the state.
type DragState struct {
	Phase    DragPhase
	Block    ScheduleBlock
	duration int
	offsetX  float64
	offsetY  float64
	Preview  *TimeWindow
}

// BeginDrag starts a drag of the given block. pointerX/Y is the
// pointer position, rect the block's laid-out rectangle; the offset
// between them is preserved so the block does not jump under the
// cursor. Blocks with a malformed time range refuse to drag.
func BeginDrag(b ScheduleBlock, rect Rect, pointerX, pointerY float64) DragState {
	duration, err := b.DurationMinutes()
	if err != nil {
		return DragState{Phase: DragIdle}
	}
	return DragState{
		Phase:    DragActive,
		Block:    b,
		duration: duration,
		offsetX:  pointerX - rect.X,
		offsetY:  pointerY - rect.Y,
	}
}

// Move recomputes the live preview for a pointer-move event. One
// inverse mapping per event, no scan of other blocks. Moving outside
// the grid clears the preview but keeps the drag alive.
func (d DragState) Move(pointerX, pointerY float64, cfg Config) DragState {
	if d.Phase != DragActive {
		return d
	}
	d.Preview = cfg.WindowAt(pointerX-d.offsetX, pointerY-d.offsetY, d.duration)
	return d
}

// Drop completes the drag. With a valid drop target the grabbed
// block is re-timed onto the preview window, preserving its duration;
// without one the drag resolves as cancelled and the block is
// untouched.
func (d DragState) Drop(pointerX, pointerY float64, cfg Config) DragState {
	if d.Phase != DragActive {
		return d
	}
	window := cfg.WindowAt(pointerX-d.offsetX, pointerY-d.offsetY, d.duration)
	if window == nil {
		d.Phase = DragCancelled
		d.Preview = nil
		return d
	}
	d.Block.DayOfWeek = window.DayOfWeek
	d.Block.StartTime = window.StartTime
	d.Block.EndTime = window.EndTime
	d.Phase = DragDropped
	d.Preview = window
	return d
}

// Cancel aborts the drag with no mutation, e.g. when the pointer
// leaves the interactive surface.
func (d DragState) Cancel() DragState {
	if d.Phase != DragActive {
		return d
	}
	d.Phase = DragCancelled
	d.Preview = nil
	return d
}

// ApplyDrop splices a dropped block into a block list, replacing the
// entry with the same id. The input slice is not mutated; the result
// is a fresh list ready for Diff against the original.
func ApplyDrop(blocks []ScheduleBlock, dropped ScheduleBlock) []ScheduleBlock {
	result := make([]ScheduleBlock, 0, len(blocks))
	replaced := false
	for _, b := range blocks {
		if b.ID == dropped.ID {
			result = append(result, dropped)
			replaced = true
			continue
		}
		result = append(result, b)
	}
	if !replaced {
		result = append(result, dropped)
	}
	return result
}
