package timegrid

import "fmt"

// DensityMap counts how many schedules occupy each "{day}-{HH:MM}"
// slot key. Built fresh per query; never cached inside the engine.
type DensityMap map[string]int

// SlotOccupant identifies one schedule occupying a slot, for tooltip
// disclosure.
type SlotOccupant struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Title       string `json:"title"`
}

// TooltipIndex maps slot keys to their occupants in input order.
type TooltipIndex map[string][]SlotOccupant

// SlotKey builds the canonical key for a (day, slot-start) cell.
func SlotKey(dayOfWeek, startMinutes int) string {
	return fmt.Sprintf("%d-%s", dayOfWeek, FormatMinutes(startMinutes))
}

// walkSlots visits every slot-start a block occupies within the grid
// range, expanding the block rather than point-sampling it: a
// 90-minute block at 30-minute granularity visits three slots.
func walkSlots(cfg Config, b ScheduleBlock, visit func(day, slotStart int)) {
	start, err := b.StartMinutes()
	if err != nil {
		return
	}
	end, err := b.EndMinutes()
	if err != nil || end <= start {
		return
	}
	dayStart, dayEnd := cfg.DayStartMinutes(), cfg.DayEndMinutes()
	if start < dayStart {
		start = dayStart
	}
	if end > dayEnd {
		end = dayEnd
	}
	// Snap the first visited slot to the grid resolution.
	first := start - (start-dayStart)%cfg.SlotMinutes
	for at := first; at < end; at += cfg.SlotMinutes {
		visit(b.DayOfWeek, at)
	}
}

// ComputeDensity expands every block over its occupied slots and
// increments the counter for each one. Overlapping schedules are the
// signal this map exists to surface, so they are counted, not
// rejected.
func ComputeDensity(blocks []ScheduleBlock, cfg Config) DensityMap {
	cfg = cfg.Normalize()
	density := make(DensityMap)
	for _, b := range blocks {
		walkSlots(cfg, b, func(day, slotStart int) {
			density[SlotKey(day, slotStart)]++
		})
	}
	return density
}

// ComputeTooltipIndex runs the same traversal as ComputeDensity but
// collects occupant tuples per slot, preserving input iteration order.
func ComputeTooltipIndex(blocks []ScheduleBlock, cfg Config) TooltipIndex {
	cfg = cfg.Normalize()
	index := make(TooltipIndex)
	for _, b := range blocks {
		occupant := SlotOccupant{
			StudentID:   b.StudentID,
			StudentName: b.StudentName,
			Title:       b.Title,
		}
		walkSlots(cfg, b, func(day, slotStart int) {
			key := SlotKey(day, slotStart)
			index[key] = append(index[key], occupant)
		})
	}
	return index
}

// Total sums all slot counters. Useful for conservation checks: the
// total equals the sum over blocks of duration/slotMinutes when every
// block lies inside the grid range.
func (d DensityMap) Total() int {
	total := 0
	for _, count := range d {
		total += count
	}
	return total
}

// Max returns the highest slot count, used to scale heat colouring.
func (d DensityMap) Max() int {
	max := 0
	for _, count := range d {
		if count > max {
			max = count
		}
	}
	return max
}
