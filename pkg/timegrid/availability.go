package timegrid

import "sort"

// FreeInterval is one gap in a student's day, bounded by the grid's
// visible hours.
type FreeInterval struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// AvailabilityAnalysis holds the complement of one student's occupied
// intervals for a single day.
type AvailabilityAnalysis struct {
	StudentID     string         `json:"student_id"`
	DayOfWeek     int            `json:"day_of_week"`
	FreeIntervals []FreeInterval `json:"free_intervals"`
}

// occupiedRanges returns the student's clipped, sorted busy ranges
// for the day, in minutes.
func occupiedRanges(blocks []ScheduleBlock, dayOfWeek, dayStart, dayEnd int) [][2]int {
	var ranges [][2]int
	for _, b := range blocks {
		if b.DayOfWeek != dayOfWeek {
			continue
		}
		start, err := b.StartMinutes()
		if err != nil {
			continue
		}
		end, err := b.EndMinutes()
		if err != nil || end <= start {
			continue
		}
		if end <= dayStart || start >= dayEnd {
			continue
		}
		if start < dayStart {
			start = dayStart
		}
		if end > dayEnd {
			end = dayEnd
		}
		ranges = append(ranges, [2]int{start, end})
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })
	return ranges
}

// AnalyzeAvailability computes the free intervals of one student's
// day: the gap before the first block, between consecutive blocks and
// after the last one, bounded by the grid hours. Zero-length gaps are
// omitted. Overlapping busy blocks merge naturally.
func AnalyzeAvailability(studentID string, blocks []ScheduleBlock, dayOfWeek int, cfg Config) AvailabilityAnalysis {
	cfg = cfg.Normalize()
	dayStart, dayEnd := cfg.DayStartMinutes(), cfg.DayEndMinutes()

	analysis := AvailabilityAnalysis{StudentID: studentID, DayOfWeek: dayOfWeek}
	cursor := dayStart
	for _, r := range occupiedRanges(blocks, dayOfWeek, dayStart, dayEnd) {
		if r[0] > cursor {
			analysis.FreeIntervals = append(analysis.FreeIntervals, FreeInterval{
				StartTime:       FormatMinutes(cursor),
				EndTime:         FormatMinutes(r[0]),
				DurationMinutes: r[0] - cursor,
			})
		}
		if r[1] > cursor {
			cursor = r[1]
		}
	}
	if cursor < dayEnd {
		analysis.FreeIntervals = append(analysis.FreeIntervals, FreeInterval{
			StartTime:       FormatMinutes(cursor),
			EndTime:         FormatMinutes(dayEnd),
			DurationMinutes: dayEnd - cursor,
		})
	}
	return analysis
}

// ConflictsWith returns the blocks whose interval strictly overlaps
// the proposed window on the given day. Touching boundaries
// (proposedEnd == blockStart) are not conflicts; the test is
// half-open over integer minutes.
func ConflictsWith(blocks []ScheduleBlock, window TimeWindow) []ScheduleBlock {
	proposedStart, err := ParseClock(window.StartTime)
	if err != nil {
		return nil
	}
	proposedEnd, err := ParseClock(window.EndTime)
	if err != nil || proposedEnd <= proposedStart {
		return nil
	}

	var conflicts []ScheduleBlock
	for _, b := range blocks {
		if b.DayOfWeek != window.DayOfWeek {
			continue
		}
		start, err := b.StartMinutes()
		if err != nil {
			continue
		}
		end, err := b.EndMinutes()
		if err != nil {
			continue
		}
		if proposedStart < end && proposedEnd > start {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}
