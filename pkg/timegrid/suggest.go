package timegrid

import "math"

// Suggestion is the request-scoped result of scoring one candidate
// class window against a roster.
type Suggestion struct {
	DayOfWeek             int      `json:"day_of_week"`
	StartTime             string   `json:"start_time"`
	EndTime               string   `json:"end_time"`
	AvailableStudentIDs   []string `json:"available_student_ids"`
	ConflictingStudentIDs []string `json:"conflicting_student_ids"`
	Score                 int      `json:"score"`
}

// ScoreBand buckets a score for UI colouring. Presentation policy,
// not a correctness rule.
func ScoreBand(score int) string {
	switch {
	case score >= 80:
		return "good"
	case score >= 60:
		return "fair"
	case score >= 40:
		return "weak"
	default:
		return "poor"
	}
}

// Suggest partitions the roster into students free for the window and
// students with a conflicting schedule, and scores the window as the
// rounded percentage of available students. An empty roster scores 0:
// a class nobody can attend is never "perfectly suitable".
func Suggest(window TimeWindow, schedulesByStudent map[string][]ScheduleBlock, studentIDs []string) Suggestion {
	s := Suggestion{
		DayOfWeek: window.DayOfWeek,
		StartTime: window.StartTime,
		EndTime:   window.EndTime,
	}
	for _, id := range studentIDs {
		if len(ConflictsWith(schedulesByStudent[id], window)) > 0 {
			s.ConflictingStudentIDs = append(s.ConflictingStudentIDs, id)
		} else {
			s.AvailableStudentIDs = append(s.AvailableStudentIDs, id)
		}
	}
	if total := len(studentIDs); total > 0 {
		s.Score = int(math.Round(100 * float64(len(s.AvailableStudentIDs)) / float64(total)))
	}
	return s
}

// SuggestOptions tune auto-suggestion. SlotMinutes is the candidate
// start-time granularity, deliberately independent of the render
// grid's resolution (class start times snap to the half hour by
// default). MinClassMinutes is the shortest acceptable class.
type SuggestOptions struct {
	SlotMinutes     int `json:"slot_minutes"`
	MinClassMinutes int `json:"min_class_minutes"`
}

func (o SuggestOptions) normalize() SuggestOptions {
	if o.SlotMinutes <= 0 {
		o.SlotMinutes = 30
	}
	if o.MinClassMinutes <= 0 {
		o.MinClassMinutes = 90
	}
	return o
}

// AutoSuggest finds the first window on the given day in which every
// selected student is free for at least the minimum class length. A
// slot is common only when all students are free in it; contiguous
// common slots merge into runs, and the first run long enough yields
// the proposal [runStart, runStart+MinClassMinutes]. When no run
// qualifies the result is nil: an explicit no-suggestion, never an
// under-length fallback.
func AutoSuggest(dayOfWeek int, schedulesByStudent map[string][]ScheduleBlock, studentIDs []string, cfg Config, opts SuggestOptions) *Suggestion {
	if len(studentIDs) == 0 {
		return nil
	}
	cfg = cfg.Normalize()
	opts = opts.normalize()

	dayStart, dayEnd := cfg.DayStartMinutes(), cfg.DayEndMinutes()
	common := make([]bool, 0, (dayEnd-dayStart)/opts.SlotMinutes)
	for at := dayStart; at+opts.SlotMinutes <= dayEnd; at += opts.SlotMinutes {
		window := TimeWindow{
			DayOfWeek: dayOfWeek,
			StartTime: FormatMinutes(at),
			EndTime:   FormatMinutes(at + opts.SlotMinutes),
		}
		free := true
		for _, id := range studentIDs {
			if len(ConflictsWith(schedulesByStudent[id], window)) > 0 {
				free = false
				break
			}
		}
		common = append(common, free)
	}

	runStart := -1
	for i := 0; i <= len(common); i++ {
		if i < len(common) && common[i] {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			runMinutes := (i - runStart) * opts.SlotMinutes
			if runMinutes >= opts.MinClassMinutes {
				start := dayStart + runStart*opts.SlotMinutes
				window := TimeWindow{
					DayOfWeek: dayOfWeek,
					StartTime: FormatMinutes(start),
					EndTime:   FormatMinutes(start + opts.MinClassMinutes),
				}
				s := Suggest(window, schedulesByStudent, studentIDs)
				return &s
			}
			runStart = -1
		}
	}
	return nil
}
