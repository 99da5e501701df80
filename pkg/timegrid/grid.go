package timegrid

// Config describes the day/time grid a timetable is laid out on.
// Hours bound the visible range, SlotMinutes is the resolution of one
// grid row, and the pixel fields govern the rendered size.
type Config struct {
	StartHour       int     `json:"start_hour"`
	EndHour         int     `json:"end_hour"`
	SlotMinutes     int     `json:"slot_minutes"`
	DayCount        int     `json:"day_count"`
	DayColumnWidth  float64 `json:"day_column_width"`
	SlotPixelHeight float64 `json:"slot_pixel_height"`
	HeaderHeight    float64 `json:"header_height"`
}

// DefaultConfig mirrors the usual academy grid: Monday-Sunday,
// 09:00-22:00 at 30-minute resolution.
func DefaultConfig() Config {
	return Config{
		StartHour:       9,
		EndHour:         22,
		SlotMinutes:     30,
		DayCount:        7,
		DayColumnWidth:  140,
		SlotPixelHeight: 24,
		HeaderHeight:    32,
	}
}

// Normalize fills zero-valued fields with defaults so a partially
// specified config is still usable.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.SlotMinutes <= 0 {
		c.SlotMinutes = def.SlotMinutes
	}
	if c.EndHour <= c.StartHour {
		c.StartHour = def.StartHour
		c.EndHour = def.EndHour
	}
	if c.DayCount <= 0 || c.DayCount > 7 {
		c.DayCount = def.DayCount
	}
	if c.DayColumnWidth <= 0 {
		c.DayColumnWidth = def.DayColumnWidth
	}
	if c.SlotPixelHeight <= 0 {
		c.SlotPixelHeight = def.SlotPixelHeight
	}
	if c.HeaderHeight < 0 {
		c.HeaderHeight = def.HeaderHeight
	}
	return c
}

// DayStartMinutes returns the first visible minute of a grid day.
func (c Config) DayStartMinutes() int { return c.StartHour * 60 }

// DayEndMinutes returns the minute just past the visible range.
func (c Config) DayEndMinutes() int { return c.EndHour * 60 }

// SlotsPerDay returns how many rows one day spans.
func (c Config) SlotsPerDay() int {
	return (c.DayEndMinutes() - c.DayStartMinutes()) / c.SlotMinutes
}

// Rect is a laid-out block rectangle in grid pixel space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TimeWindow is a candidate (day, start, end) produced by inverse
// mapping or user interaction.
type TimeWindow struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Layout maps a block into grid pixel space. Blocks that start before
// the visible range are clipped to it; blocks entirely outside the
// range or malformed report ok=false.
func (c Config) Layout(b ScheduleBlock) (Rect, bool) {
	start, err := b.StartMinutes()
	if err != nil {
		return Rect{}, false
	}
	end, err := b.EndMinutes()
	if err != nil || end <= start {
		return Rect{}, false
	}
	if b.DayOfWeek < 0 || b.DayOfWeek >= c.DayCount {
		return Rect{}, false
	}
	dayStart, dayEnd := c.DayStartMinutes(), c.DayEndMinutes()
	if end <= dayStart || start >= dayEnd {
		return Rect{}, false
	}
	if start < dayStart {
		start = dayStart
	}
	if end > dayEnd {
		end = dayEnd
	}
	return Rect{
		X:      float64(b.DayOfWeek) * c.DayColumnWidth,
		Y:      float64(start-dayStart)/float64(c.SlotMinutes)*c.SlotPixelHeight + c.HeaderHeight,
		Width:  c.DayColumnWidth,
		Height: float64(end-start) / float64(c.SlotMinutes) * c.SlotPixelHeight,
	}, true
}

// WindowAt inverse-maps a pointer position to a candidate window of
// the given duration. The drop keeps the dragged block's duration;
// the start snaps to the slot under the pointer. Positions outside
// the grid (left of day 0, past the last day, above the header, or a
// start that would not fit the duration before day end) return nil so
// the caller aborts instead of landing on an arbitrary edge.
func (c Config) WindowAt(x, y float64, durationMinutes int) *TimeWindow {
	if durationMinutes <= 0 || c.DayColumnWidth <= 0 || c.SlotPixelHeight <= 0 {
		return nil
	}
	if x < 0 || y < c.HeaderHeight {
		return nil
	}
	day := int(x / c.DayColumnWidth)
	if day >= c.DayCount {
		return nil
	}
	slot := int((y - c.HeaderHeight) / c.SlotPixelHeight)
	if slot >= c.SlotsPerDay() {
		return nil
	}
	start := c.DayStartMinutes() + slot*c.SlotMinutes
	end := start + durationMinutes
	if end > c.DayEndMinutes() {
		return nil
	}
	return &TimeWindow{
		DayOfWeek: day,
		StartTime: FormatMinutes(start),
		EndTime:   FormatMinutes(end),
	}
}

// FitColumns computes how many day/room columns fit in the available
// width and the resulting column width. This is a responsive layout
// rule: recompute on every viewport resize.
func FitColumns(availableWidth, minColumnWidth float64, totalColumns int) (visible int, columnWidth float64) {
	if totalColumns < 1 {
		return 0, 0
	}
	if minColumnWidth <= 0 || availableWidth <= 0 {
		return 1, availableWidth
	}
	visible = int(availableWidth / minColumnWidth)
	if visible < 1 {
		visible = 1
	}
	if visible > totalColumns {
		visible = totalColumns
	}
	return visible, availableWidth / float64(visible)
}
