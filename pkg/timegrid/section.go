package timegrid

// DayHours bounds one day-of-week section of the classroom layout.
// Weekday and weekend sections commonly differ.
type DayHours struct {
	DayOfWeek int `json:"day_of_week"`
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// SectionConfig describes the classroom-oriented layout: every day of
// the week is a vertically stacked section with its own hour range,
// and rooms are the horizontal axis.
type SectionConfig struct {
	Days            []DayHours `json:"days"`
	Rooms           []string   `json:"rooms"`
	SlotMinutes     int        `json:"slot_minutes"`
	RoomColumnWidth float64    `json:"room_column_width"`
	SlotPixelHeight float64    `json:"slot_pixel_height"`
	HeaderHeight    float64    `json:"header_height"`
	SectionSpacing  float64    `json:"section_spacing"`
}

// Section is one day's precomputed vertical extent.
type Section struct {
	DayOfWeek    int     `json:"day_of_week"`
	StartMinutes int     `json:"start_minutes"`
	EndMinutes   int     `json:"end_minutes"`
	StartY       float64 `json:"start_y"`
	Height       float64 `json:"height"`
}

// SectionLayout is the cumulative offset table for a SectionConfig,
// computed once per config and shared by forward mapping, inverse
// mapping and scroll positioning.
type SectionLayout struct {
	cfg       SectionConfig
	sections  []Section
	byDay     map[int]int
	roomIndex map[string]int
	totalH    float64
}

// NewSectionLayout precomputes section offsets for the config.
func NewSectionLayout(cfg SectionConfig) *SectionLayout {
	if cfg.SlotMinutes <= 0 {
		cfg.SlotMinutes = 30
	}
	if cfg.SlotPixelHeight <= 0 {
		cfg.SlotPixelHeight = 24
	}
	if cfg.RoomColumnWidth <= 0 {
		cfg.RoomColumnWidth = 140
	}

	l := &SectionLayout{
		cfg:       cfg,
		byDay:     make(map[int]int, len(cfg.Days)),
		roomIndex: make(map[string]int, len(cfg.Rooms)),
	}
	for i, room := range cfg.Rooms {
		l.roomIndex[room] = i
	}

	y := cfg.HeaderHeight
	for _, day := range cfg.Days {
		if day.EndHour <= day.StartHour {
			continue
		}
		start := day.StartHour * 60
		end := day.EndHour * 60
		height := float64(end-start) / float64(cfg.SlotMinutes) * cfg.SlotPixelHeight
		l.byDay[day.DayOfWeek] = len(l.sections)
		l.sections = append(l.sections, Section{
			DayOfWeek:    day.DayOfWeek,
			StartMinutes: start,
			EndMinutes:   end,
			StartY:       y,
			Height:       height,
		})
		y += height + cfg.SectionSpacing
	}
	l.totalH = y
	return l
}

// Sections returns the offset table in stacking order.
func (l *SectionLayout) Sections() []Section { return l.sections }

// TotalHeight returns the full stacked height including spacing.
func (l *SectionLayout) TotalHeight() float64 { return l.totalH }

// SectionFor returns the section covering the given day of week.
func (l *SectionLayout) SectionFor(dayOfWeek int) (Section, bool) {
	idx, ok := l.byDay[dayOfWeek]
	if !ok {
		return Section{}, false
	}
	return l.sections[idx], true
}

// Layout maps a block into the stacked classroom space. The room is
// the horizontal axis; unknown rooms land in column 0.
func (l *SectionLayout) Layout(b ScheduleBlock) (Rect, bool) {
	section, ok := l.SectionFor(b.DayOfWeek)
	if !ok {
		return Rect{}, false
	}
	start, err := b.StartMinutes()
	if err != nil {
		return Rect{}, false
	}
	end, err := b.EndMinutes()
	if err != nil || end <= start {
		return Rect{}, false
	}
	if end <= section.StartMinutes || start >= section.EndMinutes {
		return Rect{}, false
	}
	if start < section.StartMinutes {
		start = section.StartMinutes
	}
	if end > section.EndMinutes {
		end = section.EndMinutes
	}
	col := 0
	if idx, ok := l.roomIndex[b.Room]; ok {
		col = idx
	}
	return Rect{
		X:      float64(col) * l.cfg.RoomColumnWidth,
		Y:      section.StartY + float64(start-section.StartMinutes)/float64(l.cfg.SlotMinutes)*l.cfg.SlotPixelHeight,
		Width:  l.cfg.RoomColumnWidth,
		Height: float64(end-start) / float64(l.cfg.SlotMinutes) * l.cfg.SlotPixelHeight,
	}, true
}

// WindowAt inverse-maps a pointer position to a candidate window. The
// vertical position selects the day section and slot; the horizontal
// position selects the room. Points in the spacing between sections
// or outside the room columns return nil.
func (l *SectionLayout) WindowAt(x, y float64, durationMinutes int) (*TimeWindow, string) {
	if durationMinutes <= 0 || x < 0 {
		return nil, ""
	}
	col := int(x / l.cfg.RoomColumnWidth)
	if len(l.cfg.Rooms) > 0 && col >= len(l.cfg.Rooms) {
		return nil, ""
	}
	for _, section := range l.sections {
		if y < section.StartY || y >= section.StartY+section.Height {
			continue
		}
		slot := int((y - section.StartY) / l.cfg.SlotPixelHeight)
		start := section.StartMinutes + slot*l.cfg.SlotMinutes
		end := start + durationMinutes
		if end > section.EndMinutes {
			return nil, ""
		}
		room := ""
		if col < len(l.cfg.Rooms) {
			room = l.cfg.Rooms[col]
		}
		return &TimeWindow{
			DayOfWeek: section.DayOfWeek,
			StartTime: FormatMinutes(start),
			EndTime:   FormatMinutes(end),
		}, room
	}
	return nil, ""
}

// ScrollOffsetFor returns the vertical offset that brings the given
// day/time into view, used for scroll-to-now on first paint. The
// time is clamped into the section's range.
func (l *SectionLayout) ScrollOffsetFor(dayOfWeek, minutes int) (float64, bool) {
	section, ok := l.SectionFor(dayOfWeek)
	if !ok {
		return 0, false
	}
	if minutes < section.StartMinutes {
		minutes = section.StartMinutes
	}
	if minutes > section.EndMinutes {
		minutes = section.EndMinutes
	}
	return section.StartY + float64(minutes-section.StartMinutes)/float64(l.cfg.SlotMinutes)*l.cfg.SlotPixelHeight, true
}
