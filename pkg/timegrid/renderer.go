package timegrid

// LaidOutBlock pairs a block with its computed rectangle and display
// colour.
type LaidOutBlock struct {
	Block ScheduleBlock `json:"block"`
	Rect  Rect          `json:"rect"`
	Color string        `json:"color"`
}

// LayoutModel is everything a rendering adapter needs to draw one
// timetable: the grid shape and the placed blocks. It carries no
// behaviour; canvas, SVG or retained-mode adapters all consume the
// same model.
type LayoutModel struct {
	Config Config         `json:"config"`
	Blocks []LaidOutBlock `json:"blocks"`
}

// Renderer draws a layout model. Implementations hold the drawing
// surface; they must not contain scheduling logic.
type Renderer interface {
	Render(model LayoutModel)
}

// BuildLayoutModel lays out every block that fits the grid. Blocks
// outside the visible range are skipped, not clamped.
func BuildLayoutModel(blocks []ScheduleBlock, cfg Config) LayoutModel {
	cfg = cfg.Normalize()
	model := LayoutModel{Config: cfg}
	for _, b := range blocks {
		rect, ok := cfg.Layout(b)
		if !ok {
			continue
		}
		model.Blocks = append(model.Blocks, LaidOutBlock{Block: b, Rect: rect, Color: BlockColor(b)})
	}
	return model
}
