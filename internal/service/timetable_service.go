package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hagwon-io/hagwon-api/internal/dto"
	"github.com/hagwon-io/hagwon-api/internal/models"
	appErrors "github.com/hagwon-io/hagwon-api/pkg/errors"
	"github.com/hagwon-io/hagwon-api/pkg/export"
	"github.com/hagwon-io/hagwon-api/pkg/timegrid"
)

type timetableClassRepository interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
	Roster(ctx context.Context, classID string) ([]models.ClassRosterEntry, error)
}

type timetableStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// TimetableConfig tunes timetable computation and caching.
type TimetableConfig struct {
	Grid        timegrid.Config
	Suggest     timegrid.SuggestOptions
	CacheTTL    time.Duration
	MinColumnPx float64
}

// TimetableService computes layouts, density maps, availability and
// placement suggestions over the persisted weekly schedules.
type TimetableService struct {
	schedules scheduleRowRepository
	classes   timetableClassRepository
	students  timetableStudentRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	config    TimetableConfig
}

// NewTimetableService constructs a TimetableService instance.
func NewTimetableService(schedules scheduleRowRepository, classes timetableClassRepository, students timetableStudentRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, config TimetableConfig) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	config.Grid = config.Grid.Normalize()
	if config.MinColumnPx <= 0 {
		config.MinColumnPx = 90
	}
	return &TimetableService{
		schedules: schedules,
		classes:   classes,
		students:  students,
		cache:     cache,
		validator: validate,
		logger:    logger,
		config:    config,
	}
}

// Layout positions the scoped week on the pixel grid. When a viewport
// width is supplied the day columns are fitted to it.
func (s *TimetableService) Layout(ctx context.Context, query dto.LayoutQuery) (*dto.LayoutResponse, error) {
	blocks, _, err := s.resolveScope(ctx, query.TimetableScope)
	if err != nil {
		return nil, err
	}

	cfg := s.config.Grid
	visible := cfg.DayCount
	columnWidth := cfg.DayColumnWidth
	if query.Width > 0 {
		visible, columnWidth = timegrid.FitColumns(query.Width, s.config.MinColumnPx, cfg.DayCount)
		cfg.DayColumnWidth = columnWidth
	}

	return &dto.LayoutResponse{
		Model:          timegrid.BuildLayoutModel(blocks, cfg),
		VisibleColumns: visible,
		ColumnWidth:    columnWidth,
	}, nil
}

// Density computes the per-slot occupancy map for the scope, with the
// tooltip index listing who occupies each slot. Results are cached
// until the underlying schedules change.
func (s *TimetableService) Density(ctx context.Context, query dto.DensityQuery) (*dto.DensityResponse, error) {
	key := s.densityCacheKey(query.TimetableScope)
	if s.cache.Enabled() {
		var cached dto.DensityResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	blocks, _, err := s.resolveScope(ctx, query.TimetableScope)
	if err != nil {
		return nil, err
	}

	density := timegrid.ComputeDensity(blocks, s.config.Grid)
	resp := &dto.DensityResponse{
		Density:  density,
		Tooltips: timegrid.ComputeTooltipIndex(blocks, s.config.Grid),
		Max:      density.Max(),
		Total:    density.Total(),
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, resp, s.config.CacheTTL); err != nil {
			s.logger.Warn("density cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return resp, nil
}

// Availability returns the free intervals of one student on one day,
// the complement of their schedule within the visible grid.
func (s *TimetableService) Availability(ctx context.Context, studentID string, dayOfWeek int) (*dto.AvailabilityResponse, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}
	if dayOfWeek < 0 || dayOfWeek >= s.config.Grid.DayCount {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dayOfWeek is out of range")
	}
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	rows, err := s.schedules.List(ctx, models.ScheduleFilter{StudentID: studentID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	blocks := make([]timegrid.ScheduleBlock, 0, len(rows))
	for _, row := range rows {
		blocks = append(blocks, blockFromRow(row))
	}

	return &dto.AvailabilityResponse{
		Analysis: timegrid.AnalyzeAvailability(studentID, blocks, dayOfWeek, s.config.Grid),
	}, nil
}

// Suggest scores a candidate window against the roster of a class.
func (s *TimetableService) Suggest(ctx context.Context, req dto.SuggestRequest) (*dto.SuggestResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid suggest payload")
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	roster, schedulesByStudent, err := s.loadRoster(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}

	window := timegrid.TimeWindow{DayOfWeek: req.DayOfWeek, StartTime: req.StartTime, EndTime: req.EndTime}
	suggestion := timegrid.Suggest(window, schedulesByStudent, roster)
	return &dto.SuggestResponse{
		Suggestion: suggestion,
		Band:       timegrid.ScoreBand(suggestion.Score),
	}, nil
}

// AutoSuggest searches one day for the best common free window of the
// roster. Found is false when no window of the required length exists.
func (s *TimetableService) AutoSuggest(ctx context.Context, req dto.AutoSuggestRequest) (*dto.AutoSuggestResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid auto-suggest payload")
	}

	roster, schedulesByStudent, err := s.loadRoster(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}

	opts := s.config.Suggest
	if req.SlotMinutes > 0 {
		opts.SlotMinutes = req.SlotMinutes
	}
	if req.MinClassMinutes > 0 {
		opts.MinClassMinutes = req.MinClassMinutes
	}

	suggestion := timegrid.AutoSuggest(req.DayOfWeek, schedulesByStudent, roster, s.config.Grid, opts)
	if suggestion == nil {
		return &dto.AutoSuggestResponse{Found: false}, nil
	}
	return &dto.AutoSuggestResponse{
		Found:      true,
		Suggestion: suggestion,
		Band:       timegrid.ScoreBand(suggestion.Score),
	}, nil
}

// Export renders the scoped week as CSV or PDF.
func (s *TimetableService) Export(ctx context.Context, query dto.ExportQuery) ([]byte, string, string, error) {
	blocks, title, err := s.resolveScope(ctx, query.TimetableScope)
	if err != nil {
		return nil, "", "", err
	}
	if query.Title != "" {
		title = query.Title
	}
	table := export.WeekTable{Title: title, Blocks: blocks}

	switch query.Format {
	case "pdf":
		data, err := export.NewPDFExporter().Render(table)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return data, "application/pdf", "timetable.pdf", nil
	case "", "csv":
		data, err := export.NewCSVExporter().Render(table)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return data, "text/csv", "timetable.csv", nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", query.Format))
	}
}

// resolveScope loads the blocks covered by the scope along with a
// human title for exports. Student scope wins over class scope.
func (s *TimetableService) resolveScope(ctx context.Context, scope dto.TimetableScope) ([]timegrid.ScheduleBlock, string, error) {
	switch {
	case scope.StudentID != "":
		student, err := s.students.FindByID(ctx, scope.StudentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, "", appErrors.Clone(appErrors.ErrNotFound, "student not found")
			}
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
		}
		rows, err := s.schedules.List(ctx, models.ScheduleFilter{StudentID: scope.StudentID})
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
		}
		return rowsToBlocks(rows), student.FullName, nil

	case scope.ClassID != "":
		class, err := s.classes.FindByID(ctx, scope.ClassID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, "", appErrors.Clone(appErrors.ErrNotFound, "class not found")
			}
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
		}
		roster, err := s.classes.Roster(ctx, scope.ClassID)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
		}
		ids := make([]string, 0, len(roster))
		for _, entry := range roster {
			ids = append(ids, entry.StudentID)
		}
		rows, err := s.schedules.ListByStudents(ctx, ids)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster schedules")
		}
		return rowsToBlocks(rows), class.Name, nil

	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "studentId or classId is required")
	}
}

// loadRoster returns the roster ids of a class plus each student's
// schedule keyed by student id.
func (s *TimetableService) loadRoster(ctx context.Context, classID string) ([]string, map[string][]timegrid.ScheduleBlock, error) {
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	roster, err := s.classes.Roster(ctx, classID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}

	ids := make([]string, 0, len(roster))
	for _, entry := range roster {
		ids = append(ids, entry.StudentID)
	}

	rows, err := s.schedules.ListByStudents(ctx, ids)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster schedules")
	}

	schedulesByStudent := make(map[string][]timegrid.ScheduleBlock, len(ids))
	for _, row := range rows {
		schedulesByStudent[row.StudentID] = append(schedulesByStudent[row.StudentID], blockFromRow(row))
	}
	return ids, schedulesByStudent, nil
}

func (s *TimetableService) densityCacheKey(scope dto.TimetableScope) string {
	grid := s.config.Grid
	target := "student:" + scope.StudentID
	if scope.StudentID == "" {
		target = "class:" + scope.ClassID
	}
	return fmt.Sprintf("timetable:density:%s:%d-%d-%d", target, grid.StartHour, grid.EndHour, grid.SlotMinutes)
}

func rowsToBlocks(rows []models.ScheduleRow) []timegrid.ScheduleBlock {
	blocks := make([]timegrid.ScheduleBlock, 0, len(rows))
	for _, row := range rows {
		blocks = append(blocks, blockFromRow(row))
	}
	return blocks
}
