package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hagwon-io/hagwon-api/internal/dto"
	"github.com/hagwon-io/hagwon-api/internal/models"
	appErrors "github.com/hagwon-io/hagwon-api/pkg/errors"
	"github.com/hagwon-io/hagwon-api/pkg/timegrid"
)

type scheduleRowRepository interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleRow, error)
	ListByStudents(ctx context.Context, studentIDs []string) ([]models.ScheduleRow, error)
	FindByID(ctx context.Context, id string) (*models.ScheduleRow, error)
	Create(ctx context.Context, row *models.ScheduleRow) error
	Update(ctx context.Context, row *models.ScheduleRow) error
	Delete(ctx context.Context, id string) error
}

// ScheduleService manages weekly schedule blocks and reconciles edited
// weeks against the persisted state.
type ScheduleService struct {
	repo      scheduleRowRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	maxApply  int
}

// NewScheduleService constructs a ScheduleService instance.
func NewScheduleService(repo scheduleRowRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, maxApply int) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if maxApply <= 0 {
		maxApply = 200
	}
	return &ScheduleService{repo: repo, cache: cache, validator: validate, logger: logger, maxApply: maxApply}
}

// blockFromRow converts a persisted row into an engine block.
func blockFromRow(row models.ScheduleRow) timegrid.ScheduleBlock {
	return timegrid.ScheduleBlock{
		ID:          row.ID,
		GroupID:     row.GroupID,
		DayOfWeek:   models.DayNameToIndex(row.DayOfWeek),
		StartTime:   row.StartTime,
		EndTime:     row.EndTime,
		Kind:        timegrid.BlockKind(row.Kind),
		Title:       row.Title,
		Room:        row.Room,
		TeacherName: row.TeacherName,
		StudentID:   row.StudentID,
		StudentName: row.StudentName,
	}
}

// rowFromBlock converts an engine block into its persisted shape.
func rowFromBlock(b timegrid.ScheduleBlock) models.ScheduleRow {
	id := b.ID
	if b.IsDraft() {
		id = ""
	}
	return models.ScheduleRow{
		ID:          id,
		GroupID:     b.GroupID,
		StudentID:   b.StudentID,
		StudentName: b.StudentName,
		DayOfWeek:   models.DayIndexToName(b.DayOfWeek),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Kind:        string(b.Kind),
		Title:       b.Title,
		Room:        b.Room,
		TeacherName: b.TeacherName,
	}
}

// ListWeek returns the persisted week for one student as engine blocks.
func (s *ScheduleService) ListWeek(ctx context.Context, studentID string) ([]timegrid.ScheduleBlock, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}
	rows, err := s.repo.List(ctx, models.ScheduleFilter{StudentID: studentID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	blocks := make([]timegrid.ScheduleBlock, 0, len(rows))
	for _, row := range rows {
		blocks = append(blocks, blockFromRow(row))
	}
	return blocks, nil
}

// Create validates and stores one schedule block.
func (s *ScheduleService) Create(ctx context.Context, req dto.CreateBlockRequest) (*timegrid.ScheduleBlock, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid block payload")
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = models.ScheduleKindClass
	}
	row := models.ScheduleRow{
		GroupID:     req.GroupID,
		StudentID:   req.StudentID,
		DayOfWeek:   models.DayIndexToName(req.DayOfWeek),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Kind:        kind,
		Title:       req.Title,
		Room:        req.Room,
		TeacherName: req.TeacherName,
	}
	if err := s.repo.Create(ctx, &row); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create block")
	}

	s.invalidateFor(ctx, row.StudentID)
	block := blockFromRow(row)
	return &block, nil
}

// Update applies partial changes to one schedule block.
func (s *ScheduleService) Update(ctx context.Context, id string, req dto.UpdateBlockRequest) (*timegrid.ScheduleBlock, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid block payload")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "block not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load block")
	}

	if req.DayOfWeek != nil {
		row.DayOfWeek = models.DayIndexToName(*req.DayOfWeek)
	}
	if req.StartTime != nil {
		row.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		row.EndTime = *req.EndTime
	}
	if req.Kind != nil {
		row.Kind = *req.Kind
	}
	if req.Title != nil {
		row.Title = *req.Title
	}
	if req.Room != nil {
		row.Room = *req.Room
	}
	if req.TeacherName != nil {
		row.TeacherName = *req.TeacherName
	}
	if err := validateWindow(row.StartTime, row.EndTime); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update block")
	}

	s.invalidateFor(ctx, row.StudentID)
	block := blockFromRow(*row)
	return &block, nil
}

// Delete removes one schedule block.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "block not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load block")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete block")
	}
	s.invalidateFor(ctx, row.StudentID)
	return nil
}

// ApplyWeek diffs the edited week against the persisted rows and issues
// the resulting creates, updates and deletes concurrently. When any
// write fails the authoritative week is re-read and returned alongside
// a partial apply error so the caller can re-synchronize.
func (s *ScheduleService) ApplyWeek(ctx context.Context, req dto.ApplyBlocksRequest) (*dto.ApplyBlocksResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid apply payload")
	}
	if len(req.Blocks) > s.maxApply {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("too many blocks, limit is %d", s.maxApply))
	}

	edited := make([]timegrid.ScheduleBlock, 0, len(req.Blocks))
	for _, payload := range req.Blocks {
		block := payload.Block()
		if block.StudentID == "" {
			block.StudentID = req.StudentID
		}
		if err := validateWindow(block.StartTime, block.EndTime); err != nil {
			return nil, err
		}
		edited = append(edited, block)
	}

	current, err := s.ListWeek(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	diff := timegrid.Diff(current, edited)
	applyErr := s.applyDiff(ctx, req.StudentID, diff)

	s.invalidateFor(ctx, req.StudentID)

	authoritative, listErr := s.ListWeek(ctx, req.StudentID)
	if listErr != nil {
		if applyErr != nil {
			return nil, applyErr
		}
		return nil, listErr
	}

	resp := &dto.ApplyBlocksResponse{
		Added:   len(diff.Added),
		Updated: len(diff.Updated),
		Deleted: len(diff.Deleted),
		Blocks:  make([]dto.BlockPayload, 0, len(authoritative)),
	}
	for _, block := range authoritative {
		resp.Blocks = append(resp.Blocks, dto.PayloadFromBlock(block))
	}
	if applyErr != nil {
		return resp, applyErr
	}
	return resp, nil
}

func (s *ScheduleService) applyDiff(ctx context.Context, studentID string, diff timegrid.BlockDiff) error {
	if diff.Empty() {
		return nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []error

	record := func(op, id string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, fmt.Errorf("%s %s: %w", op, id, err))
	}

	for _, block := range diff.Added {
		wg.Add(1)
		go func(b timegrid.ScheduleBlock) {
			defer wg.Done()
			row := rowFromBlock(b)
			if err := s.repo.Create(ctx, &row); err != nil {
				record("create", b.ID, err)
			}
		}(block)
	}
	for _, block := range diff.Updated {
		wg.Add(1)
		go func(b timegrid.ScheduleBlock) {
			defer wg.Done()
			row := rowFromBlock(b)
			if err := s.repo.Update(ctx, &row); err != nil {
				record("update", b.ID, err)
			}
		}(block)
	}
	for _, block := range diff.Deleted {
		wg.Add(1)
		go func(b timegrid.ScheduleBlock) {
			defer wg.Done()
			if err := s.repo.Delete(ctx, b.ID); err != nil {
				record("delete", b.ID, err)
			}
		}(block)
	}
	wg.Wait()

	if len(failures) == 0 {
		return nil
	}
	s.logger.Warn("partial schedule apply",
		zap.String("student_id", studentID),
		zap.Int("failed", len(failures)),
		zap.Errors("errors", failures))
	return appErrors.Clone(appErrors.ErrPartialApply, fmt.Sprintf("%d of %d operations failed", len(failures), len(diff.Added)+len(diff.Updated)+len(diff.Deleted)))
}

func (s *ScheduleService) invalidateFor(ctx context.Context, studentID string) {
	if s.cache == nil || studentID == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, "timetable:*"); err != nil {
		s.logger.Warn("timetable cache invalidation failed", zap.String("student_id", studentID), zap.Error(err))
	}
}

func validateWindow(start, end string) error {
	startMin, err := timegrid.ParseClock(start)
	if err != nil {
		return appErrors.Clone(appErrors.ErrInvalidTime, fmt.Sprintf("invalid start time %q", start))
	}
	endMin, err := timegrid.ParseClock(end)
	if err != nil {
		return appErrors.Clone(appErrors.ErrInvalidTime, fmt.Sprintf("invalid end time %q", end))
	}
	if endMin <= startMin {
		return appErrors.Clone(appErrors.ErrInvalidTime, "end time must be after start time")
	}
	return nil
}
