package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagwon-io/hagwon-api/internal/dto"
	"github.com/hagwon-io/hagwon-api/internal/models"
	appErrors "github.com/hagwon-io/hagwon-api/pkg/errors"
	"github.com/hagwon-io/hagwon-api/pkg/timegrid"
)

type fakeScheduleRepo struct {
	mu         sync.Mutex
	rows       map[string]models.ScheduleRow
	failDelete bool
}

func newFakeScheduleRepo(rows ...models.ScheduleRow) *fakeScheduleRepo {
	repo := &fakeScheduleRepo{rows: make(map[string]models.ScheduleRow)}
	for _, row := range rows {
		repo.rows[row.ID] = row
	}
	return repo
}

func (f *fakeScheduleRepo) List(_ context.Context, filter models.ScheduleFilter) ([]models.ScheduleRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ScheduleRow
	for _, row := range f.rows {
		if filter.StudentID != "" && row.StudentID != filter.StudentID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListByStudents(_ context.Context, studentIDs []string) ([]models.ScheduleRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		wanted[id] = true
	}
	var out []models.ScheduleRow
	for _, row := range f.rows {
		if wanted[row.StudentID] {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) FindByID(_ context.Context, id string) (*models.ScheduleRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (f *fakeScheduleRepo) Create(_ context.Context, row *models.ScheduleRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	f.rows[row.ID] = *row
	return nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, row *models.ScheduleRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[row.ID]; !ok {
		return sql.ErrNoRows
	}
	f.rows[row.ID] = *row
	return nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("delete failed")
	}
	delete(f.rows, id)
	return nil
}

func seedRow(id, studentID, day, start, end, title string) models.ScheduleRow {
	return models.ScheduleRow{
		ID:        id,
		StudentID: studentID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Kind:      models.ScheduleKindClass,
		Title:     title,
	}
}

func TestApplyWeekReconciles(t *testing.T) {
	repo := newFakeScheduleRepo(
		seedRow("a", "s1", "MONDAY", "10:00", "11:30", "Math"),
		seedRow("b", "s1", "TUESDAY", "14:00", "15:00", "English"),
	)
	svc := NewScheduleService(repo, nil, nil, nil, 0)

	resp, err := svc.ApplyWeek(context.Background(), dto.ApplyBlocksRequest{
		StudentID: "s1",
		Blocks: []dto.BlockPayload{
			{ID: "a", DayOfWeek: 0, StartTime: "11:00", EndTime: "12:30", Kind: "class", Title: "Math"},
			{ID: timegrid.NewDraftID(), Draft: true, DayOfWeek: 2, StartTime: "16:00", EndTime: "17:00", Kind: "clinic", Title: "Review"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Added)
	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, 1, resp.Deleted)
	assert.Len(t, resp.Blocks, 2)

	stored, err := repo.FindByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "11:00", stored.StartTime)
	_, err = repo.FindByID(context.Background(), "b")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestApplyWeekIdempotent(t *testing.T) {
	repo := newFakeScheduleRepo(
		seedRow("a", "s1", "MONDAY", "10:00", "11:30", "Math"),
	)
	svc := NewScheduleService(repo, nil, nil, nil, 0)

	same := dto.ApplyBlocksRequest{
		StudentID: "s1",
		Blocks: []dto.BlockPayload{
			{ID: "a", DayOfWeek: 0, StartTime: "10:00", EndTime: "11:30", Kind: "class", Title: "Math", StudentID: "s1"},
		},
	}
	resp, err := svc.ApplyWeek(context.Background(), same)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Added+resp.Updated+resp.Deleted)
}

func TestApplyWeekPartialFailure(t *testing.T) {
	repo := newFakeScheduleRepo(
		seedRow("a", "s1", "MONDAY", "10:00", "11:30", "Math"),
	)
	repo.failDelete = true
	svc := NewScheduleService(repo, nil, nil, nil, 0)

	resp, err := svc.ApplyWeek(context.Background(), dto.ApplyBlocksRequest{StudentID: "s1"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPartialApply.Code, appErr.Code)
	require.NotNil(t, resp)
	assert.Len(t, resp.Blocks, 1, "authoritative state still holds the row the delete could not remove")
}

func TestApplyWeekRejectsOversizedPayload(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, nil, nil, nil, 1)

	_, err := svc.ApplyWeek(context.Background(), dto.ApplyBlocksRequest{
		StudentID: "s1",
		Blocks: []dto.BlockPayload{
			{ID: "a", StartTime: "10:00", EndTime: "11:00"},
			{ID: "b", StartTime: "11:00", EndTime: "12:00"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateRejectsInvalidWindow(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, nil, nil, nil, 0)

	_, err := svc.Create(context.Background(), dto.CreateBlockRequest{
		StudentID: "s1", DayOfWeek: 0, StartTime: "12:00", EndTime: "11:00", Title: "Math",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTime.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), dto.CreateBlockRequest{
		StudentID: "s1", DayOfWeek: 0, StartTime: "9:5", EndTime: "11:00", Title: "Math",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTime.Code, appErrors.FromError(err).Code)
}

func TestUpdateMergesPartialFields(t *testing.T) {
	repo := newFakeScheduleRepo(
		seedRow("a", "s1", "MONDAY", "10:00", "11:30", "Math"),
	)
	svc := NewScheduleService(repo, nil, nil, nil, 0)

	room := "302"
	block, err := svc.Update(context.Background(), "a", dto.UpdateBlockRequest{Room: &room})
	require.NoError(t, err)
	assert.Equal(t, "302", block.Room)
	assert.Equal(t, "10:00", block.StartTime)
}

func TestDeleteMissingBlock(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo, nil, nil, nil, 0)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
