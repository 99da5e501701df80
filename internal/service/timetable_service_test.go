package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagwon-io/hagwon-api/internal/dto"
	"github.com/hagwon-io/hagwon-api/internal/models"
	appErrors "github.com/hagwon-io/hagwon-api/pkg/errors"
	"github.com/hagwon-io/hagwon-api/pkg/timegrid"
)

type fakeClassRepo struct {
	classes map[string]models.Class
	rosters map[string][]models.ClassRosterEntry
}

func (f *fakeClassRepo) FindByID(_ context.Context, id string) (*models.Class, error) {
	class, ok := f.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &class, nil
}

func (f *fakeClassRepo) Roster(_ context.Context, classID string) ([]models.ClassRosterEntry, error) {
	return f.rosters[classID], nil
}

type fakeStudentRepo struct {
	students map[string]models.Student
}

func (f *fakeStudentRepo) FindByID(_ context.Context, id string) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &student, nil
}

type memoryCacheRepo struct {
	mu       sync.Mutex
	values   map[string][]byte
	getCalls int
	setCalls int
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{values: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string][]byte)
	return nil
}

func newTimetableFixture(rows ...models.ScheduleRow) (*TimetableService, *fakeScheduleRepo, *memoryCacheRepo) {
	schedules := newFakeScheduleRepo(rows...)
	classes := &fakeClassRepo{
		classes: map[string]models.Class{"c1": {ID: "c1", Name: "Math A"}},
		rosters: map[string][]models.ClassRosterEntry{"c1": {
			{ClassID: "c1", StudentID: "s1", StudentName: "Kim"},
			{ClassID: "c1", StudentID: "s2", StudentName: "Lee"},
			{ClassID: "c1", StudentID: "s3", StudentName: "Choi"},
		}},
	}
	students := &fakeStudentRepo{students: map[string]models.Student{
		"s1": {ID: "s1", FullName: "Kim"},
		"s2": {ID: "s2", FullName: "Lee"},
		"s3": {ID: "s3", FullName: "Choi"},
	}}
	cacheRepo := newMemoryCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewTimetableService(schedules, classes, students, cache, nil, nil, TimetableConfig{
		Grid:    timegrid.DefaultConfig(),
		Suggest: timegrid.SuggestOptions{},
	})
	return svc, schedules, cacheRepo
}

func TestLayoutFitsViewport(t *testing.T) {
	svc, _, _ := newTimetableFixture(
		seedRow("a", "s1", "MONDAY", "10:00", "11:30", "Math"),
	)

	resp, err := svc.Layout(context.Background(), dto.LayoutQuery{
		TimetableScope: dto.TimetableScope{StudentID: "s1"},
		Width:          500,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.VisibleColumns)
	assert.InDelta(t, 100, resp.ColumnWidth, 0.001)
	require.Len(t, resp.Model.Blocks, 1)
	assert.Equal(t, "a", resp.Model.Blocks[0].Block.ID)
}

func TestLayoutRequiresScope(t *testing.T) {
	svc, _, _ := newTimetableFixture()

	_, err := svc.Layout(context.Background(), dto.LayoutQuery{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDensityCachesResult(t *testing.T) {
	svc, _, cacheRepo := newTimetableFixture(
		seedRow("a", "s1", "MONDAY", "10:00", "11:30", "Math"),
	)
	query := dto.DensityQuery{TimetableScope: dto.TimetableScope{StudentID: "s1"}}

	first, err := svc.Density(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Total, "90 minutes over 30-minute slots")
	assert.Equal(t, 1, cacheRepo.setCalls)

	second, err := svc.Density(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, first.Density, second.Density)
	assert.Equal(t, 1, cacheRepo.setCalls, "second read served from cache")
}

func TestAvailabilityRejectsBadDay(t *testing.T) {
	svc, _, _ := newTimetableFixture()

	_, err := svc.Availability(context.Background(), "s1", 9)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSuggestScoresRoster(t *testing.T) {
	svc, _, _ := newTimetableFixture(
		seedRow("a", "s1", "MONDAY", "10:00", "11:30", "Math"),
	)

	resp, err := svc.Suggest(context.Background(), dto.SuggestRequest{
		ClassID: "c1", DayOfWeek: 0, StartTime: "11:00", EndTime: "12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 67, resp.Suggestion.Score)
	assert.ElementsMatch(t, []string{"s2", "s3"}, resp.Suggestion.AvailableStudentIDs)
	assert.Equal(t, []string{"s1"}, resp.Suggestion.ConflictingStudentIDs)
	assert.Equal(t, "fair", resp.Band)
}

func TestSuggestUnknownClass(t *testing.T) {
	svc, _, _ := newTimetableFixture()

	_, err := svc.Suggest(context.Background(), dto.SuggestRequest{
		ClassID: "missing", DayOfWeek: 0, StartTime: "11:00", EndTime: "12:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAutoSuggestFindsWindow(t *testing.T) {
	svc, _, _ := newTimetableFixture(
		seedRow("a", "s1", "MONDAY", "09:00", "10:00", "Math"),
		seedRow("b", "s2", "MONDAY", "09:00", "10:00", "English"),
	)

	resp, err := svc.AutoSuggest(context.Background(), dto.AutoSuggestRequest{ClassID: "c1", DayOfWeek: 0})
	require.NoError(t, err)
	require.True(t, resp.Found)
	assert.Equal(t, "10:00", resp.Suggestion.StartTime)
	assert.Equal(t, "11:30", resp.Suggestion.EndTime)
	assert.Equal(t, 100, resp.Suggestion.Score)
}

func TestAutoSuggestNoWindow(t *testing.T) {
	svc, _, _ := newTimetableFixture(
		seedRow("a", "s1", "MONDAY", "09:00", "22:00", "Camp"),
	)

	resp, err := svc.AutoSuggest(context.Background(), dto.AutoSuggestRequest{ClassID: "c1", DayOfWeek: 0})
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Suggestion)
}

func TestExportCSV(t *testing.T) {
	svc, _, _ := newTimetableFixture(
		seedRow("a", "s1", "MONDAY", "10:00", "11:30", "Math"),
	)

	data, contentType, filename, err := svc.Export(context.Background(), dto.ExportQuery{
		TimetableScope: dto.TimetableScope{StudentID: "s1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "timetable.csv", filename)
	assert.True(t, strings.HasPrefix(string(data), "day,start,end,title,kind,room,teacher"))
}
