package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagwon-io/hagwon-api/internal/models"
)

func newScheduleMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func scheduleRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "group_id", "student_id", "student_name", "day_of_week", "start_time", "end_time", "kind", "title", "room", "teacher_name", "created_at", "updated_at"}).
		AddRow("b1", "g1", "s1", "Kim", "MONDAY", "10:00", "11:30", "class", "Math", "201", "Park", now, now)
}

func TestScheduleRowRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRowRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, group_id, student_id, student_name, day_of_week, start_time, end_time, kind, title, room, teacher_name, created_at, updated_at FROM schedule_blocks WHERE 1=1 AND student_id = $1 ORDER BY day_of_week ASC, start_time ASC")).
		WithArgs("s1").
		WillReturnRows(scheduleRows())

	rows, err := repo.List(context.Background(), models.ScheduleFilter{StudentID: "s1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Math", rows[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRowRepositoryListByStudentsEmpty(t *testing.T) {
	db, _, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRowRepository(db)

	rows, err := repo.ListByStudents(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestScheduleRowRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRowRepository(db)

	mock.ExpectExec("INSERT INTO schedule_blocks").
		WillReturnResult(sqlmock.NewResult(1, 1))

	row := &models.ScheduleRow{StudentID: "s1", DayOfWeek: "MONDAY", StartTime: "10:00", EndTime: "11:30", Kind: models.ScheduleKindClass, Title: "Math"}
	require.NoError(t, repo.Create(context.Background(), row))
	assert.NotEmpty(t, row.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRowRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newScheduleMock(t)
	defer cleanup()
	repo := NewScheduleRowRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_blocks WHERE id = $1")).
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "b1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
