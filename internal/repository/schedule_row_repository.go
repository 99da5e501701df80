package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hagwon-io/hagwon-api/internal/models"
)

const scheduleColumns = "id, group_id, student_id, student_name, day_of_week, start_time, end_time, kind, title, room, teacher_name, created_at, updated_at"

// ScheduleRowRepository provides persistence for weekly schedule rows.
type ScheduleRowRepository struct {
	db *sqlx.DB
}

// NewScheduleRowRepository creates a new schedule row repository.
func NewScheduleRowRepository(db *sqlx.DB) *ScheduleRowRepository {
	return &ScheduleRowRepository{db: db}
}

// List returns schedule rows matching the filter ordered by day and start time.
func (r *ScheduleRowRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleRow, error) {
	base := "FROM schedule_blocks WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.GroupID != "" {
		conditions = append(conditions, fmt.Sprintf("group_id = $%d", len(args)+1))
		args = append(args, filter.GroupID)
	}
	if filter.Room != "" {
		conditions = append(conditions, fmt.Sprintf("room = $%d", len(args)+1))
		args = append(args, filter.Room)
	}
	if filter.DayOfWeek != "" {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, filter.DayOfWeek)
	}
	if filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)+1))
		args = append(args, filter.Kind)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY day_of_week ASC, start_time ASC", scheduleColumns, base)
	var rows []models.ScheduleRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list schedule blocks: %w", err)
	}
	return rows, nil
}

// ListByStudents returns rows for any of the given students, keyed for roster sweeps.
func (r *ScheduleRowRepository) ListByStudents(ctx context.Context, studentIDs []string) ([]models.ScheduleRow, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM schedule_blocks WHERE student_id IN (?) ORDER BY day_of_week ASC, start_time ASC", scheduleColumns), studentIDs)
	if err != nil {
		return nil, fmt.Errorf("build roster schedule query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []models.ScheduleRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list schedule blocks by students: %w", err)
	}
	return rows, nil
}

// FindByID loads a schedule row by id.
func (r *ScheduleRowRepository) FindByID(ctx context.Context, id string) (*models.ScheduleRow, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_blocks WHERE id = $1 LIMIT 1", scheduleColumns)
	var row models.ScheduleRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find schedule block by id: %w", err)
	}
	return &row, nil
}

// Create stores a new schedule row.
func (r *ScheduleRowRepository) Create(ctx context.Context, row *models.ScheduleRow) error {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	const query = `INSERT INTO schedule_blocks (id, group_id, student_id, student_name, day_of_week, start_time, end_time, kind, title, room, teacher_name, created_at, updated_at) VALUES (:id, :group_id, :student_id, :student_name, :day_of_week, :start_time, :end_time, :kind, :title, :room, :teacher_name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("create schedule block: %w", err)
	}
	return nil
}

// Update modifies a schedule row.
func (r *ScheduleRowRepository) Update(ctx context.Context, row *models.ScheduleRow) error {
	row.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schedule_blocks SET group_id = :group_id, student_id = :student_id, student_name = :student_name, day_of_week = :day_of_week, start_time = :start_time, end_time = :end_time, kind = :kind, title = :title, room = :room, teacher_name = :teacher_name, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("update schedule block: %w", err)
	}
	return nil
}

// Delete removes a schedule row by id.
func (r *ScheduleRowRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_blocks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule block: %w", err)
	}
	return nil
}
