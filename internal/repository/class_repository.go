package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hagwon-io/hagwon-api/internal/models"
)

// ClassRepository provides database access for class series and rosters.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository creates a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// FindByID loads a class by id.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	const query = `SELECT id, name, subject, teacher_name, room, max_students, created_at, updated_at FROM classes WHERE id = $1 LIMIT 1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class by id: %w", err)
	}
	return &class, nil
}

// Roster returns the students enrolled in a class.
func (r *ClassRepository) Roster(ctx context.Context, classID string) ([]models.ClassRosterEntry, error) {
	const query = `SELECT cr.class_id, cr.student_id, s.full_name AS student_name FROM class_rosters cr JOIN students s ON s.id = cr.student_id WHERE cr.class_id = $1 ORDER BY s.full_name ASC`
	var entries []models.ClassRosterEntry
	if err := r.db.SelectContext(ctx, &entries, query, classID); err != nil {
		return nil, fmt.Errorf("list class roster: %w", err)
	}
	return entries, nil
}
