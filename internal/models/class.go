package models

import "time"

// Class is a recurring class series (the owning group of schedule
// rows that share a group id).
type Class struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Subject     string    `db:"subject" json:"subject"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	Room        string    `db:"room" json:"room"`
	MaxStudents int       `db:"max_students" json:"max_students"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ClassRosterEntry links a student to a class.
type ClassRosterEntry struct {
	ClassID     string `db:"class_id" json:"class_id"`
	StudentID   string `db:"student_id" json:"student_id"`
	StudentName string `db:"student_name" json:"student_name"`
}
