package models

import "time"

// Student is an enrolled academy student.
type Student struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	School    string    `db:"school" json:"school"`
	Grade     int       `db:"grade" json:"grade"`
	Phone     string    `db:"phone" json:"phone"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter describes query params for listing students.
type StudentFilter struct {
	Search   string
	Grade    int
	Active   *bool
	ClassID  string
	Page     int
	PageSize int
}
