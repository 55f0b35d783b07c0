package models

import "time"

// Student is a cohort member eligible for group allocation. Irregular
// students (failed/retaken courses) never receive a group name.
type Student struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	Level     int       `db:"level" json:"level"`
	Irregular bool      `db:"irregular" json:"irregular"`
	GroupName *string   `db:"group_name" json:"group_name,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter captures listing criteria for students.
type StudentFilter struct {
	Level     *int
	Irregular *bool
	GroupName string
	Page      int
	PageSize  int
}
