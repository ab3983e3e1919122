package model

import "time"

// Course belongs to at most one teacher; deleting the teacher keeps the
// course with a null TeacherId. Teacher and Students are nil unless the
// query asked for them.
type Course struct {
	ID          int       `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	TeacherID   *int      `db:"teacher_id" json:"TeacherId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	Teacher  *Teacher   `db:"-" json:"teacher,omitempty"`
	Students *[]Student `db:"-" json:"students,omitempty"`
}
