package model

import "time"

// Teacher owns zero or more courses. Courses is nil unless the query asked
// for it; loaders set a non-nil empty slice so it serializes as [].
type Teacher struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Department string    `db:"department" json:"department"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`

	Courses *[]Course `db:"-" json:"courses,omitempty"`
}
