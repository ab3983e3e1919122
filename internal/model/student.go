package model

import "time"

// Student enrolls in zero or more courses via the association table.
// Courses is nil unless the query asked for it; loaders set a non-nil
// empty slice so it serializes as [].
type Student struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Courses *[]Course `db:"-" json:"courses,omitempty"`
}
