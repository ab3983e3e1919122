package store

import (
	"context"
	"fmt"

	"school-api/internal/database"
	"school-api/internal/model"
	"school-api/internal/query"

	"github.com/jackc/pgx/v5"
)

func CreateTeacher(ctx context.Context, db database.DB, t *model.Teacher) (*model.Teacher, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO teachers (name, department)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		t.Name,
		t.Department,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateTeacher: %w", err)
	}
	return t, nil
}

func GetTeacherByID(ctx context.Context, db database.DB, id int, opts query.Options) (*model.Teacher, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, department, created_at
		 FROM teachers WHERE id = $1`,
		id,
	)
	t := &model.Teacher{}
	if err := row.Scan(&t.ID, &t.Name, &t.Department, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("GetTeacherByID: %w", err)
	}
	if opts.Has(query.RelationCourses) {
		if err := loadTeacherCourses(ctx, db, []*model.Teacher{t}); err != nil {
			return nil, fmt.Errorf("GetTeacherByID: %w", err)
		}
	}
	return t, nil
}

// ListTeachers returns one page sorted by creation time, with courses
// attached when the options ask for them.
func ListTeachers(ctx context.Context, db database.DB, opts query.Options) ([]model.Teacher, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, department, created_at
		 FROM teachers ORDER BY created_at `+orderDirection(opts.Sort)+`
		 LIMIT $1 OFFSET $2`,
		opts.Limit,
		opts.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("ListTeachers: %w", err)
	}
	defer rows.Close()

	teachers := make([]model.Teacher, 0, opts.Limit)
	for rows.Next() {
		var t model.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Department, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListTeachers: %w", err)
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTeachers: %w", err)
	}

	if opts.Has(query.RelationCourses) && len(teachers) > 0 {
		refs := make([]*model.Teacher, len(teachers))
		for i := range teachers {
			refs[i] = &teachers[i]
		}
		if err := loadTeacherCourses(ctx, db, refs); err != nil {
			return nil, fmt.Errorf("ListTeachers: %w", err)
		}
	}
	return teachers, nil
}

func CountTeachers(ctx context.Context, db database.DB) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountTeachers: %w", err)
	}
	return n, nil
}

func UpdateTeacher(ctx context.Context, db database.DB, t *model.Teacher) error {
	_, err := db.Exec(ctx,
		`UPDATE teachers SET name = $1, department = $2
		 WHERE id = $3`,
		t.Name,
		t.Department,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateTeacher: %w", err)
	}
	return nil
}

// DeleteTeacher removes a teacher; pgx.ErrNoRows is reported when no row
// matched so handlers can answer 404.
func DeleteTeacher(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM teachers WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("DeleteTeacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteTeacher: %w", pgx.ErrNoRows)
	}
	return nil
}

// loadTeacherCourses attaches each teacher's owned courses in one query.
// Teachers get a non-nil empty slice so the serialized relation is [] rather
// than absent.
func loadTeacherCourses(ctx context.Context, db database.DB, teachers []*model.Teacher) error {
	byID := make(map[int]*model.Teacher, len(teachers))
	ids := make([]int, 0, len(teachers))
	for _, t := range teachers {
		courses := make([]model.Course, 0)
		t.Courses = &courses
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	rows, err := db.Query(ctx,
		`SELECT id, title, description, teacher_id, created_at
		 FROM courses WHERE teacher_id = ANY($1)
		 ORDER BY created_at ASC`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("loadTeacherCourses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.CreatedAt); err != nil {
			return fmt.Errorf("loadTeacherCourses: %w", err)
		}
		if c.TeacherID == nil {
			continue
		}
		if t, ok := byID[*c.TeacherID]; ok {
			*t.Courses = append(*t.Courses, c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("loadTeacherCourses: %w", err)
	}
	return nil
}
