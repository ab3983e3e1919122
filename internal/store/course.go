package store

import (
	"context"
	"fmt"

	"school-api/internal/database"
	"school-api/internal/model"
	"school-api/internal/query"

	"github.com/jackc/pgx/v5"
)

func CreateCourse(ctx context.Context, db database.DB, c *model.Course) (*model.Course, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO courses (title, description, teacher_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		c.Title,
		c.Description,
		c.TeacherID,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateCourse: %w", err)
	}
	return c, nil
}

func GetCourseByID(ctx context.Context, db database.DB, id int, opts query.Options) (*model.Course, error) {
	row := db.QueryRow(ctx,
		`SELECT id, title, description, teacher_id, created_at
		 FROM courses WHERE id = $1`,
		id,
	)
	c := &model.Course{}
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("GetCourseByID: %w", err)
	}
	if err := loadCourseRelations(ctx, db, []*model.Course{c}, opts); err != nil {
		return nil, fmt.Errorf("GetCourseByID: %w", err)
	}
	return c, nil
}

// ListCourses returns one page sorted by creation time, with the teacher and
// student relations attached when the options ask for them.
func ListCourses(ctx context.Context, db database.DB, opts query.Options) ([]model.Course, error) {
	rows, err := db.Query(ctx,
		`SELECT id, title, description, teacher_id, created_at
		 FROM courses ORDER BY created_at `+orderDirection(opts.Sort)+`
		 LIMIT $1 OFFSET $2`,
		opts.Limit,
		opts.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("ListCourses: %w", err)
	}
	defer rows.Close()

	courses := make([]model.Course, 0, opts.Limit)
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.TeacherID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListCourses: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCourses: %w", err)
	}

	if len(courses) > 0 {
		refs := make([]*model.Course, len(courses))
		for i := range courses {
			refs[i] = &courses[i]
		}
		if err := loadCourseRelations(ctx, db, refs, opts); err != nil {
			return nil, fmt.Errorf("ListCourses: %w", err)
		}
	}
	return courses, nil
}

func CountCourses(ctx context.Context, db database.DB) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountCourses: %w", err)
	}
	return n, nil
}

func UpdateCourse(ctx context.Context, db database.DB, c *model.Course) error {
	_, err := db.Exec(ctx,
		`UPDATE courses SET title = $1, description = $2, teacher_id = $3
		 WHERE id = $4`,
		c.Title,
		c.Description,
		c.TeacherID,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateCourse: %w", err)
	}
	return nil
}

// DeleteCourse removes a course; pgx.ErrNoRows is reported when no row
// matched so handlers can answer 404.
func DeleteCourse(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM courses WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("DeleteCourse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteCourse: %w", pgx.ErrNoRows)
	}
	return nil
}

func loadCourseRelations(ctx context.Context, db database.DB, courses []*model.Course, opts query.Options) error {
	if len(courses) == 0 {
		return nil
	}
	if opts.Has(query.RelationTeacher) {
		if err := loadCourseTeachers(ctx, db, courses); err != nil {
			return err
		}
	}
	if opts.Has(query.RelationStudent) {
		if err := loadCourseStudents(ctx, db, courses); err != nil {
			return err
		}
	}
	return nil
}

// loadCourseTeachers attaches the owning teacher of each course in one query.
func loadCourseTeachers(ctx context.Context, db database.DB, courses []*model.Course) error {
	ids := make([]int, 0, len(courses))
	for _, c := range courses {
		if c.TeacherID != nil {
			ids = append(ids, *c.TeacherID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := db.Query(ctx,
		`SELECT id, name, department, created_at
		 FROM teachers WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("loadCourseTeachers: %w", err)
	}
	defer rows.Close()

	byID := make(map[int]*model.Teacher)
	for rows.Next() {
		var t model.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Department, &t.CreatedAt); err != nil {
			return fmt.Errorf("loadCourseTeachers: %w", err)
		}
		teacher := t
		byID[t.ID] = &teacher
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("loadCourseTeachers: %w", err)
	}

	for _, c := range courses {
		if c.TeacherID != nil {
			c.Teacher = byID[*c.TeacherID]
		}
	}
	return nil
}

// loadCourseStudents attaches each course's enrolled students in one query.
// Courses get a non-nil empty slice so the serialized relation is [] rather
// than absent.
func loadCourseStudents(ctx context.Context, db database.DB, courses []*model.Course) error {
	byID := make(map[int]*model.Course, len(courses))
	ids := make([]int, 0, len(courses))
	for _, c := range courses {
		students := make([]model.Student, 0)
		c.Students = &students
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	rows, err := db.Query(ctx,
		`SELECT cs.course_id, s.id, s.name, s.email, s.created_at
		 FROM course_students cs
		 JOIN students s ON s.id = cs.student_id
		 WHERE cs.course_id = ANY($1)
		 ORDER BY s.created_at ASC`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("loadCourseStudents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var courseID int
		var s model.Student
		if err := rows.Scan(&courseID, &s.ID, &s.Name, &s.Email, &s.CreatedAt); err != nil {
			return fmt.Errorf("loadCourseStudents: %w", err)
		}
		if c, ok := byID[courseID]; ok {
			*c.Students = append(*c.Students, s)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("loadCourseStudents: %w", err)
	}
	return nil
}
