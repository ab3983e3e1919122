package store

import (
	"context"
	"fmt"

	"school-api/internal/database"
	"school-api/internal/model"
	"school-api/internal/query"

	"github.com/jackc/pgx/v5"
)

func CreateStudent(ctx context.Context, db database.DB, s *model.Student) (*model.Student, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO students (name, email)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		s.Name,
		s.Email,
	)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateStudent: %w", err)
	}
	return s, nil
}

func GetStudentByID(ctx context.Context, db database.DB, id int, opts query.Options) (*model.Student, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, created_at
		 FROM students WHERE id = $1`,
		id,
	)
	s := &model.Student{}
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("GetStudentByID: %w", err)
	}
	if opts.Has(query.RelationCourses) {
		if err := loadStudentCourses(ctx, db, []*model.Student{s}); err != nil {
			return nil, fmt.Errorf("GetStudentByID: %w", err)
		}
	}
	return s, nil
}

// ListStudents returns one page sorted by creation time, with courses
// attached when the options ask for them.
func ListStudents(ctx context.Context, db database.DB, opts query.Options) ([]model.Student, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, email, created_at
		 FROM students ORDER BY created_at `+orderDirection(opts.Sort)+`
		 LIMIT $1 OFFSET $2`,
		opts.Limit,
		opts.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("ListStudents: %w", err)
	}
	defer rows.Close()

	students := make([]model.Student, 0, opts.Limit)
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListStudents: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStudents: %w", err)
	}

	if opts.Has(query.RelationCourses) && len(students) > 0 {
		refs := make([]*model.Student, len(students))
		for i := range students {
			refs[i] = &students[i]
		}
		if err := loadStudentCourses(ctx, db, refs); err != nil {
			return nil, fmt.Errorf("ListStudents: %w", err)
		}
	}
	return students, nil
}

func CountStudents(ctx context.Context, db database.DB) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountStudents: %w", err)
	}
	return n, nil
}

func UpdateStudent(ctx context.Context, db database.DB, s *model.Student) error {
	_, err := db.Exec(ctx,
		`UPDATE students SET name = $1, email = $2
		 WHERE id = $3`,
		s.Name,
		s.Email,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateStudent: %w", err)
	}
	return nil
}

// DeleteStudent removes a student; pgx.ErrNoRows is reported when no row
// matched so handlers can answer 404.
func DeleteStudent(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM students WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("DeleteStudent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteStudent: %w", pgx.ErrNoRows)
	}
	return nil
}

// loadStudentCourses attaches each student's enrolled courses in one query.
// Students get a non-nil empty slice so the serialized relation is [] rather
// than absent.
func loadStudentCourses(ctx context.Context, db database.DB, students []*model.Student) error {
	byID := make(map[int]*model.Student, len(students))
	ids := make([]int, 0, len(students))
	for _, s := range students {
		courses := make([]model.Course, 0)
		s.Courses = &courses
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	rows, err := db.Query(ctx,
		`SELECT cs.student_id, c.id, c.title, c.description, c.teacher_id, c.created_at
		 FROM course_students cs
		 JOIN courses c ON c.id = cs.course_id
		 WHERE cs.student_id = ANY($1)
		 ORDER BY c.created_at ASC`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("loadStudentCourses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var studentID int
		var c model.Course
		if err := rows.Scan(&studentID, &c.ID, &c.Title, &c.Description, &c.TeacherID, &c.CreatedAt); err != nil {
			return fmt.Errorf("loadStudentCourses: %w", err)
		}
		if s, ok := byID[studentID]; ok {
			*s.Courses = append(*s.Courses, c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("loadStudentCourses: %w", err)
	}
	return nil
}
