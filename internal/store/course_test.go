package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"school-api/internal/database"
	"school-api/internal/model"
	"school-api/internal/query"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func courseScan(id int, title string, teacherID *int, now time.Time) func(dest ...any) error {
	return func(dest ...any) error {
		*dest[0].(*int) = id
		*dest[1].(*string) = title
		*dest[2].(*string) = "desc"
		*dest[3].(**int) = teacherID
		*dest[4].(*time.Time) = now
		return nil
	}
}

func teacherScan(id int, name string, now time.Time) func(dest ...any) error {
	return func(dest ...any) error {
		*dest[0].(*int) = id
		*dest[1].(*string) = name
		*dest[2].(*string) = "Mathematics"
		*dest[3].(*time.Time) = now
		return nil
	}
}

func TestCreateCourse(t *testing.T) {
	now := time.Now().UTC()
	teacherID := 4

	t.Run("ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, "Algebra", args[0])
				return &fakeRow{scanFn: func(dest ...any) error {
					*dest[0].(*int) = 3
					*dest[1].(*time.Time) = now
					return nil
				}}
			},
		}
		c, err := CreateCourse(context.Background(), db, &model.Course{Title: "Algebra", TeacherID: &teacherID})
		require.NoError(t, err)
		require.Equal(t, 3, c.ID)
	})

	t.Run("err", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanFn: func(...any) error { return errors.New("fk violation") }}
			},
		}
		_, err := CreateCourse(context.Background(), db, &model.Course{})
		require.Error(t, err)
	})
}

func TestGetCourseByID(t *testing.T) {
	now := time.Now().UTC()
	teacherID := 4

	t.Run("ok without relations", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				require.Equal(t, 3, args[0])
				return &fakeRow{scanFn: courseScan(3, "Algebra", &teacherID, now)}
			},
		}
		c, err := GetCourseByID(context.Background(), db, 3, query.Options{})
		require.NoError(t, err)
		require.Equal(t, "Algebra", c.Title)
		require.Nil(t, c.Teacher)
		require.Nil(t, c.Students)
	})

	t.Run("ok with teacher", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanFn: courseScan(3, "Algebra", &teacherID, now)}
			},
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				require.Contains(t, sql, "FROM teachers")
				require.Equal(t, []int{4}, args[0])
				return &fakeRows{scans: []func(dest ...any) error{teacherScan(4, "Bob", now)}}, nil
			},
		}
		c, err := GetCourseByID(context.Background(), db, 3, query.Options{Include: []query.Relation{query.RelationTeacher}})
		require.NoError(t, err)
		require.NotNil(t, c.Teacher)
		require.Equal(t, "Bob", c.Teacher.Name)
	})

	t.Run("ok with no enrolled students", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanFn: courseScan(3, "Algebra", nil, now)}
			},
			QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
				require.Contains(t, sql, "course_students")
				return &fakeRows{}, nil
			},
		}
		c, err := GetCourseByID(context.Background(), db, 3, query.Options{Include: []query.Relation{query.RelationStudent}})
		require.NoError(t, err)
		require.NotNil(t, c.Students)
		require.Empty(t, *c.Students)
	})

	t.Run("not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanFn: func(...any) error { return pgx.ErrNoRows }}
			},
		}
		_, err := GetCourseByID(context.Background(), db, 3, query.Options{})
		require.ErrorIs(t, err, pgx.ErrNoRows)
	})
}

func TestListCourses(t *testing.T) {
	now := time.Now().UTC()
	teacherID := 4

	t.Run("ok with relations", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				switch {
				case strings.Contains(sql, "course_students"):
					return &fakeRows{scans: []func(dest ...any) error{
						func(dest ...any) error {
							*dest[0].(*int) = 3
							*dest[1].(*int) = 9
							*dest[2].(*string) = "Ana"
							*dest[3].(*string) = "ana@x.com"
							*dest[4].(*time.Time) = now
							return nil
						},
					}}, nil
				case strings.Contains(sql, "FROM teachers"):
					return &fakeRows{scans: []func(dest ...any) error{teacherScan(4, "Bob", now)}}, nil
				default:
					require.Contains(t, sql, "ORDER BY created_at DESC")
					require.Equal(t, []any{10, 0}, args)
					return &fakeRows{scans: []func(dest ...any) error{
						courseScan(3, "Algebra", &teacherID, now),
						courseScan(5, "Geometry", nil, now),
					}}, nil
				}
			},
		}
		opts := query.Options{Page: 1, Limit: 10, Sort: query.Desc, Include: []query.Relation{query.RelationTeacher, query.RelationStudent}}
		courses, err := ListCourses(context.Background(), db, opts)
		require.NoError(t, err)
		require.Len(t, courses, 2)
		require.NotNil(t, courses[0].Teacher)
		require.Equal(t, "Bob", courses[0].Teacher.Name)
		require.Nil(t, courses[1].Teacher)
		require.Len(t, *courses[0].Students, 1)
		require.Empty(t, *courses[1].Students)
	})

	t.Run("ascending order and offset", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				require.Contains(t, sql, "ORDER BY created_at ASC")
				require.Equal(t, []any{5, 10}, args)
				return &fakeRows{}, nil
			},
		}
		courses, err := ListCourses(context.Background(), db, query.Options{Page: 3, Limit: 5, Sort: query.Asc})
		require.NoError(t, err)
		require.Empty(t, courses)
	})

	t.Run("query err", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return nil, errors.New("down")
			},
		}
		_, err := ListCourses(context.Background(), db, query.Options{Sort: query.Desc})
		require.Error(t, err)
	})
}

func TestCountCourses(t *testing.T) {
	db := &database.FakeDB{
		QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanFn: func(dest ...any) error {
				*dest[0].(*int) = 42
				return nil
			}}
		},
	}
	n, err := CountCourses(context.Background(), db)
	require.NoError(t, err)
	require.Equal(t, 42, n)
}

func TestUpdateCourse(t *testing.T) {
	teacherID := 4

	t.Run("ok", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				require.Equal(t, []any{"Algebra II", "desc", &teacherID, 3}, args)
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		c := &model.Course{ID: 3, Title: "Algebra II", Description: "desc", TeacherID: &teacherID}
		require.NoError(t, UpdateCourse(context.Background(), db, c))
	})

	t.Run("err", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("down")
			},
		}
		require.Error(t, UpdateCourse(context.Background(), db, &model.Course{}))
	})
}

func TestDeleteCourse(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				require.Equal(t, 3, args[0])
				return pgconn.NewCommandTag("DELETE 1"), nil
			},
		}
		require.NoError(t, DeleteCourse(context.Background(), db, 3))
	})

	t.Run("no rows", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 0"), nil
			},
		}
		err := DeleteCourse(context.Background(), db, 3)
		require.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("err", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("down")
			},
		}
		require.Error(t, DeleteCourse(context.Background(), db, 3))
	})
}
