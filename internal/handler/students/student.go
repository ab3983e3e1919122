package students

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"school-api/internal/api"
	"school-api/internal/cache"
	"school-api/internal/database"
	"school-api/internal/model"
	"school-api/internal/query"
	"school-api/internal/store"
	"school-api/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var (
	createStudent  = store.CreateStudent
	getStudentByID = store.GetStudentByID
	listStudents   = store.ListStudents
	updateStudent  = store.UpdateStudent
	deleteStudent  = store.DeleteStudent
	cachedCount    = store.CachedCount
	refreshCount   = store.RefreshCount
)

func scheduleCountRefresh(db database.DB, rdb cache.Cache, wp worker.Pool) {
	if wp == nil {
		return
	}
	wp.Submit(func() {
		refreshCount(context.Background(), db, rdb, store.StudentCountKey, store.CountStudents)
	})
}

// CreateStudentHandler persists a new student.
// @Summary     Create a student
// @Tags        students
// @Accept      json
// @Produce     json
// @Param       body body api.CreateStudentRequest true "student payload"
// @Success     201 {object} model.Student
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /students [post]
func CreateStudentHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateStudentRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		student, err := createStudent(c.Request().Context(), db, &model.Student{
			Name:  req.Name,
			Email: strings.ToLower(req.Email),
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		scheduleCountRefresh(db, rdb, wp)
		return c.JSON(http.StatusCreated, student)
	}
}

// ListStudentsHandler returns one page of students in the {meta, data} envelope.
// @Summary     List students
// @Tags        students
// @Produce     json
// @Param       page     query int    false "page number, default 1"
// @Param       limit    query int    false "page size, default 10"
// @Param       sort     query string false "asc or desc by creation time, default desc"
// @Param       populate query string false "comma-separated relations: courses"
// @Success     200 {object} api.ListResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /students [get]
func ListStudentsHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		opts := query.Parse(c.QueryParams(), query.StudentRelations)

		total, err := cachedCount(c.Request().Context(), db, rdb, store.StudentCountKey, store.CountStudents)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		items, err := listStudents(c.Request().Context(), db, opts)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, api.ListResponse{
			Meta: query.NewMeta(total, opts),
			Data: items,
		})
	}
}

// GetStudentHandler returns one student, optionally with enrolled courses.
// @Summary     Get a student by ID
// @Tags        students
// @Produce     json
// @Param       id       path  int    true  "student ID"
// @Param       populate query string false "comma-separated relations: courses"
// @Success     200 {object} model.Student
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Router      /students/{id} [get]
func GetStudentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid student ID"})
		}
		opts := query.Parse(c.QueryParams(), query.StudentRelations)
		student, err := getStudentByID(c.Request().Context(), db, id, opts)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "student not found"})
		}
		return c.JSON(http.StatusOK, student)
	}
}

// UpdateStudentHandler applies a partial update; omitted fields are preserved.
// @Summary     Update a student by ID
// @Tags        students
// @Accept      json
// @Produce     json
// @Param       id   path int                      true "student ID"
// @Param       body body api.UpdateStudentRequest true "fields to change"
// @Success     200 {object} model.Student
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /students/{id} [put]
func UpdateStudentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid student ID"})
		}

		var req api.UpdateStudentRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		student, err := getStudentByID(c.Request().Context(), db, id, query.Options{})
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "student not found"})
		}

		if req.Name != nil {
			student.Name = *req.Name
		}
		if req.Email != nil {
			student.Email = strings.ToLower(*req.Email)
		}

		if err := updateStudent(c.Request().Context(), db, student); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, student)
	}
}

// DeleteStudentHandler removes a student.
// @Summary     Delete a student by ID
// @Tags        students
// @Produce     json
// @Param       id path int true "student ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /students/{id} [delete]
func DeleteStudentHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid student ID"})
		}
		if err := deleteStudent(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "student not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		scheduleCountRefresh(db, rdb, wp)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "student deleted"})
	}
}
