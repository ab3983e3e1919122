package courses

import (
	"context"
	"errors"
	"net/http"
	"strconv"

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
	createCourse  = store.CreateCourse
	getCourseByID = store.GetCourseByID
	listCourses   = store.ListCourses
	updateCourse  = store.UpdateCourse
	deleteCourse  = store.DeleteCourse
	cachedCount   = store.CachedCount
	refreshCount  = store.RefreshCount
)

func scheduleCountRefresh(db database.DB, rdb cache.Cache, wp worker.Pool) {
	if wp == nil {
		return
	}
	wp.Submit(func() {
		refreshCount(context.Background(), db, rdb, store.CourseCountKey, store.CountCourses)
	})
}

// CreateCourseHandler persists a new course.
// @Summary     Create a course
// @Tags        courses
// @Accept      json
// @Produce     json
// @Param       body body api.CreateCourseRequest true "course payload"
// @Success     201 {object} model.Course
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /courses [post]
func CreateCourseHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateCourseRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		course, err := createCourse(c.Request().Context(), db, &model.Course{
			Title:       req.Title,
			Description: req.Description,
			TeacherID:   &req.TeacherID,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		scheduleCountRefresh(db, rdb, wp)
		return c.JSON(http.StatusCreated, course)
	}
}

// ListCoursesHandler returns one page of courses in the {meta, data} envelope.
// @Summary     List courses
// @Tags        courses
// @Produce     json
// @Param       page     query int    false "page number, default 1"
// @Param       limit    query int    false "page size, default 10"
// @Param       sort     query string false "asc or desc by creation time, default desc"
// @Param       populate query string false "comma-separated relations: teacher, student"
// @Success     200 {object} api.ListResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /courses [get]
func ListCoursesHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		opts := query.Parse(c.QueryParams(), query.CourseRelations)

		total, err := cachedCount(c.Request().Context(), db, rdb, store.CourseCountKey, store.CountCourses)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		items, err := listCourses(c.Request().Context(), db, opts)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, api.ListResponse{
			Meta: query.NewMeta(total, opts),
			Data: items,
		})
	}
}

// GetCourseHandler returns one course, optionally with relations.
// @Summary     Get a course by ID
// @Tags        courses
// @Produce     json
// @Param       id       path  int    true  "course ID"
// @Param       populate query string false "comma-separated relations: teacher, student"
// @Success     200 {object} model.Course
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Router      /courses/{id} [get]
func GetCourseHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid course ID"})
		}
		opts := query.Parse(c.QueryParams(), query.CourseRelations)
		course, err := getCourseByID(c.Request().Context(), db, id, opts)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "course not found"})
		}
		return c.JSON(http.StatusOK, course)
	}
}

// UpdateCourseHandler applies a partial update; omitted fields are preserved.
// @Summary     Update a course by ID
// @Tags        courses
// @Accept      json
// @Produce     json
// @Param       id   path int                     true "course ID"
// @Param       body body api.UpdateCourseRequest true "fields to change"
// @Success     200 {object} model.Course
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /courses/{id} [put]
func UpdateCourseHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid course ID"})
		}

		var req api.UpdateCourseRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		course, err := getCourseByID(c.Request().Context(), db, id, query.Options{})
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "course not found"})
		}

		if req.Title != nil {
			course.Title = *req.Title
		}
		if req.Description != nil {
			course.Description = *req.Description
		}
		if req.TeacherID != nil {
			course.TeacherID = req.TeacherID
		}

		if err := updateCourse(c.Request().Context(), db, course); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, course)
	}
}

// DeleteCourseHandler removes a course.
// @Summary     Delete a course by ID
// @Tags        courses
// @Produce     json
// @Param       id path int true "course ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /courses/{id} [delete]
func DeleteCourseHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid course ID"})
		}
		if err := deleteCourse(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "course not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		scheduleCountRefresh(db, rdb, wp)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "course deleted"})
	}
}
