package teachers

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
	createTeacher  = store.CreateTeacher
	getTeacherByID = store.GetTeacherByID
	listTeachers   = store.ListTeachers
	updateTeacher  = store.UpdateTeacher
	deleteTeacher  = store.DeleteTeacher
	cachedCount    = store.CachedCount
	refreshCount   = store.RefreshCount
)

func scheduleCountRefresh(db database.DB, rdb cache.Cache, wp worker.Pool) {
	if wp == nil {
		return
	}
	wp.Submit(func() {
		refreshCount(context.Background(), db, rdb, store.TeacherCountKey, store.CountTeachers)
	})
}

// CreateTeacherHandler persists a new teacher.
// @Summary     Create a teacher
// @Tags        teachers
// @Accept      json
// @Produce     json
// @Param       body body api.CreateTeacherRequest true "teacher payload"
// @Success     201 {object} model.Teacher
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /teachers [post]
func CreateTeacherHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateTeacherRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		teacher, err := createTeacher(c.Request().Context(), db, &model.Teacher{
			Name:       req.Name,
			Department: req.Department,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		scheduleCountRefresh(db, rdb, wp)
		return c.JSON(http.StatusCreated, teacher)
	}
}

// ListTeachersHandler returns one page of teachers in the {meta, data} envelope.
// @Summary     List teachers
// @Tags        teachers
// @Produce     json
// @Param       page     query int    false "page number, default 1"
// @Param       limit    query int    false "page size, default 10"
// @Param       sort     query string false "asc or desc by creation time, default desc"
// @Param       populate query string false "comma-separated relations: courses"
// @Success     200 {object} api.ListResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /teachers [get]
func ListTeachersHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		opts := query.Parse(c.QueryParams(), query.TeacherRelations)

		total, err := cachedCount(c.Request().Context(), db, rdb, store.TeacherCountKey, store.CountTeachers)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		items, err := listTeachers(c.Request().Context(), db, opts)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, api.ListResponse{
			Meta: query.NewMeta(total, opts),
			Data: items,
		})
	}
}

// GetTeacherHandler returns one teacher, optionally with owned courses.
// @Summary     Get a teacher by ID
// @Tags        teachers
// @Produce     json
// @Param       id       path  int    true  "teacher ID"
// @Param       populate query string false "comma-separated relations: courses"
// @Success     200 {object} model.Teacher
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Router      /teachers/{id} [get]
func GetTeacherHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid teacher ID"})
		}
		opts := query.Parse(c.QueryParams(), query.TeacherRelations)
		teacher, err := getTeacherByID(c.Request().Context(), db, id, opts)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "teacher not found"})
		}
		return c.JSON(http.StatusOK, teacher)
	}
}

// UpdateTeacherHandler applies a partial update; omitted fields are preserved.
// @Summary     Update a teacher by ID
// @Tags        teachers
// @Accept      json
// @Produce     json
// @Param       id   path int                      true "teacher ID"
// @Param       body body api.UpdateTeacherRequest true "fields to change"
// @Success     200 {object} model.Teacher
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /teachers/{id} [put]
func UpdateTeacherHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid teacher ID"})
		}

		var req api.UpdateTeacherRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		teacher, err := getTeacherByID(c.Request().Context(), db, id, query.Options{})
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "teacher not found"})
		}

		if req.Name != nil {
			teacher.Name = *req.Name
		}
		if req.Department != nil {
			teacher.Department = *req.Department
		}

		if err := updateTeacher(c.Request().Context(), db, teacher); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, teacher)
	}
}

// DeleteTeacherHandler removes a teacher.
// @Summary     Delete a teacher by ID
// @Tags        teachers
// @Produce     json
// @Param       id path int true "teacher ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /teachers/{id} [delete]
func DeleteTeacherHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid teacher ID"})
		}
		if err := deleteTeacher(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "teacher not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		scheduleCountRefresh(db, rdb, wp)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "teacher deleted"})
	}
}
