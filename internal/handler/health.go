package handler

import (
	"errors"
	"net/http"

	"school-api/internal/api"
	"school-api/internal/cache"
	"school-api/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler reports whether the database and cache are reachable.
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /healthz [get]
func HealthHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if rdb != nil {
			if err := rdb.Get(c.Request().Context(), "healthz").Err(); err != nil && !errors.Is(err, redis.Nil) {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
	}
}
