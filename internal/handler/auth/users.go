package auth

import (
	"net/http"

	"school-api/internal/api"
	"school-api/internal/database"

	"github.com/labstack/echo/v4"
)

// ListUsersHandler returns every registered user's public fields.
// @Summary     List users
// @Description Returns id, name and email of every registered user
// @Tags        auth
// @Produce     json
// @Success     200 {array} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		resp := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, api.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email})
		}
		return c.JSON(http.StatusOK, resp)
	}
}
