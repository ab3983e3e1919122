package auth

import (
	"net/http"
	"strings"

	"school-api/internal/api"
	"school-api/internal/database"
	"school-api/internal/model"
	"school-api/internal/service"
	"school-api/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	getUserByEmail   = store.GetUserByEmail
	createUser       = store.CreateUser
	listUsers        = store.ListUsers
)

// RegisterHandler creates a new account.
// @Summary     Register a new user
// @Description Stores a new user with a bcrypt password hash; the email must not be taken
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.RegisterRequest true "registration payload"
// @Success     201 {object} api.RegisterResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := getUserByEmail(c.Request().Context(), db, req.Email); err == nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "email already registered"})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, api.RegisterResponse{
			Message: "user registered",
			User:    api.UserIdentity{ID: user.ID, Email: user.Email},
		})
	}
}
