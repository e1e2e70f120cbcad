package handlers

import (
	"net/http"
	"strconv"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"github.com/bloghive/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// currentUser loads the authenticated user from the JWT claims the auth
// middleware stored in the context.
func currentUser(c echo.Context, users repositories.UserRepository) (*models.User, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication claims")
	}
	user, err := users.GetUserByID(claims.UserID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found in database")
	}
	return user, nil
}

// serviceError maps service error kinds to HTTP statuses.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// pageParams reads page/per_page query parameters with sane bounds.
func pageParams(c echo.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.QueryParam("per_page"))
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

// uintParam parses a path parameter as an unsigned integer id.
func uintParam(c echo.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(value), nil
}

// pagedResponse is the standard list envelope.
type pagedResponse struct {
	Items   any   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}
