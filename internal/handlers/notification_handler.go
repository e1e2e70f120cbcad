package handlers

import (
	"net/http"
	"strconv"

	"github.com/bloghive/backend/internal/repositories"
	"github.com/bloghive/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification polling HTTP requests
type NotificationHandler struct {
	notificationService *services.NotificationService
	userRepository      repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, userRepository: userRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.ListNotifications)
	g.GET("/notifications/:id", h.GetNotification)
}

// ListNotifications returns the viewer's notifications newer than the since
// query parameter, ascending. Clients poll with the highest timestamp seen.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	since := 0.0
	if raw := c.QueryParam("since"); raw != "" {
		since, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid since timestamp")
		}
	}

	notifications, err := h.notificationService.ListSince(user.ID, since)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// GetNotification retrieves a single notification; owner only
func (h *NotificationHandler) GetNotification(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	notification, err := h.notificationService.GetForUser(user, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, notification)
}
