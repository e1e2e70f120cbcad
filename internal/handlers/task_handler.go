package handlers

import (
	"net/http"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"github.com/bloghive/backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// TaskHandler handles background bulk-task HTTP requests
type TaskHandler struct {
	taskService    *services.TaskService
	userRepository repositories.UserRepository
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService, userRepo repositories.UserRepository) *TaskHandler {
	return &TaskHandler{taskService: taskService, userRepository: userRepo}
}

// RegisterTaskRoutes registers bulk-task routes
func (h *TaskHandler) RegisterTaskRoutes(g *echo.Group) {
	g.POST("/broadcast", h.LaunchBroadcast)
	g.GET("/tasks", h.ListTasks)
	g.GET("/tasks/:id", h.GetTaskStatus)
}

// ListTasks returns the caller's bulk tasks, newest first
func (h *TaskHandler) ListTasks(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	tasks, err := h.taskService.ListTasks(user)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// LaunchBroadcast starts a background broadcast of one message to every other
// user, returning the task to poll for progress
func (h *TaskHandler) LaunchBroadcast(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.LaunchBroadcast(c.Request().Context(), user, req.Body)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusAccepted, task)
}

// GetTaskStatus returns the task row and its live progress; owner only
func (h *TaskHandler) GetTaskStatus(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	task, percent, err := h.taskService.GetTaskStatus(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"task": task, "progress": percent})
}
