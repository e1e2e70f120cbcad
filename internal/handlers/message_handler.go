package handlers

import (
	"net/http"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"github.com/bloghive/backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles private messaging HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
	userRepository repositories.UserRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *services.MessageService, userRepo repositories.UserRepository) *MessageHandler {
	return &MessageHandler{messageService: messageService, userRepository: userRepo}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/:id", h.GetMessage)
	g.PUT("/messages/:id", h.UpdateMessage)
	g.DELETE("/messages/:id", h.DeleteMessage)
	g.GET("/conversations", h.Conversations)
	g.GET("/conversations/:user_id", h.History)
}

// SendMessage delivers a private message
func (h *MessageHandler) SendMessage(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.messageService.SendMessage(c.Request().Context(), user, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, message)
}

// GetMessage retrieves a single message; participants only
func (h *MessageHandler) GetMessage(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	message, err := h.messageService.GetMessage(user, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, message)
}

// UpdateMessage edits a sent message; sender only
func (h *MessageHandler) UpdateMessage(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.messageService.UpdateMessage(user, id, req.Body)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, message)
}

// DeleteMessage removes a sent message; sender only
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.messageService.DeleteMessage(c.Request().Context(), user, id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Conversations returns the viewer's inbox grouped by counterpart
func (h *MessageHandler) Conversations(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	conversations, err := h.messageService.Conversations(user)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, conversations)
}

// History returns the full conversation with one counterpart
func (h *MessageHandler) History(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	counterpartID, err := uintParam(c, "user_id")
	if err != nil {
		return err
	}
	messages, err := h.messageService.HistoryBetween(user.ID, counterpartID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, messages)
}
