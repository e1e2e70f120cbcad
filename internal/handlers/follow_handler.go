package handlers

import (
	"net/http"

	"github.com/bloghive/backend/internal/repositories"
	"github.com/bloghive/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow and block HTTP requests
type FollowHandler struct {
	socialService  *services.SocialService
	userRepository repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(socialService *services.SocialService, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{socialService: socialService, userRepository: userRepo}
}

// RegisterFollowRoutes registers follow and block routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.Follow)
	g.DELETE("/users/:id/follow", h.Unfollow)
	g.GET("/users/:id/followers", h.Followers)
	g.GET("/users/:id/followeds", h.Followeds)
	g.POST("/users/:id/block", h.Block)
	g.DELETE("/users/:id/block", h.Unblock)
	g.GET("/me/blocked", h.BlockedUsers)
}

// Follow creates a follow edge towards the target user
func (h *FollowHandler) Follow(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	targetID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.socialService.Follow(c.Request().Context(), user, targetID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Unfollow removes the follow edge towards the target user
func (h *FollowHandler) Unfollow(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	targetID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.socialService.Unfollow(c.Request().Context(), user, targetID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Followers lists the users following the target user
func (h *FollowHandler) Followers(c echo.Context) error {
	targetID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	followers, err := h.socialService.Followers(targetID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, followers)
}

// Followeds lists the users the target user follows
func (h *FollowHandler) Followeds(c echo.Context) error {
	targetID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	followeds, err := h.socialService.Followeds(targetID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, followeds)
}

// Block creates a block edge towards the target user
func (h *FollowHandler) Block(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	targetID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.socialService.Block(user, targetID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Unblock removes the block edge towards the target user
func (h *FollowHandler) Unblock(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	targetID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.socialService.Unblock(user, targetID); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// BlockedUsers lists the users the viewer blocks
func (h *FollowHandler) BlockedUsers(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	blocked, err := h.socialService.BlockedUsers(user.ID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, blocked)
}
