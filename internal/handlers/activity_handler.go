package handlers

import (
	"net/http"

	"github.com/bloghive/backend/internal/repositories"
	"github.com/bloghive/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ActivityHandler handles the unread-activity read endpoints. Viewing a page
// here is what moves the corresponding watermark, so every route operates on
// the authenticated user only.
type ActivityHandler struct {
	activityService *services.ActivityService
	userRepository  repositories.UserRepository
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *services.ActivityService, userRepo repositories.UserRepository) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, userRepository: userRepo}
}

// RegisterActivityRoutes registers unread-activity routes
func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/me/received-comments", h.ReceivedComments)
	g.GET("/me/received-messages", h.ReceivedMessages)
	g.GET("/me/posts-likes", h.PostsLikes)
	g.GET("/me/followers", h.Followers)
	g.GET("/me/followed-posts", h.FollowedPosts)
}

// ReceivedComments returns a page of comments addressed to the viewer
func (h *ActivityHandler) ReceivedComments(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	page, perPage := pageParams(c)
	comments, total, err := h.activityService.ReadReceivedComments(c.Request().Context(), user, page, perPage)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: comments, Total: total, Page: page, PerPage: perPage})
}

// ReceivedMessages returns a page of the viewer's received messages
func (h *ActivityHandler) ReceivedMessages(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	page, perPage := pageParams(c)
	messages, total, err := h.activityService.ReadReceivedMessages(c.Request().Context(), user, page, perPage)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: messages, Total: total, Page: page, PerPage: perPage})
}

// PostsLikes returns a page of like edges on the viewer's posts
func (h *ActivityHandler) PostsLikes(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	page, perPage := pageParams(c)
	likes, total, err := h.activityService.ReadPostsLikes(c.Request().Context(), user, page, perPage)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: likes, Total: total, Page: page, PerPage: perPage})
}

// Followers returns a page of the viewer's followers
func (h *ActivityHandler) Followers(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	page, perPage := pageParams(c)
	followers, total, err := h.activityService.ReadFollowers(c.Request().Context(), user, page, perPage)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: followers, Total: total, Page: page, PerPage: perPage})
}

// FollowedPosts returns a page of posts by users the viewer follows
func (h *ActivityHandler) FollowedPosts(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	page, perPage := pageParams(c)
	posts, total, err := h.activityService.ReadFollowedPosts(c.Request().Context(), user, page, perPage)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: posts, Total: total, Page: page, PerPage: perPage})
}
