package handlers

import (
	"net/http"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"github.com/bloghive/backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts and post likes
type PostHandler struct {
	postService    *services.PostService
	userRepository repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{postService: postService, userRepository: userRepo}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)
	g.GET("/users/:id/posts", h.PostsByAuthor)
	g.GET("/feed", h.Feed)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.CreatePost(c.Request().Context(), user, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// ListPosts returns a page of all posts, newest first
func (h *PostHandler) ListPosts(c echo.Context) error {
	page, perPage := pageParams(c)
	posts, total, err := h.postService.ListPosts(c.Request().Context(), int64((page-1)*perPage), int64(perPage))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: posts, Total: total, Page: page, PerPage: perPage})
}

// GetPost retrieves a single post with its like count and counts the view
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"), true)
	if err != nil {
		return serviceError(err)
	}
	likes, err := h.postService.LikeCount(c.Request().Context(), post.ID.Hex())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post, "likes": likes})
}

// UpdatePost edits an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), user, c.Param("id"), req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost removes a post together with its comments and likes
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := h.postService.DeletePost(c.Request().Context(), user, c.Param("id")); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LikePost records a like on a post
func (h *PostHandler) LikePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := h.postService.LikePost(c.Request().Context(), user, c.Param("id")); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UnlikePost removes a like from a post
func (h *PostHandler) UnlikePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	if err := h.postService.UnlikePost(c.Request().Context(), user, c.Param("id")); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PostsByAuthor returns a page of one user's posts
func (h *PostHandler) PostsByAuthor(c echo.Context) error {
	authorID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	page, perPage := pageParams(c)
	posts, err := h.postService.PostsByAuthor(c.Request().Context(), authorID, int64((page-1)*perPage), int64(perPage))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// Feed returns a page of posts by users the viewer follows
func (h *PostHandler) Feed(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	page, perPage := pageParams(c)
	posts, total, err := h.postService.FollowedPosts(c.Request().Context(), user, int64((page-1)*perPage), int64(perPage))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: posts, Total: total, Page: page, PerPage: perPage})
}
