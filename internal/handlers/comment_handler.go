package handlers

import (
	"net/http"

	"github.com/bloghive/backend/internal/models"
	"github.com/bloghive/backend/internal/repositories"
	"github.com/bloghive/backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to the comment tree
type CommentHandler struct {
	commentService *services.CommentService
	userRepository repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{commentService: commentService, userRepository: userRepo}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.PostComments)
	g.GET("/comments/:id", h.GetComment)
	g.GET("/comments/:id/ancestors", h.GetAncestors)
	g.GET("/comments/:id/descendants", h.GetDescendants)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/comments/:id/like", h.LikeComment)
	g.DELETE("/comments/:id/like", h.UnlikeComment)
}

// CreateComment adds a comment to a post, optionally as a reply
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), user, req)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// PostComments returns a page of a post's root comments with their subtrees
func (h *CommentHandler) PostComments(c echo.Context) error {
	page, perPage := pageParams(c)
	comments, total, err := h.commentService.PostComments(c.Request().Context(), c.Param("post_id"), (page-1)*perPage, perPage)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: comments, Total: total, Page: page, PerPage: perPage})
}

// GetComment retrieves a single comment
func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.commentService.GetComment(id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// GetAncestors returns the comment's parent chain, immediate parent first
func (h *CommentHandler) GetAncestors(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.commentService.GetComment(id)
	if err != nil {
		return serviceError(err)
	}
	ancestors, err := h.commentService.GetAncestors(comment)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, ancestors)
}

// GetDescendants returns the comment's subtree in timestamp order
func (h *CommentHandler) GetDescendants(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.commentService.GetComment(id)
	if err != nil {
		return serviceError(err)
	}
	descendants, err := h.commentService.GetDescendants(comment)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, descendants)
}

// UpdateComment edits a comment's body
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.UpdateComment(c.Request().Context(), user, id, req.Body)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment and its whole subtree
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.commentService.DeleteComment(c.Request().Context(), user, id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LikeComment records a like on a comment
func (h *CommentHandler) LikeComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.commentService.LikeComment(user, id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UnlikeComment removes a like from a comment
func (h *CommentHandler) UnlikeComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.commentService.UnlikeComment(user, id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
