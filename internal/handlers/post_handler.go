package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/amjadodeh/small-circles-api/internal/models"
	"github.com/amjadodeh/small-circles-api/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PATCH("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	return uint(id), nil
}

// ListPosts returns all posts
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postRepository.GetPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	exists, err := h.userRepository.UserExists(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, "User doesn't exist")
	}

	post := &models.Post{
		Content: req.Content,
		UserID:  req.UserID,
	}
	if req.Private != nil {
		post.Private = *req.Private
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/v1/posts/%d", post.ID))
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves one post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post doesn't exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost applies a partial update to a post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if (req.Content == nil || *req.Content == "") && req.Private == nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			"Request body must contain either 'content' or 'private'")
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post doesn't exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Content != nil && *req.Content != "" {
		post.Content = *req.Content
	}
	if req.Private != nil {
		post.Private = *req.Private
	}

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePost deletes a post by ID
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post doesn't exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRepository.DeletePost(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
