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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.POST("/users", h.CreateUser)
	g.POST("/users/:id/login", h.Login)
	g.GET("/users/:id", h.GetUser)
	g.PATCH("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)
}

func parseUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return uint(id), nil
}

// ListUsers returns all users
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser registers a new user with a bcrypt-hashed password
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Hash:     string(hashedPassword),
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Username is already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/v1/users/%d", user.ID))
	return c.JSON(http.StatusCreated, user)
}

// Login checks a password against the stored hash. The body is a bare JSON
// boolean: true on a match, false (with 403) otherwise.
func (h *UserHandler) Login(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing 'password' in request body")
	}

	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User doesn't exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusForbidden, false)
	}
	return c.JSON(http.StatusOK, true)
}

// GetUser retrieves one user by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User doesn't exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update. Omitted fields stay unchanged; an
// empty friends string clears the friend list to NULL, which is why the
// body uses pointer fields rather than zero-value sniffing.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	hasUpdate := (req.Username != nil && *req.Username != "") ||
		(req.ProfilePicture != nil && *req.ProfilePicture != "") ||
		(req.Password != nil && *req.Password != "") ||
		req.Friends != nil
	if !hasUpdate {
		return echo.NewHTTPError(http.StatusBadRequest,
			"Request body must contain either 'username', 'profile_picture', 'friends', or 'password'")
	}

	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User doesn't exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Username != nil && *req.Username != "" {
		user.Username = *req.Username
	}
	if req.ProfilePicture != nil && *req.ProfilePicture != "" {
		user.ProfilePicture = *req.ProfilePicture
	}
	if req.Friends != nil {
		if *req.Friends == "" {
			user.Friends = nil
		} else {
			user.Friends = req.Friends
		}
	}
	if req.Password != nil && *req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
		}
		user.Hash = string(hashedPassword)
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Username is already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteUser deletes a user by ID
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User doesn't exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.userRepository.DeleteUser(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
