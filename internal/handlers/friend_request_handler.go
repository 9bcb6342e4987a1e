package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/amjadodeh/small-circles-api/internal/models"
	"github.com/amjadodeh/small-circles-api/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FriendRequestHandler handles HTTP requests related to friend requests
type FriendRequestHandler struct {
	friendRequestService *services.FriendRequestService
}

// NewFriendRequestHandler creates a new FriendRequestHandler
func NewFriendRequestHandler(friendRequestService *services.FriendRequestService) *FriendRequestHandler {
	return &FriendRequestHandler{friendRequestService: friendRequestService}
}

// RegisterFriendRequestRoutes registers friend-request-related routes
func (h *FriendRequestHandler) RegisterFriendRequestRoutes(g *echo.Group) {
	g.GET("/friend-requests", h.ListFriendRequests)
	g.POST("/friend-requests", h.CreateFriendRequest)
	g.GET("/friend-requests/:ref", h.GetFriendRequest)
	g.PATCH("/friend-requests/:ref", h.UpdateFriendRequestStatus)
	g.DELETE("/friend-requests/:ref", h.DeleteFriendRequest)
}

// parseRequestRef accepts either a surrogate ID ("7") or a hyphenated user
// pair ("2-4"); the pair matches regardless of which user initiated.
func parseRequestRef(param string) (services.RequestRef, error) {
	if from, to, ok := strings.Cut(param, "-"); ok {
		a, err := strconv.ParseUint(from, 10, 32)
		if err != nil {
			return services.RequestRef{}, err
		}
		b, err := strconv.ParseUint(to, 10, 32)
		if err != nil {
			return services.RequestRef{}, err
		}
		return services.ByPair(uint(a), uint(b)), nil
	}
	id, err := strconv.ParseUint(param, 10, 32)
	if err != nil {
		return services.RequestRef{}, err
	}
	return services.ByID(uint(id)), nil
}

// friendRequestError maps engine error kinds to HTTP responses
func friendRequestError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Friend request doesn't exist")
	case errors.Is(err, services.ErrSelfRequest):
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot send a friend request to yourself")
	case errors.Is(err, services.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Referenced user doesn't exist")
	case errors.Is(err, services.ErrDuplicatePending):
		return echo.NewHTTPError(http.StatusConflict, "A pending friend request already exists between these users")
	case errors.Is(err, services.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, "Friend request is already resolved")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// ListFriendRequests returns all friend requests
func (h *FriendRequestHandler) ListFriendRequests(c echo.Context) error {
	requests, err := h.friendRequestService.ListRequests()
	if err != nil {
		return friendRequestError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

// CreateFriendRequest handles sending a friend request
func (h *FriendRequestHandler) CreateFriendRequest(c echo.Context) error {
	var req models.CreateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	friendRequest, err := h.friendRequestService.CreateRequest(req.From, req.To)
	if err != nil {
		return friendRequestError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/v1/friend-requests/%d", friendRequest.ID))
	return c.JSON(http.StatusCreated, friendRequest)
}

// GetFriendRequest retrieves one friend request by ID or user pair
func (h *FriendRequestHandler) GetFriendRequest(c echo.Context) error {
	ref, err := parseRequestRef(c.Param("ref"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid friend request identifier")
	}

	friendRequest, err := h.friendRequestService.GetRequest(ref)
	if err != nil {
		return friendRequestError(err)
	}
	return c.JSON(http.StatusOK, friendRequest)
}

// UpdateFriendRequestStatus accepts or rejects a pending friend request
func (h *FriendRequestHandler) UpdateFriendRequestStatus(c echo.Context) error {
	ref, err := parseRequestRef(c.Param("ref"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid friend request identifier")
	}

	var req models.UpdateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Request body must contain 'status' of Accepted or Rejected")
	}

	friendRequest, err := h.friendRequestService.SetStatus(ref, req.Status)
	if err != nil {
		return friendRequestError(err)
	}
	return c.JSON(http.StatusOK, friendRequest)
}

// DeleteFriendRequest withdraws a pending friend request
func (h *FriendRequestHandler) DeleteFriendRequest(c echo.Context) error {
	ref, err := parseRequestRef(c.Param("ref"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid friend request identifier")
	}

	if err := h.friendRequestService.Withdraw(ref); err != nil {
		return friendRequestError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
