package handlers

import (
	"net/http/httptest"
	"strings"

	"github.com/amjadodeh/small-circles-api/internal/models"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// In-memory repository stand-ins shared by the handler tests.

type stubUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	r := &stubUserRepo{users: map[uint]*models.User{}, nextID: 1}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

func (r *stubUserRepo) CreateUser(user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetUsers() ([]models.User, error) {
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *stubUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) DeleteUser(id uint) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) UserExists(id uint) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

type stubFriendRequestRepo struct {
	requests map[uint]*models.FriendRequest
	nextID   uint
	users    *stubUserRepo
}

func newStubFriendRequestRepo(users *stubUserRepo) *stubFriendRequestRepo {
	return &stubFriendRequestRepo{
		requests: map[uint]*models.FriendRequest{},
		nextID:   1,
		users:    users,
	}
}

func (r *stubFriendRequestRepo) ListRequests() ([]models.FriendRequest, error) {
	requests := make([]models.FriendRequest, 0, len(r.requests))
	for _, req := range r.requests {
		requests = append(requests, *req)
	}
	return requests, nil
}

func (r *stubFriendRequestRepo) CreateRequest(req *models.FriendRequest) error {
	for _, existing := range r.requests {
		if existing.Status != models.StatusPending {
			continue
		}
		if (existing.FromID == req.FromID && existing.ToID == req.ToID) ||
			(existing.FromID == req.ToID && existing.ToID == req.FromID) {
			return gorm.ErrDuplicatedKey
		}
	}
	req.ID = r.nextID
	r.nextID++
	req.Status = models.StatusPending
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *stubFriendRequestRepo) GetRequestByID(id uint) (*models.FriendRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *stubFriendRequestRepo) matchPair(req *models.FriendRequest, userA, userB uint) bool {
	return (req.FromID == userA && req.ToID == userB) || (req.FromID == userB && req.ToID == userA)
}

func (r *stubFriendRequestRepo) GetRequestByPair(userA, userB uint) (*models.FriendRequest, error) {
	var best *models.FriendRequest
	for _, req := range r.requests {
		if !r.matchPair(req, userA, userB) {
			continue
		}
		if best == nil || (req.Status == models.StatusPending && best.Status != models.StatusPending) {
			best = req
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *best
	return &cp, nil
}

func (r *stubFriendRequestRepo) GetPendingRequestByPair(userA, userB uint) (*models.FriendRequest, error) {
	for _, req := range r.requests {
		if req.Status == models.StatusPending && r.matchPair(req, userA, userB) {
			cp := *req
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubFriendRequestRepo) UpdateRequestStatus(id uint, status string) (int64, error) {
	req, ok := r.requests[id]
	if !ok || req.Status != models.StatusPending {
		return 0, nil
	}
	req.Status = status
	return 1, nil
}

func (r *stubFriendRequestRepo) AcceptRequest(id uint) (int64, error) {
	req, ok := r.requests[id]
	if !ok || req.Status != models.StatusPending {
		return 0, nil
	}
	req.Status = models.StatusAccepted
	if from, ok := r.users.users[req.FromID]; ok {
		from.AddFriend(req.ToID)
	}
	if to, ok := r.users.users[req.ToID]; ok {
		to.AddFriend(req.FromID)
	}
	return 1, nil
}

func (r *stubFriendRequestRepo) DeleteRequest(id uint) (int64, error) {
	if _, ok := r.requests[id]; !ok {
		return 0, nil
	}
	delete(r.requests, id)
	return 1, nil
}

// newTestContext builds an echo context around an httptest recorder.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
