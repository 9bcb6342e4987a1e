package services

import (
	"errors"
	"fmt"

	"github.com/amjadodeh/small-circles-api/internal/models"
	"github.com/amjadodeh/small-circles-api/internal/repositories"
	"gorm.io/gorm"
)

// RequestRef addresses a friend request either by its surrogate ID or by the
// unordered pair of user IDs. Exactly one addressing mode is populated; both
// resolve to the same record when one exists.
type RequestRef struct {
	ID    uint
	UserA uint
	UserB uint
}

// ByID addresses a request by its surrogate ID.
func ByID(id uint) RequestRef { return RequestRef{ID: id} }

// ByPair addresses a request by the unordered pair of user IDs.
func ByPair(a, b uint) RequestRef { return RequestRef{UserA: a, UserB: b} }

func (r RequestRef) byPair() bool { return r.ID == 0 }

// FriendRequestService enforces the friend request lifecycle on top of the
// persistence layer: Pending is the only initial state, Accepted and
// Rejected are terminal, and accepting a request records the symmetric
// friendship on both users.
type FriendRequestService struct {
	requestRepo repositories.FriendRequestRepository
	userRepo    repositories.UserRepository
}

// NewFriendRequestService creates a new FriendRequestService
func NewFriendRequestService(requestRepo repositories.FriendRequestRepository, userRepo repositories.UserRepository) *FriendRequestService {
	return &FriendRequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// ListRequests returns all friend requests in no particular order.
func (s *FriendRequestService) ListRequests() ([]models.FriendRequest, error) {
	requests, err := s.requestRepo.ListRequests()
	if err != nil {
		return nil, storeErr(err)
	}
	return requests, nil
}

// CreateRequest opens a Pending request from one user toward another. A
// reciprocal Pending request counts as a duplicate rather than an implicit
// accept.
func (s *FriendRequestService) CreateRequest(fromID, toID uint) (*models.FriendRequest, error) {
	if fromID == toID {
		return nil, ErrSelfRequest
	}

	for _, id := range []uint{fromID, toID} {
		exists, err := s.userRepo.UserExists(id)
		if err != nil {
			return nil, storeErr(err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: user %d", ErrUserNotFound, id)
		}
	}

	if _, err := s.requestRepo.GetPendingRequestByPair(fromID, toID); err == nil {
		return nil, ErrDuplicatePending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err)
	}

	req := &models.FriendRequest{FromID: fromID, ToID: toID, Status: models.StatusPending}
	if err := s.requestRepo.CreateRequest(req); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// Lost a creation race; the partial unique index on the
			// pending pair is the authoritative backstop.
			return nil, ErrDuplicatePending
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, ErrUserNotFound
		default:
			return nil, storeErr(err)
		}
	}
	return req, nil
}

// GetRequest resolves a request through either addressing mode.
func (s *FriendRequestService) GetRequest(ref RequestRef) (*models.FriendRequest, error) {
	var (
		req *models.FriendRequest
		err error
	)
	if ref.byPair() {
		req, err = s.requestRepo.GetRequestByPair(ref.UserA, ref.UserB)
	} else {
		req, err = s.requestRepo.GetRequestByID(ref.ID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	return req, nil
}

// SetStatus resolves a Pending request to Accepted or Rejected. On accept
// the store applies the status change and the symmetric friendship update
// in a single transaction, so neither is visible without the other.
func (s *FriendRequestService) SetStatus(ref RequestRef, status string) (*models.FriendRequest, error) {
	if status != models.StatusAccepted && status != models.StatusRejected {
		return nil, fmt.Errorf("%w: invalid target status %q", ErrInvalidTransition, status)
	}

	req, err := s.GetRequest(ref)
	if err != nil {
		return nil, err
	}
	if req.Resolved() {
		return nil, ErrInvalidTransition
	}

	var rows int64
	if status == models.StatusAccepted {
		rows, err = s.requestRepo.AcceptRequest(req.ID)
	} else {
		rows, err = s.requestRepo.UpdateRequestStatus(req.ID, status)
	}
	if err != nil {
		return nil, storeErr(err)
	}
	if rows == 0 {
		// Another resolution landed between our read and write.
		return nil, ErrInvalidTransition
	}

	req.Status = status
	return req, nil
}

// Withdraw removes a request that is still Pending. Resolved requests are
// immutable history as far as the engine is concerned.
func (s *FriendRequestService) Withdraw(ref RequestRef) error {
	req, err := s.GetRequest(ref)
	if err != nil {
		return err
	}
	if req.Resolved() {
		return ErrInvalidTransition
	}

	rows, err := s.requestRepo.DeleteRequest(req.ID)
	if err != nil {
		return storeErr(err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
