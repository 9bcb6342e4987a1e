package repositories

import (
	"github.com/amjadodeh/small-circles-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRequestRepository defines the interface for friend request persistence
type FriendRequestRepository interface {
	ListRequests() ([]models.FriendRequest, error)
	CreateRequest(req *models.FriendRequest) error
	GetRequestByID(id uint) (*models.FriendRequest, error)
	GetRequestByPair(userA, userB uint) (*models.FriendRequest, error)
	GetPendingRequestByPair(userA, userB uint) (*models.FriendRequest, error)
	UpdateRequestStatus(id uint, status string) (int64, error)
	AcceptRequest(id uint) (int64, error)
	DeleteRequest(id uint) (int64, error)
}

// PostgresFriendRequestRepository implements FriendRequestRepository for PostgreSQL
type PostgresFriendRequestRepository struct {
	db *gorm.DB
}

// NewPostgresFriendRequestRepository creates a new PostgresFriendRequestRepository
func NewPostgresFriendRequestRepository(db *gorm.DB) *PostgresFriendRequestRepository {
	return &PostgresFriendRequestRepository{db: db}
}

// ListRequests returns every friend request. Callers must not rely on any
// particular ordering.
func (r *PostgresFriendRequestRepository) ListRequests() ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := r.db.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// CreateRequest inserts a new Pending friend request. A unique-index
// violation on the pending pair or a missing user surfaces as a translated
// gorm error for the service layer to classify.
func (r *PostgresFriendRequestRepository) CreateRequest(req *models.FriendRequest) error {
	req.Status = models.StatusPending
	return r.db.Create(req).Error
}

// GetRequestByID retrieves a friend request by its surrogate ID
func (r *PostgresFriendRequestRepository) GetRequestByID(id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// GetRequestByPair matches the unordered pair {userA, userB} in either
// direction. A Pending record wins over resolved ones for the same pair,
// newest record otherwise.
func (r *PostgresFriendRequestRepository) GetRequestByPair(userA, userB uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.
		Where("(user_id_from = ? AND user_id_to = ?) OR (user_id_from = ? AND user_id_to = ?)",
			userA, userB, userB, userA).
		Order("request_status = 'Pending' DESC").
		Order("id DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetPendingRequestByPair returns the outstanding request between two users,
// if any, regardless of which of them initiated it.
func (r *PostgresFriendRequestRepository) GetPendingRequestByPair(userA, userB uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.
		Where("request_status = ?", models.StatusPending).
		Where("(user_id_from = ? AND user_id_to = ?) OR (user_id_from = ? AND user_id_to = ?)",
			userA, userB, userB, userA).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateRequestStatus moves a Pending request to the given status and
// reports the rows affected. The status guard keeps resolved requests
// immutable even when two resolutions race.
func (r *PostgresFriendRequestRepository) UpdateRequestStatus(id uint, status string) (int64, error) {
	res := r.db.Model(&models.FriendRequest{}).
		Where("id = ? AND request_status = ?", id, models.StatusPending).
		Update("request_status", status)
	return res.RowsAffected, res.Error
}

// AcceptRequest marks a Pending request Accepted and records the symmetric
// friendship on both user rows. All three writes commit or roll back
// together; a request is never Accepted without the friendship persisted.
// Returns 0 rows when the request was no longer Pending.
func (r *PostgresFriendRequestRepository) AcceptRequest(id uint) (int64, error) {
	var rows int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var req models.FriendRequest
		if err := tx.First(&req, id).Error; err != nil {
			return err
		}

		res := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND request_status = ?", id, models.StatusPending).
			Update("request_status", models.StatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		if rows == 0 {
			return nil
		}

		for _, pair := range [][2]uint{{req.FromID, req.ToID}, {req.ToID, req.FromID}} {
			var user models.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, pair[0]).Error; err != nil {
				return err
			}
			user.AddFriend(pair[1])
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}

// DeleteRequest removes a friend request; 0 rows means it did not exist
func (r *PostgresFriendRequestRepository) DeleteRequest(id uint) (int64, error) {
	res := r.db.Delete(&models.FriendRequest{}, id)
	return res.RowsAffected, res.Error
}
