package models

// Friend request lifecycle statuses. Accepted and Rejected are terminal.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// FriendRequest represents a directed friend request between two users
type FriendRequest struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	FromID uint   `json:"from" gorm:"column:user_id_from;not null;index;check:chk_friend_requests_distinct_users,user_id_from <> user_id_to"`
	ToID   uint   `json:"to" gorm:"column:user_id_to;not null;index"`
	Status string `json:"status" gorm:"column:request_status;type:varchar(20);not null;default:'Pending'"`

	FromUser User `json:"-" gorm:"foreignKey:FromID;constraint:OnDelete:CASCADE"`
	ToUser   User `json:"-" gorm:"foreignKey:ToID;constraint:OnDelete:CASCADE"`
}

// Resolved reports whether the request has reached a terminal status.
func (fr *FriendRequest) Resolved() bool {
	return fr.Status != StatusPending
}

// CreateFriendRequest defines the request body for sending a friend request
type CreateFriendRequest struct {
	From uint `json:"from" validate:"required"`
	To   uint `json:"to" validate:"required"`
}

// UpdateFriendRequest defines the request body for accepting/rejecting a friend request
type UpdateFriendRequest struct {
	Status string `json:"status" validate:"required,oneof=Accepted Rejected"`
}
