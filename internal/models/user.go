package models

import (
	"sort"
	"strconv"
	"strings"
)

// User represents an account. Friends holds the serialized friend set: a
// comma-separated list of user IDs in ascending order, NULL when the user
// has no friends.
type User struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	Username       string  `json:"username" gorm:"uniqueIndex;not null"`
	Hash           string  `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	ProfilePicture string  `json:"profile_picture"`
	Friends        *string `json:"friends"`
}

// FriendIDs parses the serialized friend list. Malformed entries are skipped.
func (u *User) FriendIDs() []uint {
	if u.Friends == nil || *u.Friends == "" {
		return nil
	}
	parts := strings.Split(*u.Friends, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(n))
	}
	return ids
}

// AddFriend inserts friendID into the friend set. The serialized list stays
// sorted and duplicate-free, so repeated calls are a no-op.
func (u *User) AddFriend(friendID uint) {
	ids := u.FriendIDs()
	for _, id := range ids {
		if id == friendID {
			return
		}
	}
	ids = append(ids, friendID)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	joined := strings.Join(parts, ",")
	u.Friends = &joined
}

// CreateUserRequest defines the request body for registering a user
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginRequest defines the request body for the login check
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is the partial-update body for a user. A nil field is
// left unchanged. Friends set to the empty string clears the friend list to
// NULL; that is distinct from omitting the field entirely.
type UpdateUserRequest struct {
	Username       *string `json:"username"`
	ProfilePicture *string `json:"profile_picture"`
	Friends        *string `json:"friends"`
	Password       *string `json:"password"`
}
