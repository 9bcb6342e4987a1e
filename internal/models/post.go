package models

// Post represents a social media post owned by a user
type Post struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Content string `json:"content" gorm:"type:text;not null"`
	Private bool   `json:"private" gorm:"not null;default:false"`
	UserID  uint   `json:"user_id" gorm:"not null;index"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required"`
	Private *bool  `json:"private"`
	UserID  uint   `json:"user_id" validate:"required"`
}

// UpdatePostRequest is the partial-update body for a post. Nil fields are
// left unchanged.
type UpdatePostRequest struct {
	Content *string `json:"content"`
	Private *bool   `json:"private"`
}
