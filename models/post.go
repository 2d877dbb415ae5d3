package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a board post. AuthorUsername is denormalized at creation
// time; usernames are immutable so it never drifts. AuthorID is not a foreign
// key: deleting a user leaves their posts behind.
type Post struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	AuthorID       string    `gorm:"size:36;index;not null" json:"authorId"`
	AuthorUsername string    `gorm:"size:64;not null" json:"authorUsername"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

// BeforeCreate assigns the store identifier and creation timestamp.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return nil
}
