package models

import (
	"time"
)

// Rate is always created in the context of one movie and one authenticated
// user. Author and movie are weak references: deleting either side leaves
// the rate in place.
type Rate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Stars     float64   `json:"stars"`
	Comment   string    `json:"comment"`
	AuthorID  uint      `json:"-"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	MovieID   uint      `json:"movie_id"`
	CreatedAt time.Time `json:"created_at"`
}

type RateInput struct {
	Stars   float64 `json:"stars" binding:"required,min=1,max=5"`
	Comment string  `json:"comment" binding:"required"`
}
