package models

import (
	"time"
)

// DefaultImage is the poster filename used when no upload was provided.
// Files named this are never written or deleted by the file service callers.
const DefaultImage = "default.png"

type Movie struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"uniqueIndex;not null" json:"title"`
	Synopsis          string    `gorm:"uniqueIndex;not null" json:"synopsis"`
	Trailer           string    `gorm:"uniqueIndex;not null" json:"trailer"`
	Studios           string    `gorm:"not null" json:"studios"`
	Year              string    `json:"year"`
	Duration          string    `json:"duration"`
	Genre             []string  `gorm:"serializer:json" json:"genre"`
	Image             string    `gorm:"default:'default.png'" json:"image"`
	AgeClassification int       `json:"ageClassification"`
	Rates             []Rate    `gorm:"foreignKey:MovieID" json:"rates"`
	CreatedAt         time.Time `json:"created_at"`
}

type MovieInput struct {
	Title             string   `form:"title" json:"title" binding:"required"`
	Synopsis          string   `form:"synopsis" json:"synopsis" binding:"required"`
	Trailer           string   `form:"trailer" json:"trailer" binding:"required"`
	Studios           string   `form:"studios" json:"studios" binding:"required"`
	Year              string   `form:"year" json:"year" binding:"required"`
	Duration          string   `form:"duration" json:"duration" binding:"required"`
	Genre             []string `form:"genre" json:"genre" binding:"required"`
	AgeClassification int      `form:"ageClassification" json:"ageClassification" binding:"required"`
}

// MovieUpdate overwrites every mutable field; registration-style presence
// checks do not apply on update.
type MovieUpdate struct {
	Title             string   `form:"title" json:"title"`
	Synopsis          string   `form:"synopsis" json:"synopsis"`
	Trailer           string   `form:"trailer" json:"trailer"`
	Studios           string   `form:"studios" json:"studios"`
	Year              string   `form:"year" json:"year"`
	Duration          string   `form:"duration" json:"duration"`
	Genre             []string `form:"genre" json:"genre"`
	AgeClassification int      `form:"ageClassification" json:"ageClassification"`
}
