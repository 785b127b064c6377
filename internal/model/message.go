package model

import "time"

// Message is a generated message kept for the user's history. It is written
// once by generation and never changed.
type Message struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	Purpose          string    `gorm:"size:300;not null" json:"purpose"`
	ToneStyle        string    `gorm:"size:50;not null" json:"tone_style"`
	Content          string    `gorm:"type:text;not null" json:"content"`
	PositiveReaction float64   `gorm:"not null" json:"positive_reaction"`
	Warning          *string   `gorm:"size:200" json:"warning"`
	CreatedAt        time.Time `json:"created_at"`
}
