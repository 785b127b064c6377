// Package model defines the persisted entities and the closed value sets
// they use. Every struct here is a gorm model; JSON tags match the wire
// format the mobile client expects (snake_case).
package model

import "time"

// User is a registered account. Email and username are globally unique;
// the password hash never leaves the server.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username       string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	HashedPassword string    `gorm:"not null" json:"-"`
	FullName       *string   `gorm:"size:255" json:"full_name"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
