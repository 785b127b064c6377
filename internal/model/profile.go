package model

import (
	"time"

	"gorm.io/datatypes"
)

// ProfileStep is the onboarding-progress marker kept on a UserProfile.
// Zero means the user has not started.
type ProfileStep int

const (
	StepProfile ProfileStep = iota + 1
	StepInterests
	StepPreferences
	StepGoals
	StepCompleted
)

func (s ProfileStep) Valid() bool {
	return s >= StepProfile && s <= StepCompleted
}

// UserProfile is free-form profile data captured alongside onboarding.
// Interests and goals are JSON arrays of strings; preferences is a JSON
// object.
type UserProfile struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	UserID              uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio                 *string        `gorm:"type:text" json:"bio"`
	Interests           datatypes.JSON `gorm:"type:json" json:"interests"`
	Preferences         datatypes.JSON `gorm:"type:json" json:"preferences"`
	Goals               datatypes.JSON `gorm:"type:json" json:"goals"`
	OnboardingCompleted ProfileStep    `gorm:"not null" json:"onboarding_completed"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// All returns every model in migration order.
func All() []any {
	return []any{&User{}, &UserProfile{}, &Onboarding{}, &Mission{}, &Message{}}
}
