package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
)

type User struct {
	gorm.Model
	Name         string `json:"name" example:"Jane Doe"`
	Email        string `gorm:"unique" json:"email" example:"jane@example.com"`
	Password     string `json:"-"`
	Role         string `gorm:"default:user" json:"role" example:"user"`
	ReferralCode string `gorm:"uniqueIndex;size:16" json:"referral_code" example:"5F3A9C21"`
	ReferredByID *uint  `gorm:"index" json:"referred_by_id,omitempty"`
}

// NewReferralCode returns an 8 character upper-case code derived from a
// random UUID.
func NewReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
