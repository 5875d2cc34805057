package models

import "time"

// AuthProvider is how a user signed up.
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
	AuthProviderGitHub AuthProvider = "github"
)

// User is an Altrion account. OAuth users have no password; their provider
// ids link later sign-ins back to the same row.
type User struct {
	Base
	Email               string       `gorm:"uniqueIndex;not null" json:"email"`
	Password            string       `json:"-"`
	Name                string       `json:"name"`
	Avatar              string       `json:"avatar,omitempty"`
	Provider            AuthProvider `gorm:"not null;default:'local'" json:"provider"`
	GoogleID            *string      `gorm:"uniqueIndex" json:"-"`
	GitHubID            *string      `gorm:"column:github_id;uniqueIndex" json:"-"`
	IsEmailVerified     bool         `gorm:"default:false" json:"is_email_verified"`
	IsActive            bool         `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string       `gorm:"size:64" json:"-"`
	FailedLoginAttempts int          `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time   `json:"-"`
	LastLoginAt         *time.Time   `json:"last_login_at,omitempty"`
}

// HasPassword reports whether the user can sign in with a password.
func (u *User) HasPassword() bool {
	return u.Password != ""
}
