package domain

import (
	"strings"
	"time"
)

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User keeps the name and email as entered. Uniqueness and lookups go
// through the normalized copies, so they ignore case.
type User struct {
	ID                 string     `gorm:"primaryKey;size:36"`
	UserName           string     `gorm:"size:191;not null"`
	NormalizedUserName string     `gorm:"uniqueIndex;size:191;not null"`
	Email              string     `gorm:"size:191;not null"`
	NormalizedEmail    string     `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash       string     `gorm:"size:191;not null"`
	FirstName          string     `gorm:"size:64"`
	LastName           string     `gorm:"size:64"`
	Address            string     `gorm:"size:255"`
	Roles              []UserRole `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NormalizeKey is the comparison form of a user name or email.
func NormalizeKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Normalize refreshes the normalized columns from UserName and Email.
func (u *User) Normalize() {
	u.NormalizedUserName = NormalizeKey(u.UserName)
	u.NormalizedEmail = NormalizeKey(u.Email)
}

func (User) TableName() string { return "users" }

// RoleNames flattens the loaded roles. Roles must be preloaded.
func (u *User) RoleNames() []string {
	out := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		out = append(out, r.Role)
	}
	return out
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// UserRole is keyed by (user_id, role).
type UserRole struct {
	UserID string `gorm:"primaryKey;size:36"`
	Role   string `gorm:"primaryKey;size:32"`
}

func (UserRole) TableName() string { return "user_roles" }
