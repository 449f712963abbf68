package entity

import (
	"time"
)

const (
	RoleClient          = "Client"
	RoleServiceProvider = "Service Provider"

	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

type User struct {
	ID              string   `json:"id" firestore:"-"`
	Name            string   `json:"name" firestore:"name"`
	Email           string   `json:"email" firestore:"email"`
	PhoneNumber     string   `json:"phoneNumber" firestore:"phoneNumber"`
	ProfileImageURL string   `json:"profileImageUrl,omitempty" firestore:"profileImageUrl,omitempty"`
	Roles           []string `json:"roles" firestore:"roles"`
	Status          string   `json:"status" firestore:"status"`

	// UserType is the single-role field older registrations wrote.
	UserType string `json:"-" firestore:"userType,omitempty"`

	UpdatedAt time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// Normalize folds legacy fields into the current shape. Records without a
// status were created before accounts could be disabled and count as active.
func (u *User) Normalize() {
	if len(u.Roles) == 0 && u.UserType != "" {
		u.Roles = []string{u.UserType}
	}
	if u.Status == "" || u.Status == "enabled" {
		u.Status = UserStatusActive
	}
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsDisabled() bool {
	return u.Status == UserStatusDisabled
}
