package models

import "time"

type User struct {
	ID                   string    `json:"_id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Role                 string    `json:"role,omitempty"`
	CreatedAt            time.Time `json:"createdAt,omitempty"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
}

// UserPatch is a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Name                 *string
	Email                *string
	Role                 *string
	NotificationsEnabled *bool
}

// Apply returns a copy of u with the non-nil patch fields merged in
func (u User) Apply(p UserPatch) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.NotificationsEnabled != nil {
		u.NotificationsEnabled = *p.NotificationsEnabled
	}
	return u
}

// PatchFrom builds a patch carrying every profile field of u
func PatchFrom(u User) UserPatch {
	name, email, role, notify := u.Name, u.Email, u.Role, u.NotificationsEnabled
	p := UserPatch{Name: &name, Email: &email, NotificationsEnabled: &notify}
	if role != "" {
		p.Role = &role
	}
	return p
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PasswordUpdate struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type SettingsUpdate struct {
	NotificationsEnabled bool `json:"notificationsEnabled"`
}
