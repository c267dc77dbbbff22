package models

import (
	"time"
)

// Base replaces gorm.Model for tables exposed over the API, with JSON names
// and without soft deletes.
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	Base
	FullName        string `json:"fullName" gorm:"size:100;not null"`
	Email           string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password        string `json:"-" gorm:"not null"`
	CNICFront       string `json:"cnicFront"`
	CNICBack        string `json:"cnicBack"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	Role            Role   `json:"role" gorm:"type:varchar(10);not null"`

	EmailVerificationToken   string     `json:"-" gorm:"size:64;index"`
	EmailVerificationExpires *time.Time `json:"-"`
	PasswordResetToken       string     `json:"-" gorm:"size:64;index"`
	PasswordResetExpires     *time.Time `json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the public subset of a user returned by the auth endpoints.
type UserSummary struct {
	ID              uint   `json:"id"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	Role            Role   `json:"role,omitempty"`
}

func (u *User) Summary(withRole bool) UserSummary {
	s := UserSummary{
		ID:              u.ID,
		FullName:        u.FullName,
		Email:           u.Email,
		IsEmailVerified: u.IsEmailVerified,
	}
	if withRole {
		s.Role = u.Role
	}
	return s
}
