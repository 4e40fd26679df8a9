package auth

import (
	"fmt"
	"time"
)

// ======================
// 👤 Roles
// ======================

// Role is a closed set; every branch on it should switch over all three values.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleLeader      Role = "leader"
	RoleUniversity  Role = "university"
)

// ParseRole maps a stored role string onto the closed Role set
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleParticipant:
		return RoleParticipant, true
	case RoleLeader:
		return RoleLeader, true
	case RoleUniversity:
		return RoleUniversity, true
	default:
		return "", false
	}
}

// User represents the users table
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:20;not null;default:participant;index" json:"role"`
	ClubID       *uint     `gorm:"index" json:"club_id,omitempty"` // set for club leaders
	Bio          string    `gorm:"size:500" json:"bio"`
	ProfileImage string    `gorm:"size:255" json:"profile_image"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RegisterRequest is the signup payload (participants only)
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest starts the reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest completes the reset flow
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UserInfo is the safe user shape returned by auth endpoints
type UserInfo struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	ClubID *uint  `json:"club_id,omitempty"`
}

// LoginResponse bundles tokens with the resolved user
type LoginResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         UserInfo `json:"user"`
}

// ValidationError reports a rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func toUserInfo(u *User) UserInfo {
	return UserInfo{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		ClubID: u.ClubID,
	}
}
