package model

import (
	"cinemaverse/utils"
	"time"
)

type User struct {
	DTO
	FirstName   string            `gorm:"size:100;not null" json:"firstName"`
	LastName    string            `gorm:"size:100;not null" json:"lastName"`
	Email       string            `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string            `gorm:"not null" json:"-"`
	PhoneNumber *string           `gorm:"size:30" json:"phoneNumber"`
	Role        string            `gorm:"size:20;not null;index" json:"role"`
	Active      bool              `gorm:"not null;default:true" json:"active"`
	DateOfBirth *utils.CustomDate `gorm:"type:date" json:"dateOfBirth"`
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type PasswordResetToken struct {
	DTO
	UserId    uint       `gorm:"not null;index" json:"userId"`
	User      User       `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE" json:"-"`
	Token     string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt"`
}

type RegisterInput struct {
	FirstName   string            `json:"firstName" validate:"required,max=100"`
	LastName    string            `json:"lastName" validate:"required,max=100"`
	Email       string            `json:"email" validate:"required,email,max=255"`
	Password    string            `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber *string           `json:"phoneNumber" validate:"omitempty,max=30"`
	DateOfBirth *utils.CustomDate `json:"dateOfBirth"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken"`
}

type UpdateProfileInput struct {
	FirstName   *string           `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName    *string           `json:"lastName" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string           `json:"phoneNumber" validate:"omitempty,max=30"`
	DateOfBirth *utils.CustomDate `json:"dateOfBirth"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72,nefield=CurrentPassword"`
	RepeatPassword  string `json:"repeatPassword" validate:"required,eqfield=NewPassword"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Token          string `json:"token" validate:"required"`
	NewPassword    string `json:"newPassword" validate:"required,min=8,max=72"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=NewPassword"`
}

type AuthResponse struct {
	TokenData
	User User `json:"user"`
}

type FilterUser struct {
	Pagination
	SearchKey string `query:"searchKey" json:"searchKey"`
	Role      string `query:"role" json:"role" validate:"omitempty,oneof=Admin Customer"`
	Active    *bool  `query:"active" json:"active"`
}

type ChangeRoleInput struct {
	Role string `json:"role" validate:"required,oneof=Admin Customer"`
}

type ActiveUserInput struct {
	Active *bool `json:"active" validate:"required"`
}
