package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                      uuid.UUID  `json:"id" db:"id"`
	Email                   string     `json:"email" db:"email"`
	PasswordHash            string     `json:"-" db:"password_hash"`
	Name                    string     `json:"name" db:"name"`
	Phone                   *string    `json:"phone,omitempty" db:"phone"`
	City                    *string    `json:"city,omitempty" db:"city"`
	Role                    Role       `json:"role" db:"role"`
	IsEmailVerified         bool       `json:"is_email_verified" db:"is_email_verified"`
	EmailVerificationToken  *string    `json:"-" db:"email_verification_token"`
	EmailVerificationSentAt *time.Time `json:"-" db:"email_verification_sent_at"`
	PasswordResetToken      *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt  *time.Time `json:"-" db:"password_reset_expires_at"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt               *time.Time `json:"-" db:"deleted_at"`
}

type Role string

const (
	RoleUser      Role = "USER"
	RoleVolunteer Role = "VOLUNTEER"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleVolunteer, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity is the authenticated caller as the services see it: id and role
// only, resolved per call by the auth middleware and never cached.
type Identity struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

type CreateUserInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     string  `json:"name" validate:"required,min=2"`
	Phone    *string `json:"phone,omitempty"`
	City     *string `json:"city,omitempty"`
	Role     Role    `json:"role" validate:"omitempty,oneof=USER VOLUNTEER"`
}

type UpdateUserInput struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone *string `json:"phone,omitempty"`
	City  *string `json:"city,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UserSummary is the flat projection of a user embedded in request and
// response payloads. Joins are explicit return-shape contracts here; callers
// never receive a nested fetch graph.
type UserSummary struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Phone *string   `json:"phone,omitempty" db:"phone"`
	Email *string   `json:"email,omitempty" db:"email"`
}
