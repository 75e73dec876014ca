package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrEmptyName    = errors.New("name cannot be empty")
)

type User struct {
	id           uuid.UUID
	email        string
	name         string
	role         Role
	passwordHash string
	createdAt    time.Time
}

func NewUser(email, name string, role Role, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &User{
		id:           uuid.New(),
		email:        email,
		name:         name,
		role:         role,
		passwordHash: passwordHash,
	}, nil
}

func ReconstructUser(id uuid.UUID, email, name string, role Role, passwordHash string, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID { return u.id }
func (u *User) Email() string { return u.email }
func (u *User) Name() string { return u.name }
func (u *User) Role() Role { return u.role }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
