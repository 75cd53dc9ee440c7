package user

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("user name cannot be empty")
	ErrInvalidEmail = errors.New("invalid email address")
)

type User struct {
	id    int64
	name  string
	email string
}

func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	return &User{name: name, email: email}, nil
}

func Reconstruct(id int64, name, email string) *User {
	return &User{id: id, name: name, email: email}
}

func (u *User) Rename(name string) {
	u.name = name
}

func (u *User) ChangeEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.email = email
	return nil
}

func (u *User) ID() int64     { return u.id }
func (u *User) Name() string  { return u.name }
func (u *User) Email() string { return u.email }
