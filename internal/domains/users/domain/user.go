package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidEmail  = errors.New("a valid email is required")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
	ErrEmptyPassword = errors.New("password is required")
)

// User is a storefront buyer. CartItems maps product ids to quantities
// and is the server-side cart state cleared when a payment settles.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CartItems    map[string]int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a buyer with a hashed password.
func NewUser(id, name, email, password string) (*User, error) {
	user := &User{ID: id, CartItems: map[string]int64{}}
	if err := user.SetName(name); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetName trims and validates the display name.
func (u *User) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// SetEmail normalizes and validates the email address.
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPassword validates strength and stores a bcrypt hash.
func (u *User) SetPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < 8 {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the stored hash with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ReplaceCart swaps the cart state wholesale. A nil map empties the cart.
func (u *User) ReplaceCart(items map[string]int64) {
	if items == nil {
		items = map[string]int64{}
	}
	u.CartItems = items
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetName(u.Name); err != nil {
		return err
	}
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	return nil
}
