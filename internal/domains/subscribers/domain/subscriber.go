package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidEmail = errors.New("a valid email is required")

// Subscriber is one newsletter list entry. Inactive subscribers stay on
// the list and can be reactivated by subscribing again.
type Subscriber struct {
	ID        string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSubscriber validates and constructs an active subscriber.
func NewSubscriber(id, email string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	return &Subscriber{ID: id, Email: email, IsActive: true}, nil
}
