package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/greenbasket/storefront-api/internal/domains/subscribers/domain"
	"github.com/greenbasket/storefront-api/internal/domains/subscribers/ports"
)

// Service orchestrates newsletter use cases.
type Service struct {
	repo  ports.Repository
	newID func() string
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

// Subscribe adds the email to the list. Subscribing an inactive entry
// reactivates it; an already-active entry is rejected.
func (s *Service) Subscribe(ctx context.Context, email string) (bool, error) {
	subscriber, err := domain.NewSubscriber(s.newID(), email)
	if err != nil {
		return false, err
	}
	existing, err := s.repo.GetByEmail(ctx, subscriber.Email)
	switch {
	case err == nil:
		if existing.IsActive {
			return false, ports.ErrAlreadySubscribed
		}
		existing.IsActive = true
		_, err = s.repo.Save(ctx, existing)
		return true, err
	case errors.Is(err, ports.ErrNotFound):
		_, err = s.repo.Save(ctx, subscriber)
		return false, err
	default:
		return false, err
	}
}

func (s *Service) List(ctx context.Context) ([]*domain.Subscriber, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ToggleStatus flips the subscriber's active flag.
func (s *Service) ToggleStatus(ctx context.Context, id string) (bool, error) {
	subscriber, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	subscriber.IsActive = !subscriber.IsActive
	if _, err := s.repo.Save(ctx, subscriber); err != nil {
		return false, err
	}
	return subscriber.IsActive, nil
}

var _ ports.Service = (*Service)(nil)
