package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenbasket/storefront-api/internal/domains/subscribers/domain"
	"github.com/greenbasket/storefront-api/internal/domains/subscribers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists newsletter subscribers in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed subscriber store. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&subscriberRecord{})
	}
	return repo
}

type subscriberRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (subscriberRecord) TableName() string { return "subscribers" }

// Save inserts or updates a subscriber keyed by id.
func (r *Repository) Save(ctx context.Context, subscriber *domain.Subscriber) (*domain.Subscriber, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if subscriber == nil {
		return nil, errors.New("subscriber is nil")
	}
	record := subscriberRecord{
		ID:        subscriber.ID,
		Email:     subscriber.Email,
		IsActive:  subscriber.IsActive,
		CreatedAt: subscriber.CreatedAt,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "is_active", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrAlreadySubscribed
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a subscriber by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Subscriber, error) {
	return r.get(ctx, "id = ?", id)
}

// GetByEmail fetches a subscriber by normalized email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	return r.get(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) get(ctx context.Context, cond string, arg string) (*domain.Subscriber, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record subscriberRecord
	if err := r.db.WithContext(ctx).First(&record, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all subscribers, newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Subscriber, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []subscriberRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	subscribers := make([]*domain.Subscriber, 0, len(records))
	for _, record := range records {
		subscribers = append(subscribers, record.toDomain())
	}
	return subscribers, nil
}

// Delete removes a subscriber by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&subscriberRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres subscriber repository not configured")
	}
	return nil
}

func (r subscriberRecord) toDomain() *domain.Subscriber {
	return &domain.Subscriber{
		ID:        r.ID,
		Email:     r.Email,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
