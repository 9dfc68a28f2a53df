package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenbasket/storefront-api/internal/domains/users/domain"
	"github.com/greenbasket/storefront-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists buyers in PostgreSQL using GORM. The cart map is
// a JSON column replaced wholesale in a single write.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed buyer store. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&userRecord{})
	}
	return repo
}

type userRecord struct {
	ID           string           `gorm:"primaryKey;column:id;size:64"`
	Name         string           `gorm:"column:name"`
	Email        string           `gorm:"column:email;uniqueIndex"`
	PasswordHash string           `gorm:"column:password_hash"`
	CartItems    map[string]int64 `gorm:"column:cart_items;serializer:json"`
	CreatedAt    time.Time        `gorm:"column:created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Save inserts or updates a buyer keyed by id.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "password_hash", "cart_items", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrEmailTaken
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a buyer by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, "id = ?", id)
}

// GetByEmail fetches a buyer by normalized email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) get(ctx context.Context, cond string, arg string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ReplaceCart overwrites the cart column. Last write wins.
func (r *Repository) ReplaceCart(ctx context.Context, id string, items map[string]int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if items == nil {
		items = map[string]int64{}
	}
	result := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"cart_items": items, "updated_at": time.Now().UTC()})
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
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CartItems:    user.CartItems,
		CreatedAt:    user.CreatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	cart := r.CartItems
	if cart == nil {
		cart = map[string]int64{}
	}
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CartItems:    cart,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
