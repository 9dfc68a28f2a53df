package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
	"github.com/greenbasket/storefront-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the order ledger in PostgreSQL using GORM. Line
// items and the address snapshot are JSON columns written with the row,
// so an order either exists completely or not at all.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed ledger. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

type orderRecord struct {
	ID          string            `gorm:"primaryKey;column:id;size:64"`
	UserID      string            `gorm:"column:user_id;size:64;index"`
	Items       []domain.LineItem `gorm:"column:items;serializer:json"`
	Address     domain.Address    `gorm:"column:address;serializer:json"`
	Amount      int64             `gorm:"column:amount"`
	PaymentType string            `gorm:"column:payment_type;type:varchar(16);index"`
	IsPaid      bool              `gorm:"column:is_paid;index"`
	Status      string            `gorm:"column:status;type:varchar(64)"`
	CreatedAt   time.Time         `gorm:"column:created_at;index"`
	UpdatedAt   time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Create inserts a complete order document in a single write.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// SetPaid overwrites the paid flag in a single-column update. Last
// write wins when it races the operator override.
func (r *Repository) SetPaid(ctx context.Context, id string, paid bool) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_paid": paid, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Delete removes an order; used only by failed-payment reconciliation.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&orderRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// ListVisibleByUser returns the buyer's settled orders, newest first.
func (r *Repository) ListVisibleByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.listVisible(ctx, "user_id = ?", userID)
}

// ListVisible returns all settled orders, newest first.
func (r *Repository) ListVisible(ctx context.Context) ([]*domain.Order, error) {
	return r.listVisible(ctx, "")
}

func (r *Repository) listVisible(ctx context.Context, cond string, args ...any) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).
		Where("payment_type = ? OR is_paid", string(domain.PaymentCOD)).
		Order("created_at DESC")
	if cond != "" {
		query = query.Where(cond, args...)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:          order.ID,
		UserID:      order.UserID,
		Items:       order.Items,
		Address:     order.Address,
		Amount:      order.Amount,
		PaymentType: string(order.PaymentType),
		IsPaid:      order.IsPaid,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:          r.ID,
		UserID:      r.UserID,
		Items:       r.Items,
		Address:     r.Address,
		Amount:      r.Amount,
		PaymentType: domain.PaymentType(r.PaymentType),
		IsPaid:      r.IsPaid,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
