// Package migrations applies the PostgreSQL schema for every bounded
// context in one place, so deployments can migrate once at startup
// instead of relying on adapter-level automigrate.
package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&userRecord{},
		&sessionRecord{},
		&subscriberRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID          string         `gorm:"primaryKey;column:id;size:64"`
	Name        string         `gorm:"column:name"`
	Description pq.StringArray `gorm:"column:description;type:text[]"`
	Category    string         `gorm:"column:category;type:varchar(64);index"`
	Price       int64          `gorm:"column:price"`
	OfferPrice  int64          `gorm:"column:offer_price"`
	Images      pq.StringArray `gorm:"column:images;type:text[]"`
	Weight      string         `gorm:"column:weight;type:varchar(32)"`
	InStock     bool           `gorm:"column:in_stock;index"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter. Items and address
// are JSON documents written whole with the rest of the row.
type orderRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:64"`
	UserID      string    `gorm:"column:user_id;size:64;index"`
	Items       string    `gorm:"column:items"`
	Address     string    `gorm:"column:address"`
	Amount      int64     `gorm:"column:amount"`
	PaymentType string    `gorm:"column:payment_type;type:varchar(16);index"`
	IsPaid      bool      `gorm:"column:is_paid;index"`
	Status      string    `gorm:"column:status;type:varchar(64)"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:64"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	CartItems    string    `gorm:"column:cart_items"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Subject   string     `gorm:"column:subject;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "sessions" }

// Subscriber schema mirrors the subscribers Postgres adapter.
type subscriberRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (subscriberRecord) TableName() string { return "subscribers" }
