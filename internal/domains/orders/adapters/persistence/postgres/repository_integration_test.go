//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/greenbasket/storefront-api/internal/domains/orders/domain"
	"github.com/greenbasket/storefront-api/internal/domains/orders/ports"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func testOrder(id, userID string, paymentType domain.PaymentType) *domain.Order {
	order, err := domain.NewOrder(id, userID,
		[]domain.LineItem{{ProductID: "potato", Quantity: 2}},
		domain.Address{Street: "1 Market St", City: "Springfield", Zipcode: "12345", Country: "US"},
		275, paymentType)
	if err != nil {
		panic(err)
	}
	return order
}

func TestRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, testOrder("order-1", "user-1", domain.PaymentCOD))
	require.NoError(t, err)
	assert.Equal(t, int64(275), saved.Amount)

	fetched, err := repo.GetByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, saved.UserID, fetched.UserID)
	assert.Equal(t, saved.Items, fetched.Items)
	assert.Equal(t, saved.Address, fetched.Address)
	assert.False(t, fetched.IsPaid)
}

func TestRepository_SetPaid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, testOrder("order-1", "user-1", domain.PaymentOnline))
	require.NoError(t, err)

	require.NoError(t, repo.SetPaid(ctx, "order-1", true))
	fetched, err := repo.GetByID(ctx, "order-1")
	require.NoError(t, err)
	assert.True(t, fetched.IsPaid)

	require.ErrorIs(t, repo.SetPaid(ctx, "ghost", true), ports.ErrNotFound)
}

func TestRepository_VisibilityFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, testOrder("order-cod", "user-1", domain.PaymentCOD))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testOrder("order-online", "user-1", domain.PaymentOnline))
	require.NoError(t, err)

	visible, err := repo.ListVisibleByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "order-cod", visible[0].ID)

	require.NoError(t, repo.SetPaid(ctx, "order-online", true))

	visible, err = repo.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 2)
}

func TestRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, testOrder("order-1", "user-1", domain.PaymentOnline))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "order-1"))
	_, err = repo.GetByID(ctx, "order-1")
	require.ErrorIs(t, err, ports.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "order-1"), ports.ErrNotFound)
}
