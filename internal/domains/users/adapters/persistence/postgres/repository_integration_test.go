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

	"github.com/greenbasket/storefront-api/internal/domains/users/domain"
	"github.com/greenbasket/storefront-api/internal/domains/users/ports"
)

func setupUsersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func TestRepository_SaveAndGetByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser("user-1", "Ada", "ada@example.com", "supersecret")
	require.NoError(t, err)

	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", saved.Email)

	fetched, err := repo.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.True(t, fetched.CheckPassword("supersecret"))
}

func TestRepository_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first, err := domain.NewUser("user-1", "Ada", "ada@example.com", "supersecret")
	require.NoError(t, err)
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewUser("user-2", "Other", "ada@example.com", "different1")
	require.NoError(t, err)
	_, err = repo.Save(ctx, second)
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestRepository_ReplaceCart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser("user-1", "Ada", "ada@example.com", "supersecret")
	require.NoError(t, err)
	_, err = repo.Save(ctx, user)
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceCart(ctx, "user-1", map[string]int64{"potato": 2}))
	fetched, err := repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"potato": 2}, fetched.CartItems)

	require.ErrorIs(t, repo.ReplaceCart(ctx, "ghost", nil), ports.ErrNotFound)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", "token-1"))
	subject, err := store.Resolve(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)

	require.NoError(t, store.Delete(ctx, "user-1"))
	_, err = store.Resolve(ctx, "token-1")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore_ExpiredTokenIgnoredAndPurged(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", "token-1"))
	expired := time.Now().Add(-time.Minute)
	require.NoError(t, db.Table("sessions").
		Where("token = ?", "token-1").
		Update("expires_at", expired).Error)

	_, err := store.Resolve(ctx, "token-1")
	require.ErrorIs(t, err, ports.ErrNotFound)

	require.NoError(t, store.PurgeExpired(ctx))
	var count int64
	require.NoError(t, db.Table("sessions").Count(&count).Error)
	assert.Zero(t, count)
}
