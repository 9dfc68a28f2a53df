package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	userports "github.com/greenbasket/storefront-api/internal/domains/users/ports"
)

var _ userports.SessionStore = (*SessionStore)(nil)

// SessionStore persists session tokens in PostgreSQL.
type SessionStore struct {
	db       *gorm.DB
	sessionT time.Duration
}

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 7 * 24 * time.Hour

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB, sessionTTL time.Duration) *SessionStore {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	store := &SessionStore{db: db, sessionT: sessionTTL}
	if db != nil {
		_ = db.AutoMigrate(&sessionRecord{})
	}
	return store
}

type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Subject   string     `gorm:"column:subject;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "sessions" }

// Save upserts a session token keyed by token.
func (s *SessionStore) Save(ctx context.Context, subject, token string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	subject = strings.TrimSpace(subject)
	token = strings.TrimSpace(token)
	if subject == "" || token == "" {
		return errors.New("subject and token are required")
	}
	expiry := time.Now().Add(s.sessionT)
	rec := sessionRecord{Subject: subject, Token: token, ExpiresAt: &expiry}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"subject", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Resolve maps a token back to its subject, ignoring expired sessions.
func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	if err := s.ensureDB(); err != nil {
		return "", err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", userports.ErrNotFound
	}
	var rec sessionRecord
	err := s.db.WithContext(ctx).
		Where("token = ? AND (expires_at IS NULL OR expires_at > ?)", token, time.Now()).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", userports.ErrNotFound
		}
		return "", err
	}
	return rec.Subject, nil
}

// Delete removes all sessions for a subject.
func (s *SessionStore) Delete(ctx context.Context, subject string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "subject = ?", subject).Error
}

// PurgeExpired removes all expired sessions. Use for housekeeping or cron.
func (s *SessionStore) PurgeExpired(ctx context.Context) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	now := time.Now()
	return s.db.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&sessionRecord{}).Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}
