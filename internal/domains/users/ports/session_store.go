package ports

import "context"

// SessionStore abstracts opaque session-token persistence. Subjects are
// buyer ids, or the fixed seller principal for back-office sessions.
type SessionStore interface {
	Save(ctx context.Context, subject, token string) error
	// Resolve maps a presented token back to its subject, or ErrNotFound
	// when the token is unknown or expired.
	Resolve(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, subject string) error
}

// NoopSessionStore is a safe default when callers do not need session persistence.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(_ context.Context, _ string, _ string) error { return nil }
func (noopSessionStore) Resolve(_ context.Context, _ string) (string, error) {
	return "", ErrNotFound
}
func (noopSessionStore) Delete(_ context.Context, _ string) error { return nil }
