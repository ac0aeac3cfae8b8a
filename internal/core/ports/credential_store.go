package ports

import "context"

// Persisted credential keys.
const (
	TokenKey = "ebanking_token"
	UserKey  = "ebanking_user"
)

// CredentialStore persists the session credentials as plain strings.
// Get returns domain.ErrCredentialNotFound for a missing key; Delete of a
// missing key is not an error.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
