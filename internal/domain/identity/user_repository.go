package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository stores login accounts. Lookups miss with shared.ErrNotFound;
// usernames match case-insensitively.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Count is zero on a fresh install, which triggers the bootstrap account
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, user *User) error
}

// CompanyRepository holds the single company profile
type CompanyRepository interface {
	// Get misses with shared.ErrNotFound until the profile is first saved
	Get(ctx context.Context) (*CompanyProfile, error)
	Save(ctx context.Context, profile *CompanyProfile) error
}
