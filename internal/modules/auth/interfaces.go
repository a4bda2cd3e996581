package auth

import (
	"context"

	"brandmarket/internal/domain"
)

// UserRepositoryInterface lists only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateVerification(ctx context.Context, userID int64, v domain.VerificationState, emailVerified bool) error
}

// RefreshTokenRepositoryInterface is the storage behind refresh sessions.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	MarkRotated(ctx context.Context, id int64) error
	RevokeFamily(ctx context.Context, familyID string) error
	Revoke(ctx context.Context, id int64) error
}

// BrandReader populates the brand on /auth/me for owner accounts.
type BrandReader interface {
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Brand, error)
}
