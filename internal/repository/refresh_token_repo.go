package repository

import (
	"context"
	"time"

	"brandmarket/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository provides DB access for refresh tokens.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

type refreshTokenModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	UserID    int64      `gorm:"column:user_id;index"`
	TokenHash string     `gorm:"column:token_hash;size:64;uniqueIndex"`
	FamilyID  string     `gorm:"column:family_id;index"`
	ExpiresAt time.Time  `gorm:"column:expires_at;index"`
	UsedAt    *time.Time `gorm:"column:used_at"`
	RevokedAt *time.Time `gorm:"column:revoked_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (refreshTokenModel) TableName() string { return "refresh_tokens" }

func toDomainRefreshToken(m refreshTokenModel) *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        m.ID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		FamilyID:  m.FamilyID,
		ExpiresAt: m.ExpiresAt,
		UsedAt:    m.UsedAt,
		RevokedAt: m.RevokedAt,
		CreatedAt: m.CreatedAt,
	}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	m := refreshTokenModel{
		UserID:    t.UserID,
		TokenHash: t.TokenHash,
		FamilyID:  t.FamilyID,
		ExpiresAt: t.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*t = *toDomainRefreshToken(m)
	return nil
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var m refreshTokenModel
	if err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainRefreshToken(m), nil
}

// MarkRotated revokes the old row after a successful rotation.
func (r *RefreshTokenRepository) MarkRotated(ctx context.Context, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&refreshTokenModel{}).Where("id = ?", id).Updates(map[string]any{
		"used_at":    now,
		"revoked_at": now,
	}).Error
}

// RevokeFamily kills a whole rotation chain, used on token reuse detection.
func (r *RefreshTokenRepository) RevokeFamily(ctx context.Context, familyID string) error {
	return r.db.WithContext(ctx).Model(&refreshTokenModel{}).
		Where("family_id = ? AND revoked_at IS NULL", familyID).
		Update("revoked_at", time.Now()).Error
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&refreshTokenModel{}).Where("id = ?", id).
		Update("revoked_at", time.Now()).Error
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now()).
		Delete(&refreshTokenModel{})
	return result.RowsAffected, result.Error
}
