package repository

import (
	"context"
	"errors"
	"time"

	"brandmarket/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorite  = errors.New("brand already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// FavoriteRepository stores the brands a client has saved.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, brandID int64) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, brandID int64) error
	GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error)
	Exists(ctx context.Context, userID, brandID int64) (bool, error)
	Count(ctx context.Context, userID int64) (int64, error)
}

type favoriteModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index;uniqueIndex:idx_user_brand"`
	BrandID   int64     `gorm:"column:brand_id;index;uniqueIndex:idx_user_brand"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (favoriteModel) TableName() string { return "favorites" }

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, brandID int64) (*domain.Favorite, error) {
	exists, err := r.Exists(ctx, userID, brandID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorite
	}

	m := favoriteModel{UserID: userID, BrandID: brandID}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}

	fav := &domain.Favorite{ID: m.ID, UserID: m.UserID, BrandID: m.BrandID, CreatedAt: m.CreatedAt}

	var bm brandModel
	if err := r.db.WithContext(ctx).First(&bm, brandID).Error; err == nil {
		fav.Brand = toDomainBrand(bm)
	}
	return fav, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, brandID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND brand_id = ?", userID, brandID).
		Delete(&favoriteModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteRepository) GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&favoriteModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var models []favoriteModel
	if err := q.Find(&models).Error; err != nil {
		return nil, 0, err
	}

	favorites := make([]domain.Favorite, 0, len(models))
	for _, m := range models {
		fav := domain.Favorite{ID: m.ID, UserID: m.UserID, BrandID: m.BrandID, CreatedAt: m.CreatedAt}
		var bm brandModel
		if err := r.db.WithContext(ctx).First(&bm, m.BrandID).Error; err == nil {
			fav.Brand = toDomainBrand(bm)
		}
		favorites = append(favorites, fav)
	}
	return favorites, total, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, brandID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&favoriteModel{}).
		Where("user_id = ? AND brand_id = ?", userID, brandID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&favoriteModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
