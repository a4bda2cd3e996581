package repository

import (
	"context"
	"strings"
	"time"

	"brandmarket/internal/domain"

	"gorm.io/gorm"
)

type BrandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

type brandModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	OwnerID      int64     `gorm:"column:owner_id;uniqueIndex"`
	Name         string    `gorm:"column:name;uniqueIndex"`
	Description  string    `gorm:"column:description"`
	LogoURL      *string   `gorm:"column:logo_url"`
	Status       string    `gorm:"column:status;index"`
	RejectReason *string   `gorm:"column:reject_reason"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (brandModel) TableName() string { return "brands" }

func toDomainBrand(m brandModel) *domain.Brand {
	var logo, reason string
	if m.LogoURL != nil {
		logo = *m.LogoURL
	}
	if m.RejectReason != nil {
		reason = *m.RejectReason
	}
	return &domain.Brand{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Name:         m.Name,
		Description:  m.Description,
		LogoURL:      logo,
		Status:       domain.BrandStatus(m.Status),
		RejectReason: reason,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toBrandModel(b *domain.Brand) brandModel {
	var logo, reason *string
	if b.LogoURL != "" {
		v := b.LogoURL
		logo = &v
	}
	if b.RejectReason != "" {
		v := b.RejectReason
		reason = &v
	}
	return brandModel{
		ID:           b.ID,
		OwnerID:      b.OwnerID,
		Name:         strings.TrimSpace(b.Name),
		Description:  b.Description,
		LogoURL:      logo,
		Status:       string(b.Status),
		RejectReason: reason,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// Create inserts the brand and links users.brand_id in the same transaction
// so the two ownership links cannot diverge.
func (r *BrandRepository) Create(ctx context.Context, b *domain.Brand) error {
	m := toBrandModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return tx.Model(&userModel{}).Where("id = ?", m.OwnerID).Updates(map[string]any{
			"brand_id":   m.ID,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return err
	}
	*b = *toDomainBrand(m)
	return nil
}

func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	var m brandModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBrand(m), nil
}

func (r *BrandRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Brand, error) {
	var m brandModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainBrand(m), nil
}

func (r *BrandRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&brandModel{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	return count > 0, err
}

func (r *BrandRepository) Update(ctx context.Context, b *domain.Brand) error {
	m := toBrandModel(b)
	m.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBrand(m)
	return nil
}

func (r *BrandRepository) UpdateStatus(ctx context.Context, id int64, status domain.BrandStatus, rejectReason string) error {
	var reason *string
	if rejectReason != "" {
		reason = &rejectReason
	}
	return r.db.WithContext(ctx).Model(&brandModel{}).Where("id = ?", id).Updates(map[string]any{
		"status":        string(status),
		"reject_reason": reason,
		"updated_at":    time.Now(),
	}).Error
}

type BrandFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

func (r *BrandRepository) List(ctx context.Context, f BrandFilter) ([]*domain.Brand, int64, error) {
	q := r.db.WithContext(ctx).Model(&brandModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	var models []brandModel
	if err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	brands := make([]*domain.Brand, 0, len(models))
	for _, m := range models {
		brands = append(brands, toDomainBrand(m))
	}
	return brands, total, nil
}

func (r *BrandRepository) CountByStatus(ctx context.Context, status domain.BrandStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&brandModel{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

func (r *BrandRepository) DB() *gorm.DB { return r.db }
