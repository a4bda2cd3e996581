package repository

import (
	"context"
	"strings"
	"time"

	"brandmarket/internal/domain"
	"brandmarket/internal/pkg/utils"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	BrandID     int64     `gorm:"column:brand_id;index"`
	CategoryID  *int64    `gorm:"column:category_id;index"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	Photos      string    `gorm:"column:photos"`
	IsActive    bool      `gorm:"column:is_active;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productModel) TableName() string { return "products" }

func toDomainProduct(m productModel) *domain.Product {
	return &domain.Product{
		ID:          m.ID,
		BrandID:     m.BrandID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Photos:      utils.StringToPhotos(m.Photos),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toProductModel(p *domain.Product) productModel {
	return productModel{
		ID:          p.ID,
		BrandID:     p.BrandID,
		CategoryID:  p.CategoryID,
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Price:       p.Price,
		Photos:      utils.PhotosToString(p.Photos),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	m := toProductModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainProduct(m)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainProduct(m), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	m := toProductModel(p)
	m.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	*p = *toDomainProduct(m)
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&productModel{}, id).Error
}

func (r *ProductRepository) ListByBrand(ctx context.Context, brandID int64) ([]*domain.Product, error) {
	var models []productModel
	if err := r.db.WithContext(ctx).Where("brand_id = ?", brandID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(models))
	for _, m := range models {
		products = append(products, toDomainProduct(m))
	}
	return products, nil
}

type ProductFilter struct {
	CategoryID *int64
	Search     string
	Limit      int
	Offset     int
}

// ListPublic returns active products of approved brands only.
func (r *ProductRepository) ListPublic(ctx context.Context, f ProductFilter) ([]*domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&productModel{}).
		Joins("JOIN brands ON brands.id = products.brand_id").
		Where("products.is_active = ?", true).
		Where("brands.status = ?", string(domain.BrandApproved))
	if f.CategoryID != nil {
		q = q.Where("products.category_id = ?", *f.CategoryID)
	}
	if f.Search != "" {
		q = q.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	var models []productModel
	if err := q.Order("products.created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*domain.Product, 0, len(models))
	for _, m := range models {
		products = append(products, toDomainProduct(m))
	}
	return products, total, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&productModel{}).Count(&count).Error
	return count, err
}
