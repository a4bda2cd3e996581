package catalog

import (
	"context"
	"errors"
	"strings"

	"brandmarket/internal/domain"
	"brandmarket/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	brands     *repository.BrandRepository
	products   *repository.ProductRepository
	categories *repository.CategoryRepository
	events     EventPublisher
}

func NewService(
	brands *repository.BrandRepository,
	products *repository.ProductRepository,
	categories *repository.CategoryRepository,
	events EventPublisher,
) *Service {
	return &Service{
		brands:     brands,
		products:   products,
		categories: categories,
		events:     events,
	}
}

// ownsBrand accepts either direction of the owner link. The two columns are
// written in one transaction, but data from before that guarantee may hold
// only one of them.
func ownsBrand(user *domain.User, brand *domain.Brand) bool {
	if user.BrandID != nil && *user.BrandID == brand.ID {
		return true
	}
	return brand.OwnerID == user.ID
}

/* ---------- BRANDS ---------- */

// CreateBrand mints the owner's single brand in pending status and links
// users.brand_id in the same transaction.
func (s *Service) CreateBrand(ctx context.Context, user *domain.User, req CreateBrandRequest) (*domain.Brand, error) {
	if user.Role != domain.RoleBrandOwner {
		return nil, ErrForbidden
	}
	if user.OwnerStatus != domain.OwnerApproved {
		return nil, ErrOwnerNotApproved
	}
	if user.BrandID != nil {
		return nil, ErrBrandExists
	}
	if _, err := s.brands.GetByOwnerID(ctx, user.ID); err == nil {
		return nil, ErrBrandExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	taken, err := s.brands.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrBrandNameTaken
	}

	brand := &domain.Brand{
		OwnerID:     user.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Status:      domain.BrandPending,
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish("brand.created", brand)
	}
	return brand, nil
}

// UpdateBrand applies a partial edit. Editing a rejected brand sends it back
// to pending for a fresh review and clears the reject reason.
func (s *Service) UpdateBrand(ctx context.Context, user *domain.User, brandID int64, req UpdateBrandRequest) (*domain.Brand, error) {
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	if !ownsBrand(user, brand) {
		return nil, ErrForbidden
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" && !strings.EqualFold(*req.Name, brand.Name) {
		taken, err := s.brands.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrBrandNameTaken
		}
		brand.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		brand.Description = *req.Description
	}
	if req.LogoURL != nil {
		brand.LogoURL = *req.LogoURL
	}
	if brand.Status == domain.BrandRejected {
		brand.Status = domain.BrandPending
		brand.RejectReason = ""
	}

	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// GetBrand hides non-approved brands from everyone but their owner and
// admins. Hidden means 404, not 403, so existence does not leak.
func (s *Service) GetBrand(ctx context.Context, viewer *domain.User, brandID int64) (*domain.Brand, error) {
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}

	if brand.Status != domain.BrandApproved {
		if viewer == nil {
			return nil, ErrBrandNotFound
		}
		if viewer.Role != domain.RoleAdmin && !ownsBrand(viewer, brand) {
			return nil, ErrBrandNotFound
		}
	}

	products, err := s.products.ListByBrand(ctx, brand.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.IsActive || (viewer != nil && (viewer.Role == domain.RoleAdmin || ownsBrand(viewer, brand))) {
			brand.Products = append(brand.Products, *p)
		}
	}
	return brand, nil
}

func (s *Service) ListBrands(ctx context.Context, search string, limit, offset int) ([]*domain.Brand, int64, error) {
	return s.brands.List(ctx, repository.BrandFilter{
		Status: string(domain.BrandApproved),
		Search: search,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *Service) GetMyBrand(ctx context.Context, user *domain.User) (*domain.Brand, error) {
	brand, err := s.brands.GetByOwnerID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	return brand, nil
}

/* ---------- PRODUCTS ---------- */

// approvedBrandOf resolves the caller's brand and requires it to be approved.
func (s *Service) approvedBrandOf(ctx context.Context, user *domain.User) (*domain.Brand, error) {
	brand, err := s.brands.GetByOwnerID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	if brand.Status != domain.BrandApproved {
		return nil, ErrBrandNotApproved
	}
	return brand, nil
}

func (s *Service) CreateProduct(ctx context.Context, user *domain.User, req CreateProductRequest) (*domain.Product, error) {
	brand, err := s.approvedBrandOf(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		BrandID:     brand.ID,
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Photos:      req.Photos,
		IsActive:    true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, user *domain.User, productID int64, req UpdateProductRequest) (*domain.Product, error) {
	product, brand, err := s.productWithBrand(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ownsBrand(user, brand) {
		return nil, ErrForbidden
	}
	if brand.Status != domain.BrandApproved {
		return nil, ErrBrandNotApproved
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil && *req.Price >= 0 {
		product.Price = *req.Price
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = req.CategoryID
	}
	if req.Photos != nil {
		product.Photos = *req.Photos
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, user *domain.User, productID int64) error {
	product, brand, err := s.productWithBrand(ctx, productID)
	if err != nil {
		return err
	}
	if !ownsBrand(user, brand) {
		return ErrForbidden
	}
	return s.products.Delete(ctx, product.ID)
}

func (s *Service) ListMyProducts(ctx context.Context, user *domain.User) ([]*domain.Product, error) {
	brand, err := s.brands.GetByOwnerID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	return s.products.ListByBrand(ctx, brand.ID)
}

func (s *Service) ListProducts(ctx context.Context, f repository.ProductFilter) ([]*domain.Product, int64, error) {
	return s.products.ListPublic(ctx, f)
}

// GetProduct exposes only active products of approved brands to the public;
// the owning user and admins see it regardless.
func (s *Service) GetProduct(ctx context.Context, viewer *domain.User, productID int64) (*domain.Product, error) {
	product, brand, err := s.productWithBrand(ctx, productID)
	if err != nil {
		return nil, err
	}

	visible := product.IsActive && brand.Status == domain.BrandApproved
	if !visible {
		if viewer == nil {
			return nil, ErrProductNotFound
		}
		if viewer.Role != domain.RoleAdmin && !ownsBrand(viewer, brand) {
			return nil, ErrProductNotFound
		}
	}
	return product, nil
}

func (s *Service) productWithBrand(ctx context.Context, productID int64) (*domain.Product, *domain.Brand, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProductNotFound
		}
		return nil, nil, err
	}
	brand, err := s.brands.GetByID(ctx, product.BrandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProductNotFound
		}
		return nil, nil, err
	}
	return product, brand, nil
}

func (s *Service) checkCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categories.GetByID(ctx, *categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

/* ---------- CATEGORIES ---------- */

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}
