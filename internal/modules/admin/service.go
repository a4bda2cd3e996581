package admin

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"brandmarket/internal/domain"
	"brandmarket/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrNotOwner          = errors.New("user is not a brand owner")
	ErrReasonRequired    = errors.New("reason is required")
	ErrCategoryNameTaken = errors.New("category name is already taken")
)

type Service struct {
	users      UserRepository
	brands     BrandRepository
	products   ProductCounter
	categories CategoryRepository
	contacts   ContactRepository
	events     EventPublisher
}

func NewService(
	users UserRepository,
	brands BrandRepository,
	products ProductCounter,
	categories CategoryRepository,
	contacts ContactRepository,
	events EventPublisher,
) *Service {
	return &Service{
		users:      users,
		brands:     brands,
		products:   products,
		categories: categories,
		contacts:   contacts,
		events:     events,
	}
}

// -------------------- Owners --------------------

func (s *Service) ListPendingOwners(ctx context.Context, page, limit int) ([]*domain.User, int, error) {
	limit, offset := normalizePage(page, limit)
	owners, total, err := s.users.List(ctx, repository.UserFilter{
		Role:        string(domain.RoleBrandOwner),
		OwnerStatus: string(domain.OwnerPending),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, 0, err
	}
	return owners, int(total), nil
}

// ApproveOwner moves a pending or banned owner to approved and clears any
// ban stamps.
func (s *Service) ApproveOwner(ctx context.Context, ownerID int64) (*domain.User, error) {
	owner, err := s.ownerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	owner.OwnerStatus = domain.OwnerApproved
	owner.ApprovedAt = &now
	owner.BannedAt = nil
	owner.BanReason = ""
	if err := s.users.Update(ctx, owner); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish("owner.approved", owner)
	}
	owner.PasswordHash = ""
	return owner, nil
}

func (s *Service) BanOwner(ctx context.Context, ownerID int64, reason string) (*domain.User, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	owner, err := s.ownerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	owner.OwnerStatus = domain.OwnerBanned
	owner.BannedAt = &now
	owner.BanReason = strings.TrimSpace(reason)
	owner.ApprovedAt = nil
	if err := s.users.Update(ctx, owner); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish("owner.banned", owner)
	}
	owner.PasswordHash = ""
	return owner, nil
}

// ResetOwner sends an owner back to pending with both stamp sets cleared.
func (s *Service) ResetOwner(ctx context.Context, ownerID int64) (*domain.User, error) {
	owner, err := s.ownerByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	owner.OwnerStatus = domain.OwnerPending
	owner.ApprovedAt = nil
	owner.BannedAt = nil
	owner.BanReason = ""
	if err := s.users.Update(ctx, owner); err != nil {
		return nil, err
	}

	owner.PasswordHash = ""
	return owner, nil
}

func (s *Service) ownerByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleBrandOwner {
		return nil, ErrNotOwner
	}
	return user, nil
}

// -------------------- Brands --------------------

func (s *Service) ListPendingBrands(ctx context.Context, page, limit int) ([]*domain.Brand, int, error) {
	limit, offset := normalizePage(page, limit)
	brands, total, err := s.brands.List(ctx, repository.BrandFilter{
		Status: string(domain.BrandPending),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, 0, err
	}
	return brands, int(total), nil
}

func (s *Service) ApproveBrand(ctx context.Context, brandID int64) (*domain.Brand, error) {
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		return nil, err
	}

	if err := s.brands.UpdateStatus(ctx, brandID, domain.BrandApproved, ""); err != nil {
		return nil, err
	}
	brand.Status = domain.BrandApproved
	brand.RejectReason = ""

	if s.events != nil {
		s.events.Publish("brand.approved", brand)
	}
	return brand, nil
}

func (s *Service) RejectBrand(ctx context.Context, brandID int64, reason string) (*domain.Brand, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		return nil, err
	}

	if err := s.brands.UpdateStatus(ctx, brandID, domain.BrandRejected, strings.TrimSpace(reason)); err != nil {
		return nil, err
	}
	brand.Status = domain.BrandRejected
	brand.RejectReason = strings.TrimSpace(reason)

	if s.events != nil {
		s.events.Publish("brand.rejected", brand)
	}
	return brand, nil
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context, filter UserListFilter, page, limit int) ([]*domain.User, int, error) {
	limit, offset := normalizePage(page, limit)
	users, total, err := s.users.List(ctx, repository.UserFilter{
		Role:        strings.TrimSpace(filter.Role),
		OwnerStatus: strings.TrimSpace(filter.OwnerStatus),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, 0, err
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, int(total), nil
}

// -------------------- Statistics --------------------

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	clients, err := s.users.CountByRole(ctx, string(domain.RoleClient))
	if err != nil {
		return nil, err
	}
	owners, err := s.users.CountByRole(ctx, string(domain.RoleBrandOwner))
	if err != nil {
		return nil, err
	}
	admins, err := s.users.CountByRole(ctx, string(domain.RoleAdmin))
	if err != nil {
		return nil, err
	}
	_, pendingOwners, err := s.users.List(ctx, repository.UserFilter{
		Role:        string(domain.RoleBrandOwner),
		OwnerStatus: string(domain.OwnerPending),
		Limit:       1,
	})
	if err != nil {
		return nil, err
	}

	pendingBrands, err := s.brands.CountByStatus(ctx, domain.BrandPending)
	if err != nil {
		return nil, err
	}
	approvedBrands, err := s.brands.CountByStatus(ctx, domain.BrandApproved)
	if err != nil {
		return nil, err
	}
	rejectedBrands, err := s.brands.CountByStatus(ctx, domain.BrandRejected)
	if err != nil {
		return nil, err
	}

	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	_, unread, err := s.contacts.List(ctx, true, 1, 0)
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		TotalUsers:     int(clients + owners + admins),
		TotalClients:   int(clients),
		TotalOwners:    int(owners),
		PendingOwners:  int(pendingOwners),
		TotalBrands:    int(pendingBrands + approvedBrands + rejectedBrands),
		PendingBrands:  int(pendingBrands),
		ApprovedBrands: int(approvedBrands),
		TotalProducts:  int(products),
		UnreadMessages: int(unread),
	}, nil
}

// -------------------- Categories --------------------

func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	taken, err := s.categories.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryNameTaken
	}

	category := &domain.Category{Name: name, Slug: slugify(name)}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if !strings.EqualFold(name, category.Name) {
		taken, err := s.categories.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrCategoryNameTaken
		}
	}

	category.Name = name
	category.Slug = slugify(name)
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

// -------------------- Contact inbox --------------------

func (s *Service) ListContactMessages(ctx context.Context, onlyUnread bool, page, limit int) ([]*domain.ContactMessage, int, error) {
	limit, offset := normalizePage(page, limit)
	messages, total, err := s.contacts.List(ctx, onlyUnread, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return messages, int(total), nil
}

func (s *Service) MarkContactRead(ctx context.Context, id int64) error {
	return s.contacts.MarkRead(ctx, id)
}

// -------------------- helpers --------------------

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return limit, (page - 1) * limit
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
