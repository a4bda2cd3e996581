package admin

import (
	"context"

	"brandmarket/internal/domain"
	"brandmarket/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	List(ctx context.Context, f repository.UserFilter) ([]*domain.User, int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

type BrandRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Brand, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BrandStatus, rejectReason string) error
	List(ctx context.Context, f repository.BrandFilter) ([]*domain.Brand, int64, error)
	CountByStatus(ctx context.Context, status domain.BrandStatus) (int64, error)
}

type ProductCounter interface {
	Count(ctx context.Context) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type ContactRepository interface {
	List(ctx context.Context, onlyUnread bool, limit, offset int) ([]*domain.ContactMessage, int64, error)
	MarkRead(ctx context.Context, id int64) error
}

type EventPublisher interface {
	Publish(event string, payload any)
}
