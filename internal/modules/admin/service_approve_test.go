package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandmarket/internal/database"
	"brandmarket/internal/domain"
	"brandmarket/internal/repository"
)

type recordEvents struct {
	events []string
}

func (e *recordEvents) Publish(event string, _ any) {
	e.events = append(e.events, event)
}

type adminEnv struct {
	svc    *Service
	users  *repository.UserRepository
	brands *repository.BrandRepository
	events *recordEvents
}

func newAdminEnv(t *testing.T) *adminEnv {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	users := repository.NewUserRepository(db)
	brands := repository.NewBrandRepository(db)
	events := &recordEvents{}
	svc := NewService(
		users,
		brands,
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewContactRepository(db),
		events,
	)
	return &adminEnv{svc: svc, users: users, brands: brands, events: events}
}

func (e *adminEnv) seedOwner(t *testing.T, email string) *domain.User {
	t.Helper()
	owner := domain.NewBrandOwner(email, "hash", "Owner", "+21620123456")
	owner.EmailVerified = true
	require.NoError(t, e.users.Create(context.Background(), owner))
	return owner
}

func (e *adminEnv) seedPendingBrand(t *testing.T, ownerEmail, name string) *domain.Brand {
	t.Helper()
	ctx := context.Background()
	owner := e.seedOwner(t, ownerEmail)
	owner.OwnerStatus = domain.OwnerApproved
	require.NoError(t, e.users.Update(ctx, owner))

	brand := &domain.Brand{OwnerID: owner.ID, Name: name, Status: domain.BrandPending}
	require.NoError(t, e.brands.Create(ctx, brand))
	return brand
}

func TestApproveOwner_StampsAndClearsBan(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()
	owner := env.seedOwner(t, "pending@example.tn")

	approved, err := env.svc.ApproveOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerApproved, approved.OwnerStatus)
	assert.NotNil(t, approved.ApprovedAt)
	assert.Nil(t, approved.BannedAt)
	assert.Contains(t, env.events.events, "owner.approved")

	fresh, err := env.users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerApproved, fresh.OwnerStatus)
}

func TestBanOwner_RequiresReason(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()
	owner := env.seedOwner(t, "ban@example.tn")

	_, err := env.svc.BanOwner(ctx, owner.ID, "   ")
	assert.ErrorIs(t, err, ErrReasonRequired)

	banned, err := env.svc.BanOwner(ctx, owner.ID, "fake storefront")
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerBanned, banned.OwnerStatus)
	assert.Equal(t, "fake storefront", banned.BanReason)
	assert.NotNil(t, banned.BannedAt)
	assert.Nil(t, banned.ApprovedAt)
}

func TestResetOwner_ClearsBothStampSets(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()
	owner := env.seedOwner(t, "reset@example.tn")
	_, err := env.svc.BanOwner(ctx, owner.ID, "spam")
	require.NoError(t, err)

	reset, err := env.svc.ResetOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerPending, reset.OwnerStatus)
	assert.Nil(t, reset.ApprovedAt)
	assert.Nil(t, reset.BannedAt)
	assert.Empty(t, reset.BanReason)
}

func TestOwnerModeration_RejectsNonOwners(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()

	client := domain.NewClient("client@example.tn", "hash", "C", "+21620123456")
	require.NoError(t, env.users.Create(ctx, client))

	_, err := env.svc.ApproveOwner(ctx, client.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = env.svc.BanOwner(ctx, client.ID, "reason")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestApproveBrand(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()
	brand := env.seedPendingBrand(t, "brand@example.tn", "Dar Couture")

	approved, err := env.svc.ApproveBrand(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BrandApproved, approved.Status)
	assert.Contains(t, env.events.events, "brand.approved")

	fresh, err := env.brands.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BrandApproved, fresh.Status)
}

func TestRejectBrand_RequiresReason(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()
	brand := env.seedPendingBrand(t, "reject@example.tn", "Maison Tunis")

	_, err := env.svc.RejectBrand(ctx, brand.ID, "")
	assert.ErrorIs(t, err, ErrReasonRequired)

	rejected, err := env.svc.RejectBrand(ctx, brand.ID, "incomplete profile")
	require.NoError(t, err)
	assert.Equal(t, domain.BrandRejected, rejected.Status)
	assert.Equal(t, "incomplete profile", rejected.RejectReason)

	fresh, err := env.brands.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "incomplete profile", fresh.RejectReason)
}

func TestListPendingOwners(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()

	env.seedOwner(t, "one@example.tn")
	two := env.seedOwner(t, "two@example.tn")
	_, err := env.svc.ApproveOwner(ctx, two.ID)
	require.NoError(t, err)

	pending, total, err := env.svc.ListPendingOwners(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, "one@example.tn", pending[0].Email)
}
