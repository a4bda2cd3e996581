package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandmarket/internal/domain"
	"brandmarket/internal/repository"
)

func TestCreateCategory_SlugAndUniqueness(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()

	category, err := env.svc.CreateCategory(ctx, "Traditional Wear")
	require.NoError(t, err)
	assert.Equal(t, "traditional-wear", category.Slug)

	_, err = env.svc.CreateCategory(ctx, "traditional wear")
	assert.ErrorIs(t, err, ErrCategoryNameTaken)
}

func TestUpdateCategory(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()

	category, err := env.svc.CreateCategory(ctx, "Shoes")
	require.NoError(t, err)
	_, err = env.svc.CreateCategory(ctx, "Bags")
	require.NoError(t, err)

	_, err = env.svc.UpdateCategory(ctx, category.ID, "Bags")
	assert.ErrorIs(t, err, ErrCategoryNameTaken)

	updated, err := env.svc.UpdateCategory(ctx, category.ID, "Leather Shoes")
	require.NoError(t, err)
	assert.Equal(t, "leather-shoes", updated.Slug)

	_, err = env.svc.UpdateCategory(ctx, 9999, "Ghost")
	assert.True(t, isNotFound(err))
}

func TestDeleteCategory(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()

	category, err := env.svc.CreateCategory(ctx, "Accessories")
	require.NoError(t, err)
	require.NoError(t, env.svc.DeleteCategory(ctx, category.ID))
	assert.True(t, isNotFound(env.svc.DeleteCategory(ctx, category.ID)))
}

func TestListUsers_Filters(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()

	client := domain.NewClient("client@example.tn", "hash", "C", "+21620123456")
	require.NoError(t, env.users.Create(ctx, client))
	env.seedOwner(t, "owner@example.tn")

	users, total, err := env.svc.ListUsers(ctx, UserListFilter{Role: "client"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "client@example.tn", users[0].Email)
	assert.Empty(t, users[0].PasswordHash)

	_, total, err = env.svc.ListUsers(ctx, UserListFilter{Role: "brand_owner", OwnerStatus: "pending"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestGetStatistics(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()

	client := domain.NewClient("client@example.tn", "hash", "C", "+21620123456")
	require.NoError(t, env.users.Create(ctx, client))
	brand := env.seedPendingBrand(t, "owner@example.tn", "Dar Couture")
	_, err := env.svc.ApproveBrand(ctx, brand.ID)
	require.NoError(t, err)

	contacts := repository.NewContactRepository(env.users.DB())
	require.NoError(t, contacts.Create(ctx, &domain.ContactMessage{
		Name:  "Visitor",
		Email: "visitor@example.tn",
		Body:  "Where do I find winter kaftans?",
	}))

	stats, err := env.svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.TotalClients)
	assert.Equal(t, 1, stats.TotalOwners)
	assert.Equal(t, 1, stats.TotalBrands)
	assert.Equal(t, 1, stats.ApprovedBrands)
	assert.Equal(t, 0, stats.PendingBrands)
	assert.Equal(t, 1, stats.UnreadMessages)
}

func TestContactInbox(t *testing.T) {
	env := newAdminEnv(t)
	ctx := context.Background()

	contacts := repository.NewContactRepository(env.users.DB())
	msg := &domain.ContactMessage{Name: "Visitor", Email: "v@example.tn", Body: "A long enough question."}
	require.NoError(t, contacts.Create(ctx, msg))

	messages, total, err := env.svc.ListContactMessages(ctx, true, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, messages, 1)

	require.NoError(t, env.svc.MarkContactRead(ctx, msg.ID))
	_, total, err = env.svc.ListContactMessages(ctx, true, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	assert.True(t, isNotFound(env.svc.MarkContactRead(ctx, 9999)))
}
