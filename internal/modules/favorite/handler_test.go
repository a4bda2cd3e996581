package favorite

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandmarket/internal/database"
	"brandmarket/internal/domain"
	"brandmarket/internal/repository"
)

func newFavoriteRouter(t *testing.T) (*gin.Engine, *repository.UserRepository, *repository.BrandRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	users := repository.NewUserRepository(db)
	brands := repository.NewBrandRepository(db)
	handler := NewHandler(repository.NewFavoriteRepository(db), brands)

	r := gin.New()
	api := r.Group("/api")
	// stand-in for the JWT middleware
	api.Use(func(c *gin.Context) {
		if id, err := strconv.ParseInt(c.GetHeader("X-Test-User-ID"), 10, 64); err == nil {
			c.Set("user_id", id)
		}
		c.Set("role", c.GetHeader("X-Test-Role"))
	})
	handler.RegisterRoutes(api)
	return r, users, brands
}

func seedClientAndBrand(t *testing.T, users *repository.UserRepository, brands *repository.BrandRepository) (*domain.User, *domain.Brand) {
	t.Helper()
	ctx := context.Background()

	client := domain.NewClient("client@example.tn", "hash", "Client", "+21620123456")
	client.EmailVerified = true
	require.NoError(t, users.Create(ctx, client))

	owner := domain.NewBrandOwner("owner@example.tn", "hash", "Owner", "+21621234567")
	owner.OwnerStatus = domain.OwnerApproved
	require.NoError(t, users.Create(ctx, owner))

	brand := &domain.Brand{OwnerID: owner.ID, Name: "Dar Couture", Status: domain.BrandPending}
	require.NoError(t, brands.Create(ctx, brand))
	require.NoError(t, brands.UpdateStatus(ctx, brand.ID, domain.BrandApproved, ""))
	return client, brand
}

func doFavoriteRequest(r *gin.Engine, method, path string, user *domain.User, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if user != nil {
		req.Header.Set("X-Test-User-ID", strconv.FormatInt(user.ID, 10))
		req.Header.Set("X-Test-Role", role)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFavorites_AddCheckRemove(t *testing.T) {
	r, users, brands := newFavoriteRouter(t)
	client, brand := seedClientAndBrand(t, users, brands)
	path := "/api/favorites/" + strconv.FormatInt(brand.ID, 10)

	w := doFavoriteRequest(r, http.MethodPost, path, client, "client")
	assert.Equal(t, http.StatusCreated, w.Code)

	// duplicate save conflicts
	w = doFavoriteRequest(r, http.MethodPost, path, client, "client")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doFavoriteRequest(r, http.MethodGet, path+"/check", client, "client")
	require.Equal(t, http.StatusOK, w.Code)
	var check struct {
		Data CheckFavoriteResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	assert.True(t, check.Data.IsFavorite)

	w = doFavoriteRequest(r, http.MethodDelete, path, client, "client")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doFavoriteRequest(r, http.MethodDelete, path, client, "client")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavorites_UnknownBrand(t *testing.T) {
	r, users, brands := newFavoriteRouter(t)
	client, _ := seedClientAndBrand(t, users, brands)

	w := doFavoriteRequest(r, http.MethodPost, "/api/favorites/9999", client, "client")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavorites_OwnersRejected(t *testing.T) {
	r, users, brands := newFavoriteRouter(t)
	_, brand := seedClientAndBrand(t, users, brands)

	owner, err := users.GetByEmail(context.Background(), "owner@example.tn")
	require.NoError(t, err)

	w := doFavoriteRequest(r, http.MethodPost, "/api/favorites/"+strconv.FormatInt(brand.ID, 10), owner, "brand_owner")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
