package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandmarket/internal/database"
	"brandmarket/internal/domain"
	"brandmarket/internal/repository"
)

func newGateEnv(t *testing.T) (*AccountGate, *repository.UserRepository) {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	users := repository.NewUserRepository(db)
	return NewAccountGate(users), users
}

func seedUser(t *testing.T, users *repository.UserRepository, u *domain.User) *domain.User {
	t.Helper()
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

// gateRouter injects the given user id the way JWTAuth would, then applies
// the gate middleware under test.
func gateRouter(userID int64, gate gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	router.Use(gate)
	router.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"reached": true})
	})
	return router
}

func hitGate(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
	return w
}

func TestRequireVerified_UnverifiedClientRejected(t *testing.T) {
	gate, users := newGateEnv(t)
	u := seedUser(t, users, domain.NewClient("amine@example.com", "hash", "Amine", "+21622123456"))

	w := hitGate(gateRouter(u.ID, gate.RequireVerified()))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "EMAIL_NOT_VERIFIED")
}

func TestRequireVerified_VerifiedClientPasses(t *testing.T) {
	gate, users := newGateEnv(t)
	u := domain.NewClient("amine@example.com", "hash", "Amine", "+21622123456")
	u.EmailVerified = true
	seedUser(t, users, u)

	w := hitGate(gateRouter(u.ID, gate.RequireVerified()))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireVerified_BannedOwnerSeesReason(t *testing.T) {
	gate, users := newGateEnv(t)
	u := domain.NewBrandOwner("sana@example.com", "hash", "Sana", "+21655123456")
	u.EmailVerified = true
	u.OwnerStatus = domain.OwnerBanned
	u.BanReason = "counterfeit listings"
	seedUser(t, users, u)

	w := hitGate(gateRouter(u.ID, gate.RequireVerified()))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ACCOUNT_BANNED")
	assert.Contains(t, w.Body.String(), "counterfeit listings")
}

func TestRequireVerified_AdminBypassesVerification(t *testing.T) {
	gate, users := newGateEnv(t)
	u := seedUser(t, users, domain.NewAdmin("root@example.com", "hash", "Root"))

	w := hitGate(gateRouter(u.ID, gate.RequireVerified()))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireVerified_UnknownAccount(t *testing.T) {
	gate, _ := newGateEnv(t)

	w := hitGate(gateRouter(9999, gate.RequireVerified()))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireApprovedOwner_PendingRejected(t *testing.T) {
	gate, users := newGateEnv(t)
	u := domain.NewBrandOwner("sana@example.com", "hash", "Sana", "+21655123456")
	u.EmailVerified = true
	seedUser(t, users, u)

	w := hitGate(gateRouter(u.ID, gate.RequireApprovedOwner()))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "OWNER_NOT_APPROVED")
}

func TestRequireApprovedOwner_ApprovedPasses(t *testing.T) {
	gate, users := newGateEnv(t)
	u := domain.NewBrandOwner("sana@example.com", "hash", "Sana", "+21655123456")
	u.EmailVerified = true
	u.OwnerStatus = domain.OwnerApproved
	seedUser(t, users, u)

	w := hitGate(gateRouter(u.ID, gate.RequireApprovedOwner()))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireApprovedOwner_ClientRejected(t *testing.T) {
	gate, users := newGateEnv(t)
	u := domain.NewClient("amine@example.com", "hash", "Amine", "+21622123456")
	u.EmailVerified = true
	seedUser(t, users, u)

	w := hitGate(gateRouter(u.ID, gate.RequireApprovedOwner()))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}
