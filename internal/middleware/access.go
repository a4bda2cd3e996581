package middleware

import (
	"net/http"

	"brandmarket/internal/domain"
	"brandmarket/internal/pkg/response"
	"brandmarket/internal/repository"

	"github.com/gin-gonic/gin"
)

// AccountGate loads the current account row and enforces its state on each
// request. Tokens outlive moderation decisions, so a ban or an unverified
// email must be checked against the database, not the claims.
type AccountGate struct {
	users *repository.UserRepository
}

func NewAccountGate(users *repository.UserRepository) *AccountGate {
	return &AccountGate{users: users}
}

func (g *AccountGate) load(c *gin.Context) (*domain.User, bool) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		c.Abort()
		return nil, false
	}
	user, err := g.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists")
		c.Abort()
		return nil, false
	}
	return user, true
}

// RequireVerified rejects banned owners and unverified emails. Admins pass
// unconditionally.
func (g *AccountGate) RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := g.load(c)
		if !ok {
			return
		}

		switch state := user.AccountState().(type) {
		case domain.AdminAccount:
		case domain.OwnerAccount:
			if state.Status == domain.OwnerBanned {
				response.ErrorWithDetails(c, http.StatusForbidden, "ACCOUNT_BANNED", "Your account has been banned", gin.H{"reason": state.BanReason})
				c.Abort()
				return
			}
			if !state.EmailVerified {
				response.Error(c, http.StatusForbidden, "EMAIL_NOT_VERIFIED", "Verify your email to continue")
				c.Abort()
				return
			}
		case domain.ClientAccount:
			if !state.EmailVerified {
				response.Error(c, http.StatusForbidden, "EMAIL_NOT_VERIFIED", "Verify your email to continue")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// RequireApprovedOwner additionally demands an approved brand_owner account.
func (g *AccountGate) RequireApprovedOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := g.load(c)
		if !ok {
			return
		}

		state, isOwner := user.AccountState().(domain.OwnerAccount)
		if !isOwner {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Brand owner account required")
			c.Abort()
			return
		}
		if state.Status == domain.OwnerBanned {
			response.ErrorWithDetails(c, http.StatusForbidden, "ACCOUNT_BANNED", "Your account has been banned", gin.H{"reason": state.BanReason})
			c.Abort()
			return
		}
		if !state.EmailVerified {
			response.Error(c, http.StatusForbidden, "EMAIL_NOT_VERIFIED", "Verify your email to continue")
			c.Abort()
			return
		}
		if state.Status != domain.OwnerApproved {
			response.Error(c, http.StatusForbidden, "OWNER_NOT_APPROVED", "Your account is awaiting approval")
			c.Abort()
			return
		}

		c.Next()
	}
}
