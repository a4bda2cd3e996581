package auth

import (
	"errors"
	"net/http"

	"brandmarket/internal/pkg/response"
	"brandmarket/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/signin", h.Signin)
		authGroup.POST("/verify-email", h.VerifyEmail)
		authGroup.POST("/resend-verification", h.ResendVerification)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.GetMe)
}

// RegisterAdminAuthRoutes mounts the admin login on the public router; it is
// the only admin route that cannot sit behind the admin middleware.
func (h *Handler) RegisterAdminAuthRoutes(api *gin.RouterGroup) {
	api.POST("/admin/auth/signin", h.SigninAdmin)
}

// Signup registers a new client or brand owner account.
// @Summary	Sign up
// @Description	Creates a client or brand_owner account, sends a verification code and returns the user with a token pair. Brand owners start with owner_status=pending and no brand.
// @Tags	Auth
// @Param	request	body	SignupRequest	true	"name, email, phone (+216...), password, role"
// @Success	201	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{} "validation failed"
// @Failure	409	{object}	map[string]interface{} "email already registered"
// @Router	/auth/signup [POST]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	user, tokens, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "This email is already registered")
		case errors.Is(err, ErrInvalidPhone):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed",
				map[string]string{"Phone": "tn_phone"})
		default:
			response.Error(c, http.StatusInternalServerError, "SIGNUP_FAILED", "Failed to create account")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":         user,
		"token":        tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// Signin authenticates a client or brand owner.
// @Summary	Sign in
// @Description	Authenticates by email and password. Admin accounts always get 403 and are directed to the admin login.
// @Tags	Auth
// @Param	request	body	SigninRequest	true	"email, password"
// @Success	200	{object}	map[string]interface{}
// @Failure	401	{object}	map[string]interface{} "wrong email or password"
// @Failure	403	{object}	map[string]interface{} "admin account or banned owner"
// @Router	/auth/signin [POST]
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, tokens, err := h.service.Signin(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrAdminLoginOnly):
			response.Error(c, http.StatusForbidden, "ADMIN_LOGIN_ONLY", "Admin accounts must sign in through the admin login")
		case errors.Is(err, ErrAccountBanned):
			response.Error(c, http.StatusForbidden, "ACCOUNT_BANNED", "This account has been banned")
		default:
			response.Error(c, http.StatusInternalServerError, "SIGNIN_FAILED", "Failed to sign in")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":         user,
		"token":        tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// SigninAdmin authenticates the admin panel.
// @Summary	Admin sign in
// @Description	Accepts admin accounts only. Every other role gets the same 401 as a wrong password.
// @Tags	Auth
// @Param	request	body	SigninRequest	true	"email, password"
// @Success	200	{object}	map[string]interface{}
// @Failure	401	{object}	map[string]interface{}
// @Router	/admin/auth/signin [POST]
func (h *Handler) SigninAdmin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, tokens, err := h.service.SigninAdmin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SIGNIN_FAILED", "Failed to sign in")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":         user,
		"token":        tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// VerifyEmail confirms a 6-digit verification code and returns the
// now-verified user.
// @Summary	Verify email
// @Tags	Auth
// @Param	request	body	VerifyEmailRequest	true	"email, code"
// @Success	200	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{} "no code, expired or wrong code"
// @Failure	404	{object}	map[string]interface{} "unknown email"
// @Failure	409	{object}	map[string]interface{} "already verified"
// @Failure	429	{object}	map[string]interface{} "blocked, retryAfter in minutes"
// @Router	/auth/verify-email [POST]
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		var blocked *VerificationBlockedError
		var invalid *InvalidCodeError
		switch {
		case errors.As(err, &blocked):
			response.RateLimited(c, "VERIFICATION_BLOCKED", "Too many failed attempts, try again later", blocked.RetryAfterMinutes, "minutes")
		case errors.As(err, &invalid):
			response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_CODE", "Verification code is incorrect",
				gin.H{"remainingAttempts": invalid.RemainingAttempts})
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "No account with this email")
		case errors.Is(err, ErrAlreadyVerified):
			response.Error(c, http.StatusConflict, "ALREADY_VERIFIED", "Email is already verified")
		case errors.Is(err, ErrNoActiveCode):
			response.Error(c, http.StatusBadRequest, "NO_ACTIVE_CODE", "No verification code has been issued, request a new one")
		case errors.Is(err, ErrCodeExpired):
			response.Error(c, http.StatusBadRequest, "CODE_EXPIRED", "Verification code expired, request a new one")
		case errors.Is(err, ErrInvalidCodeFormat):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Code must be 6 digits")
		default:
			response.Error(c, http.StatusInternalServerError, "VERIFY_FAILED", "Failed to verify email")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ResendVerification issues a fresh verification code. A successful resend
// resets the attempt counter and lifts any open block.
// @Summary	Resend verification code
// @Tags	Auth
// @Param	request	body	ResendVerificationRequest	true	"email"
// @Success	200	{object}	map[string]interface{}
// @Failure	429	{object}	map[string]interface{} "cooldown, retryAfter in seconds"
// @Failure	500	{object}	map[string]interface{} "email dispatch failed"
// @Router	/auth/resend-verification [POST]
func (h *Handler) ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.ResendVerification(c.Request.Context(), req.Email)
	if err != nil {
		var cooldown *ResendCooldownError
		switch {
		case errors.As(err, &cooldown):
			response.RateLimited(c, "RESEND_COOLDOWN", "A code was sent recently, wait before requesting another", cooldown.RetryAfterSeconds, "seconds")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "No account with this email")
		case errors.Is(err, ErrAlreadyVerified):
			response.Error(c, http.StatusConflict, "ALREADY_VERIFIED", "Email is already verified")
		case errors.Is(err, ErrMailDispatch):
			response.Error(c, http.StatusInternalServerError, "MAIL_SEND_FAILED", "Could not send the verification email, try again later")
		default:
			response.Error(c, http.StatusInternalServerError, "RESEND_FAILED", "Failed to resend verification code")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sent": true})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	tokens, err := h.service.RefreshSession(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRefreshToken), errors.Is(err, ErrRefreshTokenReused):
			response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
		case errors.Is(err, ErrAccountBanned):
			response.Error(c, http.StatusForbidden, "ACCOUNT_BANNED", "This account has been banned")
		default:
			response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":        tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to log out")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true})
}

// GetMe returns the current user, with the brand populated for owners.
// @Summary	Current user
// @Tags	Auth
// @Security	BearerAuth
// @Success	200	{object}	map[string]interface{}
// @Router	/auth/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, brand, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "ME_FAILED", "Failed to load profile")
		return
	}

	payload := gin.H{"user": user}
	if brand != nil {
		payload["brand"] = brand
	}
	response.Success(c, http.StatusOK, payload)
}
