package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"brandmarket/internal/domain"
	"brandmarket/internal/pkg/mailer"
	"brandmarket/internal/pkg/validator"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Config carries the verification and session knobs the service needs.
type Config struct {
	VerificationCodePepper string
	VerifyCodeTTL          time.Duration
	VerifyMaxAttempts      int
	VerifyBlockWindow      time.Duration
	VerifyResendCooldown   time.Duration
	RefreshTokenPepper     string
	RefreshTTL             time.Duration
}

// Service contains all business logic for authentication
type Service struct {
	users         UserRepositoryInterface
	refreshTokens RefreshTokenRepositoryInterface
	brands        BrandReader
	jwt           jwtService
	mailer        mailer.Mailer
	cfg           Config
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func NewService(
	users UserRepositoryInterface,
	refreshTokens RefreshTokenRepositoryInterface,
	brands BrandReader,
	jwt jwtService,
	m mailer.Mailer,
	cfg Config,
) *Service {
	if cfg.VerifyMaxAttempts <= 0 {
		cfg.VerifyMaxAttempts = 5
	}
	return &Service{
		users:         users,
		refreshTokens: refreshTokens,
		brands:        brands,
		jwt:           jwt,
		mailer:        m,
		cfg:           cfg,
	}
}

// Signup creates a client or brand_owner account, issues a verification code
// and returns the user with a fresh token pair. A failed email dispatch is
// logged but does not fail the signup; the user can resend later.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.User, *TokenPair, error) {
	if !validator.IsTunisianPhone(req.Phone) {
		return nil, nil, ErrInvalidPhone
	}
	if err := s.validateEmailUnique(ctx, req.Email); err != nil {
		return nil, nil, err
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var user *domain.User
	switch req.Role {
	case string(domain.RoleBrandOwner):
		user = domain.NewBrandOwner(email, hashedPassword, req.Name, req.Phone)
	default:
		user = domain.NewClient(email, hashedPassword, req.Name, req.Phone)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	code, err := s.issueVerificationCode(ctx, user, time.Now())
	if err != nil {
		return nil, nil, err
	}
	if mailErr := s.mailer.SendVerificationCode(ctx, user.Email, code); mailErr != nil {
		log.Printf("signup: verification email dispatch failed user_id=%d err=%v", user.ID, mailErr)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, tokens, nil
}

// Signin authenticates a client or brand owner. Admin accounts are always
// rejected here and directed to the admin login.
func (s *Service) Signin(ctx context.Context, req SigninRequest) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if user.Role == domain.RoleAdmin {
		return nil, nil, ErrAdminLoginOnly
	}
	if user.IsBanned() {
		return nil, nil, ErrAccountBanned
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, tokens, nil
}

// SigninAdmin authenticates the admin panel. Non-admin accounts are rejected.
func (s *Service) SigninAdmin(ctx context.Context, req SigninRequest) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if user.Role != domain.RoleAdmin {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, tokens, nil
}

func (s *Service) RefreshSession(ctx context.Context, refreshRaw string) (*TokenPair, error) {
	now := time.Now()
	hash := hashTokenWithPepper(refreshRaw, s.cfg.RefreshTokenPepper)

	current, err := s.refreshTokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if current.IsExpired(now) {
		return nil, ErrInvalidRefreshToken
	}
	if current.IsRevoked() {
		// a revoked token coming back means the raw value leaked somewhere
		if err := s.refreshTokens.RevokeFamily(ctx, current.FamilyID); err != nil {
			return nil, err
		}
		return nil, ErrRefreshTokenReused
	}

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned() {
		if err := s.refreshTokens.RevokeFamily(ctx, current.FamilyID); err != nil {
			return nil, err
		}
		return nil, ErrAccountBanned
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	newRaw, newHash, err := generateOpaqueRefreshToken(s.cfg.RefreshTokenPepper)
	if err != nil {
		return nil, err
	}

	if err := s.refreshTokens.MarkRotated(ctx, current.ID); err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Create(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: newHash,
		FamilyID:  current.FamilyID,
		ExpiresAt: now.Add(s.cfg.RefreshTTL),
	}); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRaw}, nil
}

func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	hash := hashTokenWithPepper(refreshRaw, s.cfg.RefreshTokenPepper)
	token, err := s.refreshTokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.refreshTokens.Revoke(ctx, token.ID)
}

// GetCurrentUser returns the user with their brand populated for owners.
func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, *domain.Brand, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	user.PasswordHash = ""

	var brand *domain.Brand
	if user.Role == domain.RoleBrandOwner && s.brands != nil {
		b, err := s.brands.GetByOwnerID(ctx, user.ID)
		if err == nil {
			brand = b
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
	}
	return user, brand, nil
}

func (s *Service) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshRaw, refreshHash, err := generateOpaqueRefreshToken(s.cfg.RefreshTokenPepper)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Create(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: refreshHash,
		FamilyID:  uuid.NewString(),
		ExpiresAt: time.Now().Add(s.cfg.RefreshTTL),
	}); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshRaw}, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateOpaqueRefreshToken(pepper string) (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	hash = hashTokenWithPepper(raw, pepper)
	return raw, hash, nil
}

func hashTokenWithPepper(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}
