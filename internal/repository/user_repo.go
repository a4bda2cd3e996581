package repository

import (
	"context"
	"strings"
	"time"

	"brandmarket/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Email         string    `gorm:"column:email;uniqueIndex"`
	PasswordHash  string    `gorm:"column:password_hash"`
	Role          string    `gorm:"column:role;index"`
	Name          string    `gorm:"column:name"`
	Phone         *string   `gorm:"column:phone"`
	EmailVerified bool      `gorm:"column:email_verified"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`

	OwnerStatus *string    `gorm:"column:owner_status;index"`
	BrandID     *int64     `gorm:"column:brand_id"`
	ApprovedAt  *time.Time `gorm:"column:approved_at"`
	BannedAt    *time.Time `gorm:"column:banned_at"`
	BanReason   *string    `gorm:"column:ban_reason"`

	VerifyCodeHash     *string    `gorm:"column:verify_code_hash"`
	VerifyExpiresAt    *time.Time `gorm:"column:verify_expires_at"`
	VerifyAttempts     int        `gorm:"column:verify_attempts"`
	VerifyBlockedUntil *time.Time `gorm:"column:verify_blocked_until"`
	VerifyLastSentAt   *time.Time `gorm:"column:verify_last_sent_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var phone, status, banReason, codeHash string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.OwnerStatus != nil {
		status = *m.OwnerStatus
	}
	if m.BanReason != nil {
		banReason = *m.BanReason
	}
	if m.VerifyCodeHash != nil {
		codeHash = *m.VerifyCodeHash
	}

	return &domain.User{
		ID:            m.ID,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Role:          domain.UserRole(m.Role),
		Name:          m.Name,
		Phone:         phone,
		EmailVerified: m.EmailVerified,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		OwnerStatus:   domain.OwnerStatus(status),
		BrandID:       m.BrandID,
		ApprovedAt:    m.ApprovedAt,
		BannedAt:      m.BannedAt,
		BanReason:     banReason,
		Verification: domain.VerificationState{
			CodeHash:     codeHash,
			ExpiresAt:    m.VerifyExpiresAt,
			Attempts:     m.VerifyAttempts,
			BlockedUntil: m.VerifyBlockedUntil,
			LastSentAt:   m.VerifyLastSentAt,
		},
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var phone, status, banReason, codeHash *string
	if u.Phone != "" {
		v := u.Phone
		phone = &v
	}
	if u.OwnerStatus != "" {
		v := string(u.OwnerStatus)
		status = &v
	}
	if u.BanReason != "" {
		v := u.BanReason
		banReason = &v
	}
	if u.Verification.CodeHash != "" {
		v := u.Verification.CodeHash
		codeHash = &v
	}

	return userModel{
		ID:                 u.ID,
		Email:              email,
		PasswordHash:       u.PasswordHash,
		Role:               string(u.Role),
		Name:               u.Name,
		Phone:              phone,
		EmailVerified:      u.EmailVerified,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
		OwnerStatus:        status,
		BrandID:            u.BrandID,
		ApprovedAt:         u.ApprovedAt,
		BannedAt:           u.BannedAt,
		BanReason:          banReason,
		VerifyCodeHash:     codeHash,
		VerifyExpiresAt:    u.Verification.ExpiresAt,
		VerifyAttempts:     u.Verification.Attempts,
		VerifyBlockedUntil: u.Verification.BlockedUntil,
		VerifyLastSentAt:   u.Verification.LastSentAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	m := toUserModel(u)
	m.UpdatedAt = time.Now()
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

// UpdateVerification writes only the verification columns of the user row.
func (r *UserRepository) UpdateVerification(ctx context.Context, userID int64, v domain.VerificationState, emailVerified bool) error {
	var codeHash *string
	if v.CodeHash != "" {
		h := v.CodeHash
		codeHash = &h
	}
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Updates(map[string]any{
		"verify_code_hash":     codeHash,
		"verify_expires_at":    v.ExpiresAt,
		"verify_attempts":      v.Attempts,
		"verify_blocked_until": v.BlockedUntil,
		"verify_last_sent_at":  v.LastSentAt,
		"email_verified":       emailVerified,
		"updated_at":           time.Now(),
	}).Error
}

// SetBrandID links an owner account to its brand.
func (r *UserRepository) SetBrandID(ctx context.Context, userID, brandID int64) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Updates(map[string]any{
		"brand_id":   brandID,
		"updated_at": time.Now(),
	}).Error
}

type UserFilter struct {
	Role        string
	OwnerStatus string
	Limit       int
	Offset      int
}

func (r *UserRepository) List(ctx context.Context, f UserFilter) ([]*domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&userModel{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.OwnerStatus != "" {
		q = q.Where("owner_status = ?", f.OwnerStatus)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	var models []userModel
	if err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, toDomainUser(m))
	}
	return users, total, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *UserRepository) DB() *gorm.DB { return r.db }
