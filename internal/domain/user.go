package domain

import (
	"errors"
	"time"
)

type UserRole string

const (
	RoleClient     UserRole = "client"
	RoleBrandOwner UserRole = "brand_owner"
	RoleAdmin      UserRole = "admin"
)

type OwnerStatus string

const (
	OwnerPending  OwnerStatus = "pending"
	OwnerApproved OwnerStatus = "approved"
	OwnerBanned   OwnerStatus = "banned"
)

var ErrInvalidAccountState = errors.New("owner fields are only valid for brand_owner accounts")

// VerificationState holds the ephemeral email-verification counters for a
// user. It lives on the user row and is never serialized to clients; the
// plaintext code is never stored, only its hash.
type VerificationState struct {
	CodeHash     string
	ExpiresAt    *time.Time
	Attempts     int
	BlockedUntil *time.Time
	LastSentAt   *time.Time
}

// HasActiveCode reports whether a code has been issued and not yet consumed.
func (v VerificationState) HasActiveCode() bool {
	return v.CodeHash != "" && v.ExpiresAt != nil
}

func (v VerificationState) Blocked(now time.Time) bool {
	return v.BlockedUntil != nil && v.BlockedUntil.After(now)
}

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          UserRole  `json:"role"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// brand_owner only; empty/nil for every other role
	OwnerStatus OwnerStatus `json:"owner_status,omitempty"`
	BrandID     *int64      `json:"brand_id,omitempty"`
	ApprovedAt  *time.Time  `json:"approved_at,omitempty"`
	BannedAt    *time.Time  `json:"banned_at,omitempty"`
	BanReason   string      `json:"ban_reason,omitempty"`

	Verification VerificationState `json:"-"`
}

// NewClient, NewBrandOwner and NewAdmin are the only ways user rows are
// minted, so role/status combinations that Validate rejects cannot be
// constructed in the first place.

func NewClient(email, passwordHash, name, phone string) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Phone:        phone,
		Role:         RoleClient,
	}
}

func NewBrandOwner(email, passwordHash, name, phone string) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Phone:        phone,
		Role:         RoleBrandOwner,
		OwnerStatus:  OwnerPending,
	}
}

func NewAdmin(email, passwordHash, name string) *User {
	return &User{
		Email:         email,
		PasswordHash:  passwordHash,
		Name:          name,
		Role:          RoleAdmin,
		EmailVerified: true,
	}
}

// Validate enforces the role/status invariant: owner fields exist exactly
// when the role is brand_owner. Repositories call it before every write.
func (u *User) Validate() error {
	if u.Role == RoleBrandOwner {
		switch u.OwnerStatus {
		case OwnerPending, OwnerApproved, OwnerBanned:
		default:
			return ErrInvalidAccountState
		}
		return nil
	}
	if u.OwnerStatus != "" || u.BrandID != nil || u.ApprovedAt != nil || u.BannedAt != nil || u.BanReason != "" {
		return ErrInvalidAccountState
	}
	return nil
}

// AccountState is the discriminated view of a user consumed by the access
// gate. Each role maps to exactly one variant.
type AccountState interface {
	isAccountState()
}

type AdminAccount struct{}

type ClientAccount struct {
	EmailVerified bool
}

type OwnerAccount struct {
	EmailVerified bool
	Status        OwnerStatus
	BrandID       *int64
	BanReason     string
}

func (AdminAccount) isAccountState()  {}
func (ClientAccount) isAccountState() {}
func (OwnerAccount) isAccountState()  {}

func (u *User) AccountState() AccountState {
	switch u.Role {
	case RoleAdmin:
		return AdminAccount{}
	case RoleBrandOwner:
		return OwnerAccount{
			EmailVerified: u.EmailVerified,
			Status:        u.OwnerStatus,
			BrandID:       u.BrandID,
			BanReason:     u.BanReason,
		}
	default:
		return ClientAccount{EmailVerified: u.EmailVerified}
	}
}

func (u *User) IsBanned() bool {
	return u.Role == RoleBrandOwner && u.OwnerStatus == OwnerBanned
}
