package domain

import "time"

// RefreshToken is an opaque session token. Only the SHA-256 hash of the raw
// value is stored; on refresh the token is rotated and the old row revoked.
// FamilyID groups a rotation chain so a reused token can revoke the whole
// chain.
type RefreshToken struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	TokenHash string     `json:"-"`
	FamilyID  string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"-"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil || t.UsedAt != nil
}
