package domain

import "time"

type BrandStatus string

const (
	BrandPending  BrandStatus = "pending"
	BrandApproved BrandStatus = "approved"
	BrandRejected BrandStatus = "rejected"
)

// Brand is owned by exactly one brand_owner user. Its moderation status is
// independent of the owner's account status.
type Brand struct {
	ID           int64       `json:"id"`
	OwnerID      int64       `json:"owner_id"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	LogoURL      string      `json:"logo_url,omitempty"`
	Status       BrandStatus `json:"status"`
	RejectReason string      `json:"reject_reason,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	Products []Product `json:"products,omitempty" gorm:"-"`
}
