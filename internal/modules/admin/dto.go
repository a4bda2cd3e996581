package admin

import "brandmarket/internal/domain"

type BanOwnerRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RejectBrandRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=60"`
}

type UserListFilter struct {
	Role        string `form:"role"`
	OwnerStatus string `form:"owner_status"`
}

type UserListResponse struct {
	Users []*domain.User `json:"users"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type BrandListResponse struct {
	Brands []*domain.Brand `json:"brands"`
	Total  int             `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

type StatisticsResponse struct {
	TotalUsers     int `json:"total_users"`
	TotalClients   int `json:"total_clients"`
	TotalOwners    int `json:"total_owners"`
	PendingOwners  int `json:"pending_owners"`
	TotalBrands    int `json:"total_brands"`
	PendingBrands  int `json:"pending_brands"`
	ApprovedBrands int `json:"approved_brands"`
	TotalProducts  int `json:"total_products"`
	UnreadMessages int `json:"unread_messages"`
}
