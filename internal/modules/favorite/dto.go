package favorite

import (
	"time"

	"brandmarket/internal/domain"
)

type FavoriteResponse struct {
	ID        int64       `json:"id"`
	BrandID   int64       `json:"brand_id"`
	Brand     *BrandBrief `json:"brand,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// BrandBrief is the short card shown in the favorites list.
type BrandBrief struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	Status      string `json:"status"`
}

type FavoriteListResponse struct {
	Favorites  []FavoriteResponse `json:"favorites"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int                `json:"total_pages"`
}

type CheckFavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

func ToFavoriteResponse(f *domain.Favorite) FavoriteResponse {
	resp := FavoriteResponse{
		ID:        f.ID,
		BrandID:   f.BrandID,
		CreatedAt: f.CreatedAt,
	}
	if f.Brand != nil {
		resp.Brand = &BrandBrief{
			ID:          f.Brand.ID,
			Name:        f.Brand.Name,
			Description: f.Brand.Description,
			LogoURL:     f.Brand.LogoURL,
			Status:      string(f.Brand.Status),
		}
	}
	return resp
}

func ToFavoriteListResponse(favorites []domain.Favorite, total int64, page, perPage int) FavoriteListResponse {
	items := make([]FavoriteResponse, len(favorites))
	for i, f := range favorites {
		items[i] = ToFavoriteResponse(&f)
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	return FavoriteListResponse{
		Favorites:  items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}
