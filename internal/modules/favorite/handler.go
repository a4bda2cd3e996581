package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"brandmarket/internal/domain"
	"brandmarket/internal/pkg/response"
	"brandmarket/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler lets clients save brands. Thin enough that it talks to the
// repositories directly, no service layer in between.
type Handler struct {
	repo      repository.FavoriteRepository
	brandRepo *repository.BrandRepository
}

func NewHandler(repo repository.FavoriteRepository, brandRepo *repository.BrandRepository) *Handler {
	return &Handler{repo: repo, brandRepo: brandRepo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.GetFavorites)
		favorites.POST("/:brandId", h.AddFavorite)
		favorites.DELETE("/:brandId", h.RemoveFavorite)
		favorites.GET("/:brandId/check", h.CheckFavorite)
	}
}

func (h *Handler) identify(c *gin.Context) (int64, bool) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return 0, false
	}
	if c.GetString("role") != string(domain.RoleClient) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only clients can manage favorites")
		return 0, false
	}
	return userID, true
}

func brandIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("brandId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid brand id")
		return 0, false
	}
	return id, true
}

// GetFavorites handles GET /api/favorites
// @Summary	List the current client's saved brands
// @Tags	Favorite
// @Security	BearerAuth
// @Param	page	query	int	false	"page number"	default(1)
// @Param	per_page	query	int	false	"page size"	default(20)
// @Success	200	{object}	map[string]interface{}
// @Router	/favorites [GET]
func (h *Handler) GetFavorites(c *gin.Context) {
	userID, ok := h.identify(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	favorites, total, err := h.repo.GetByUserID(c.Request.Context(), userID, perPage, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get favorites")
		return
	}

	response.Success(c, http.StatusOK, ToFavoriteListResponse(favorites, total, page, perPage))
}

// AddFavorite handles POST /api/favorites/:brandId
// @Summary	Save a brand
// @Description	Only approved brands can be saved. Saving twice is a conflict.
// @Tags	Favorite
// @Security	BearerAuth
// @Param	brandId	path	int64	true	"brand id"
// @Success	201	{object}	FavoriteResponse
// @Failure	404	{object}	map[string]interface{} "brand not found or not approved"
// @Failure	409	{object}	map[string]interface{} "already saved"
// @Router	/favorites/{brandId} [POST]
func (h *Handler) AddFavorite(c *gin.Context) {
	userID, ok := h.identify(c)
	if !ok {
		return
	}
	brandID, ok := brandIDParam(c)
	if !ok {
		return
	}

	brand, err := h.brandRepo.GetByID(c.Request.Context(), brandID)
	if err != nil || brand.Status != domain.BrandApproved {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Brand not found")
		return
	}

	fav, err := h.repo.Add(c.Request.Context(), userID, brandID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyFavorite) {
			response.Error(c, http.StatusConflict, "ALREADY_FAVORITE", "Brand is already in favorites")
			return
		}
		response.Error(c, http.StatusInternalServerError, "ADD_FAILED", "Failed to add favorite")
		return
	}

	response.Success(c, http.StatusCreated, ToFavoriteResponse(fav))
}

// RemoveFavorite handles DELETE /api/favorites/:brandId
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, ok := h.identify(c)
	if !ok {
		return
	}
	brandID, ok := brandIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.Remove(c.Request.Context(), userID, brandID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Brand is not in favorites")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REMOVE_FAILED", "Failed to remove favorite")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

// CheckFavorite handles GET /api/favorites/:brandId/check
func (h *Handler) CheckFavorite(c *gin.Context) {
	userID, ok := h.identify(c)
	if !ok {
		return
	}
	brandID, ok := brandIDParam(c)
	if !ok {
		return
	}

	exists, err := h.repo.Exists(c.Request.Context(), userID, brandID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CHECK_FAILED", "Failed to check favorite")
		return
	}
	response.Success(c, http.StatusOK, CheckFavoriteResponse{IsFavorite: exists})
}
