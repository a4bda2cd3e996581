package admin

import (
	"errors"
	"net/http"
	"strconv"

	"brandmarket/internal/pkg/response"
	"brandmarket/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already behind JWTAuth + AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	owners := admin.Group("/owners")
	{
		owners.GET("/pending", h.ListPendingOwners)
		owners.POST("/:id/approve", h.ApproveOwner)
		owners.POST("/:id/ban", h.BanOwner)
		owners.POST("/:id/reset", h.ResetOwner)
	}

	brands := admin.Group("/brands")
	{
		brands.GET("/pending", h.ListPendingBrands)
		brands.POST("/:id/approve", h.ApproveBrand)
		brands.POST("/:id/reject", h.RejectBrand)
	}

	admin.GET("/users", h.ListUsers)
	admin.GET("/stats", h.GetStatistics)

	categories := admin.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	contact := admin.Group("/contact")
	{
		contact.GET("", h.ListContactMessages)
		contact.POST("/:id/read", h.MarkContactRead)
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

/* ---------- OWNERS ---------- */

// ListPendingOwners handles GET /api/admin/owners/pending
// @Summary	Owners waiting for review
// @Tags	Admin
// @Security	BearerAuth
// @Router	/admin/owners/pending [GET]
func (h *Handler) ListPendingOwners(c *gin.Context) {
	page, limit := pageParams(c)
	owners, total, err := h.service.ListPendingOwners(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list pending owners")
		return
	}
	response.Success(c, http.StatusOK, UserListResponse{Users: owners, Total: total, Page: page, Limit: limit})
}

// ApproveOwner handles POST /api/admin/owners/:id/approve
func (h *Handler) ApproveOwner(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	owner, err := h.service.ApproveOwner(c.Request.Context(), id)
	if err != nil {
		h.ownerError(c, err, "APPROVE_FAILED", "Failed to approve owner")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"owner": owner})
}

// BanOwner handles POST /api/admin/owners/:id/ban
// @Summary	Ban a brand owner
// @Description	The reason is stored on the account and shown to the owner on signin.
// @Tags	Admin
// @Security	BearerAuth
// @Router	/admin/owners/{id}/ban [POST]
func (h *Handler) BanOwner(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req BanOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason is required")
		return
	}

	owner, err := h.service.BanOwner(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.ownerError(c, err, "BAN_FAILED", "Failed to ban owner")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"owner": owner})
}

// ResetOwner handles POST /api/admin/owners/:id/reset
func (h *Handler) ResetOwner(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	owner, err := h.service.ResetOwner(c.Request.Context(), id)
	if err != nil {
		h.ownerError(c, err, "RESET_FAILED", "Failed to reset owner")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"owner": owner})
}

func (h *Handler) ownerError(c *gin.Context, err error, failCode, failMsg string) {
	switch {
	case isNotFound(err):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "User is not a brand owner")
	case errors.Is(err, ErrReasonRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason is required")
	default:
		response.Error(c, http.StatusInternalServerError, failCode, failMsg)
	}
}

/* ---------- BRANDS ---------- */

// ListPendingBrands handles GET /api/admin/brands/pending
func (h *Handler) ListPendingBrands(c *gin.Context) {
	page, limit := pageParams(c)
	brands, total, err := h.service.ListPendingBrands(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list pending brands")
		return
	}
	response.Success(c, http.StatusOK, BrandListResponse{Brands: brands, Total: total, Page: page, Limit: limit})
}

// ApproveBrand handles POST /api/admin/brands/:id/approve
func (h *Handler) ApproveBrand(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	brand, err := h.service.ApproveBrand(c.Request.Context(), id)
	if err != nil {
		h.brandError(c, err, "APPROVE_FAILED", "Failed to approve brand")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"brand": brand})
}

// RejectBrand handles POST /api/admin/brands/:id/reject
func (h *Handler) RejectBrand(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RejectBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason is required")
		return
	}

	brand, err := h.service.RejectBrand(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.brandError(c, err, "REJECT_FAILED", "Failed to reject brand")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"brand": brand})
}

func (h *Handler) brandError(c *gin.Context, err error, failCode, failMsg string) {
	switch {
	case isNotFound(err):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Brand not found")
	case errors.Is(err, ErrReasonRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Reason is required")
	default:
		response.Error(c, http.StatusInternalServerError, failCode, failMsg)
	}
}

/* ---------- USERS / STATS ---------- */

// ListUsers handles GET /api/admin/users
// @Summary	List users with role/status filters
// @Tags	Admin
// @Security	BearerAuth
// @Param	role	query	string	false	"client | brand_owner | admin"
// @Param	owner_status	query	string	false	"pending | approved | banned"
// @Router	/admin/users [GET]
func (h *Handler) ListUsers(c *gin.Context) {
	var filter UserListFilter
	_ = c.ShouldBindQuery(&filter)

	page, limit := pageParams(c)
	users, total, err := h.service.ListUsers(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list users")
		return
	}
	response.Success(c, http.StatusOK, UserListResponse{Users: users, Total: total, Page: page, Limit: limit})
}

// GetStatistics handles GET /api/admin/stats
func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to collect statistics")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

/* ---------- CATEGORIES ---------- */

// CreateCategory handles POST /api/admin/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, ErrCategoryNameTaken) {
			response.Error(c, http.StatusConflict, "NAME_TAKEN", "A category with this name already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create category")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory handles PUT /api/admin/categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case isNotFound(err):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		case errors.Is(err, ErrCategoryNameTaken):
			response.Error(c, http.StatusConflict, "NAME_TAKEN", "A category with this name already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update category")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles DELETE /api/admin/categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		if isNotFound(err) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete category")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

/* ---------- CONTACT INBOX ---------- */

// ListContactMessages handles GET /api/admin/contact
func (h *Handler) ListContactMessages(c *gin.Context) {
	onlyUnread := c.Query("unread") == "true"
	page, limit := pageParams(c)

	messages, total, err := h.service.ListContactMessages(c.Request.Context(), onlyUnread, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list messages")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"messages": messages,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// MarkContactRead handles POST /api/admin/contact/:id/read
func (h *Handler) MarkContactRead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.MarkContactRead(c.Request.Context(), id); err != nil {
		if isNotFound(err) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Message not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark message as read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}
