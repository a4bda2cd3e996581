package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"brandmarket/internal/domain"
	"brandmarket/internal/pkg/response"
	"brandmarket/internal/pkg/validator"
	"brandmarket/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  *Service
	userRepo *repository.UserRepository
}

func NewHandler(service *Service, userRepo *repository.UserRepository) *Handler {
	return &Handler{
		service:  service,
		userRepo: userRepo,
	}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/brands", h.ListBrands)
	api.GET("/brands/:id", h.GetBrand)
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/categories", h.ListCategories)
}

func (h *Handler) RegisterOwnerRoutes(owner *gin.RouterGroup) {
	owner.POST("/brands", h.CreateBrand)
	owner.PUT("/brands/:id", h.UpdateBrand)
	owner.GET("/brands/my", h.GetMyBrand)
	owner.POST("/products", h.CreateProduct)
	owner.PUT("/products/:id", h.UpdateProduct)
	owner.DELETE("/products/:id", h.DeleteProduct)
	owner.GET("/products/my", h.ListMyProducts)
}

// currentUser loads the authenticated user set by the JWT middleware.
func (h *Handler) currentUser(c *gin.Context) (*domain.User, bool) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return nil, false
	}
	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists")
		return nil, false
	}
	return user, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 1 {
		offset = (page - 1) * limit
	}
	return limit, offset
}

/* ---------- BRAND HANDLERS ---------- */

// ListBrands handles GET /api/brands
// @Summary	List approved brands
// @Tags	Catalog
// @Param	search	query	string	false	"name substring"
// @Param	page	query	int	false	"page number"
// @Param	limit	query	int	false	"page size, max 100"
// @Success	200	{object}	map[string]interface{}
// @Router	/brands [GET]
func (h *Handler) ListBrands(c *gin.Context) {
	limit, offset := pagination(c)
	brands, total, err := h.service.ListBrands(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list brands")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"brands": brands,
		"pagination": gin.H{
			"page":  offset/limit + 1,
			"limit": limit,
			"total": total,
		},
	})
}

// GetBrand handles GET /api/brands/:id
// @Summary	Get a brand with its active products
// @Tags	Catalog
// @Success	200	{object}	map[string]interface{}
// @Failure	404	{object}	map[string]interface{}
// @Router	/brands/{id} [GET]
func (h *Handler) GetBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	brand, err := h.service.GetBrand(c.Request.Context(), nil, id)
	if err != nil {
		if errors.Is(err, ErrBrandNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Brand not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get brand")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"brand": brand})
}

// CreateBrand handles POST /api/brands
// @Summary	Create the owner's brand
// @Description	One brand per owner. The brand starts pending and waits for admin review; the owner account must already be approved.
// @Tags	Catalog
// @Security	BearerAuth
// @Param	request	body	CreateBrandRequest	true	"name, description, logo_url"
// @Success	201	{object}	map[string]interface{}
// @Failure	403	{object}	map[string]interface{} "not an approved owner"
// @Failure	409	{object}	map[string]interface{} "owner already has a brand or name taken"
// @Router	/brands [POST]
func (h *Handler) CreateBrand(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	brand, err := h.service.CreateBrand(c.Request.Context(), user, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only brand owners can create a brand")
		case errors.Is(err, ErrOwnerNotApproved):
			response.Error(c, http.StatusForbidden, "OWNER_NOT_APPROVED", "Your owner account has not been approved yet")
		case errors.Is(err, ErrBrandExists):
			response.Error(c, http.StatusConflict, "BRAND_EXISTS", "You already have a brand")
		case errors.Is(err, ErrBrandNameTaken):
			response.Error(c, http.StatusConflict, "NAME_TAKEN", "A brand with this name already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create brand")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"brand": brand})
}

// UpdateBrand handles PUT /api/brands/:id
// @Summary	Update own brand
// @Tags	Catalog
// @Security	BearerAuth
// @Router	/brands/{id} [PUT]
func (h *Handler) UpdateBrand(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	brand, err := h.service.UpdateBrand(c.Request.Context(), user, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBrandNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Brand not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this brand")
		case errors.Is(err, ErrBrandNameTaken):
			response.Error(c, http.StatusConflict, "NAME_TAKEN", "A brand with this name already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update brand")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"brand": brand})
}

// GetMyBrand handles GET /api/brands/my
func (h *Handler) GetMyBrand(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	brand, err := h.service.GetMyBrand(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, ErrBrandNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "You have not created a brand yet")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get brand")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"brand": brand})
}

/* ---------- PRODUCT HANDLERS ---------- */

// ListProducts handles GET /api/products
// @Summary	Browse products of approved brands
// @Tags	Catalog
// @Param	category_id	query	int	false	"filter by category"
// @Param	search	query	string	false	"name substring"
// @Router	/products [GET]
func (h *Handler) ListProducts(c *gin.Context) {
	var f repository.ProductFilter
	f.Search = c.Query("search")
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			f.CategoryID = &id
		}
	}
	f.Limit, f.Offset = pagination(c)

	products, total, err := h.service.ListProducts(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list products")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"products": products,
		"pagination": gin.H{
			"page":  f.Offset/f.Limit + 1,
			"limit": f.Limit,
			"total": total,
		},
	})
}

// GetProduct handles GET /api/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), nil, id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get product")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// CreateProduct handles POST /api/products
// @Summary	Add a product to own brand
// @Description	Requires the owner's brand to be approved.
// @Tags	Catalog
// @Security	BearerAuth
// @Failure	403	{object}	map[string]interface{} "brand not approved"
// @Router	/products [POST]
func (h *Handler) CreateProduct(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), user, req)
	if err != nil {
		h.productError(c, err, "CREATE_FAILED", "Failed to create product")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct handles PUT /api/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), user, id, req)
	if err != nil {
		h.productError(c, err, "UPDATE_FAILED", "Failed to update product")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles DELETE /api/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), user, id); err != nil {
		h.productError(c, err, "DELETE_FAILED", "Failed to delete product")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ListMyProducts handles GET /api/products/my
func (h *Handler) ListMyProducts(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	products, err := h.service.ListMyProducts(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, ErrBrandNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "You have not created a brand yet")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list products")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

func (h *Handler) productError(c *gin.Context, err error, failCode, failMsg string) {
	switch {
	case errors.Is(err, ErrBrandNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "You have not created a brand yet")
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	case errors.Is(err, ErrCategoryNotFound):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown category")
	case errors.Is(err, ErrBrandNotApproved):
		response.Error(c, http.StatusForbidden, "BRAND_NOT_APPROVED", "Your brand has not been approved yet")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "This product belongs to another brand")
	default:
		response.Error(c, http.StatusInternalServerError, failCode, failMsg)
	}
}

/* ---------- CATEGORY HANDLERS ---------- */

// ListCategories handles GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list categories")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}
