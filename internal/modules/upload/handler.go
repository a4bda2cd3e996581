package upload

import (
	"errors"
	"net/http"

	"brandmarket/internal/domain"
	"brandmarket/internal/pkg/response"
	"brandmarket/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  *Service
	userRepo *repository.UserRepository
}

func NewHandler(service *Service, userRepo *repository.UserRepository) *Handler {
	return &Handler{service: service, userRepo: userRepo}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("", h.Upload)
		uploads.GET("", h.ListMine)
		uploads.DELETE("/:id", h.Delete)
	}
}

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

// Upload handles POST /api/uploads
// @Summary	Upload an image
// @Description	Accepts a multipart "file" field, jpeg or png only. The image is downscaled and re-encoded before storage.
// @Tags	Upload
// @Security	BearerAuth
// @Accept	multipart/form-data
// @Param	file	formData	file	true	"image file, max 10MB"
// @Success	201	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{} "not an image or too large"
// @Router	/uploads [POST]
func (h *Handler) Upload(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A \"file\" field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to read file")
		return
	}
	defer file.Close()

	u, err := h.service.Upload(c.Request.Context(), user.ID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAnImage):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Only jpeg and png images are accepted")
		case errors.Is(err, ErrFileTooBig):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "File exceeds the 10MB limit")
		default:
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store file")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"upload": u})
}

// ListMine handles GET /api/uploads
func (h *Handler) ListMine(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	uploads, err := h.service.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list uploads")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"uploads": uploads})
}

// Delete handles DELETE /api/uploads/:id
func (h *Handler) Delete(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Upload not found")
		case errors.Is(err, ErrNotYourFile):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Upload belongs to another user")
		default:
			response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete upload")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
