package contact

import (
	"net/http"
	"strings"

	"brandmarket/internal/domain"
	"brandmarket/internal/pkg/response"
	"brandmarket/internal/pkg/validator"
	"brandmarket/internal/repository"

	"github.com/gin-gonic/gin"
)

// EventPublisher mirrors the catalog module's publisher; a nil value drops
// everything.
type EventPublisher interface {
	Publish(event string, payload any)
}

type Handler struct {
	repo   *repository.ContactRepository
	events EventPublisher
}

func NewHandler(repo *repository.ContactRepository, events EventPublisher) *Handler {
	return &Handler{repo: repo, events: events}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/contact", h.Submit)
}

// Submit handles POST /api/contact
// @Summary	Send a contact form message
// @Tags	Contact
// @Param	request	body	SubmitRequest	true	"name, email, subject, body"
// @Success	201	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{} "validation failed"
// @Router	/contact [POST]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	msg := &domain.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: strings.TrimSpace(req.Subject),
		Body:    req.Body,
	}
	if err := h.repo.Create(c.Request.Context(), msg); err != nil {
		response.Error(c, http.StatusInternalServerError, "SUBMIT_FAILED", "Failed to send message")
		return
	}

	if h.events != nil {
		h.events.Publish("contact.created", msg)
	}
	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}
