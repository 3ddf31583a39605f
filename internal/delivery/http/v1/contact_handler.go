package v1

import (
	"net/http"

	"go-contact-relay/internal/delivery/http/response"
	"go-contact-relay/internal/domain"
	"go-contact-relay/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact route (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/send-email", handler.SendEmail)
}

// SendEmail accepts a contact form submission and relays it by email. All
// policy rejections (rate limit, bot check, validation) respond 400 with a
// specific reason; relay failure responds 500 with a generic one.
func (h *ContactHandler) SendEmail(c *gin.Context) {
	var sub domain.ContactSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		// Malformed or oversized body. Field presence is checked by the
		// pipeline, after the rate-limit and bot gates.
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &sub, c.ClientIP()); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Email sent successfully")
}
