package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hamperhouse/storefront-service/internal/app/storefront/entity"
	"hamperhouse/storefront-service/internal/app/storefront/service"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit принимает контактную форму; ошибки полей возвращаются с кодом 422
func (h *ContactHandler) Submit(c *gin.Context) {
	var form entity.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	resp, err := h.contactService.Submit(c.Request.Context(), form)
	if err != nil {
		respondError(c, err, "Failed to submit contact form")
		return
	}

	c.JSON(http.StatusCreated, resp)
}
