package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/models"
	"portfolio/internal/services"
)

type ContactHandler struct {
	*Page
	contacts *services.ContactService
}

func NewContactHandler(page *Page, contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{Page: page, contacts: contacts}
}

// Form handles GET /contact
func (h *ContactHandler) Form(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.html", gin.H{"title": "Contact"})
}

// Submit handles POST /contact. The outcome is reported as a flash on the
// redirected page.
func (h *ContactHandler) Submit(c *gin.Context) {
	var in models.ContactInput
	if err := c.ShouldBind(&in); err != nil {
		_ = c.Error(err)
		h.flash(c, "danger", "Something went wrong. Please try again")
		c.Redirect(http.StatusSeeOther, "/contact")
		return
	}

	_, err := h.contacts.Submit(c.Request.Context(), in)

	var mailErr *services.MailDeliveryError
	switch {
	case err == nil:
		h.flash(c, "success", "Message sent and saved successfully!")
	case errors.As(err, &mailErr):
		_ = c.Error(err)
		h.flash(c, "danger", fmt.Sprintf("Email failed to send: %v", mailErr.Err))
	default:
		_ = c.Error(err)
		h.flash(c, "danger", "Something went wrong. Please try again")
	}
	c.Redirect(http.StatusSeeOther, "/contact")
}
