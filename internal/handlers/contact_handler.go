package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/fran21fran/candyweb-backend/internal/models"
	"github.com/fran21fran/candyweb-backend/internal/repositories"
	"github.com/fran21fran/candyweb-backend/pkg/mailer"
	"github.com/labstack/echo/v4"
)

// ContactHandler handles contact form submissions
type ContactHandler struct {
	eventRepository repositories.EventRepository
	mailer          mailer.Sender
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(eventRepo repositories.EventRepository, sender mailer.Sender) *ContactHandler {
	return &ContactHandler{
		eventRepository: eventRepo,
		mailer:          sender,
	}
}

// RegisterContactRoutes registers the public contact routes
func (h *ContactHandler) RegisterContactRoutes(g *echo.Group) {
	g.POST("/contact", h.Contact)
}

// Contact stores a contact-form message. Persistence is best effort: the
// sender always gets a confirmation.
func (h *ContactHandler) Contact(c echo.Context) error {
	req := new(models.ContactRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.eventRepository.LogContactMessage(ctx, message); err != nil {
			log.Printf("Failed to store contact message: %v", err)
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{"message": "Mensaje enviado exitosamente"})
}

// SendTestEmail verifies the outbound email configuration
func (h *ContactHandler) SendTestEmail(c echo.Context) error {
	if err := h.mailer.SendTestEmail(); err != nil {
		log.Printf("Test email failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error al enviar email de prueba")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Email de prueba enviado exitosamente"})
}
