package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fran21fran/candyweb-backend/internal/models"
	"github.com/fran21fran/candyweb-backend/internal/repositories"
	"github.com/fran21fran/candyweb-backend/pkg/mailer"
	"github.com/fran21fran/candyweb-backend/pkg/payments"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	premiumPriceARS = 500
	premiumCurrency = "ARS"
)

// SubscriptionHandler handles premium purchase and the payment-processor
// webhook
type SubscriptionHandler struct {
	userRepository  repositories.UserRepository
	eventRepository repositories.EventRepository
	gateway         payments.Gateway
	mailer          mailer.Sender
	frontendURL     string
	backendURL      string
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(
	userRepo repositories.UserRepository,
	eventRepo repositories.EventRepository,
	gateway payments.Gateway,
	sender mailer.Sender,
	frontendURL, backendURL string,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		userRepository:  userRepo,
		eventRepository: eventRepo,
		gateway:         gateway,
		mailer:          sender,
		frontendURL:     frontendURL,
		backendURL:      backendURL,
	}
}

// RegisterSubscriptionRoutes registers the authenticated subscription routes
func (h *SubscriptionHandler) RegisterSubscriptionRoutes(g *echo.Group) {
	g.POST("/subscription", h.CreateSubscription)
	g.GET("/subscription/events", h.GetWebhookEvents)
}

// RegisterWebhookRoutes registers the unauthenticated webhook route called
// by the payment processor
func (h *SubscriptionHandler) RegisterWebhookRoutes(g *echo.Group) {
	g.POST("/mercadopago/webhook", h.HandleWebhook)
}

// CreateSubscription creates a checkout preference for the annual premium
// subscription and returns the payment link
func (h *SubscriptionHandler) CreateSubscription(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Usuario no encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reference := payments.FormatPremiumReference(user.ID, time.Now())
	req := &payments.PreferenceRequest{
		Items: []payments.PreferenceItem{
			{
				ID:          "candyweb_premium_subscription",
				Title:       "CandyWeb Premium - Suscripción Anual",
				Description: "Acceso completo a juegos premium y práctica de habla",
				Quantity:    1,
				CurrencyID:  premiumCurrency,
				UnitPrice:   premiumPriceARS,
			},
		},
		Payer: &payments.PreferencePayer{
			Name:  user.Username,
			Email: user.Email,
		},
		BackURLs: &payments.BackURLs{
			Success: h.frontendURL + "/subscription?status=success",
			Failure: h.frontendURL + "/subscription?status=failure",
			Pending: h.frontendURL + "/subscription?status=pending",
		},
		AutoReturn:          "approved",
		NotificationURL:     h.backendURL + "/api/mercadopago/webhook",
		ExternalReference:   reference,
		StatementDescriptor: "CandyWeb Premium",
		Metadata:            map[string]interface{}{"user_id": user.ID},
	}

	preference, err := h.gateway.CreatePreference(c.Request().Context(), req)
	if err != nil {
		log.Printf("Subscription error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error al crear preferencia de pago")
	}

	// Purchase-attempt notification is best effort only
	if err := h.mailer.SendSubscriptionNotification(&mailer.SubscriptionNotification{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Amount:   premiumPriceARS,
		Currency: premiumCurrency,
		When:     time.Now(),
	}); err != nil {
		log.Printf("Failed to send subscription notification email: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":                 preference.ID,
		"init_point":         preference.InitPoint,
		"sandbox_init_point": preference.SandboxInitPoint,
		"message":            "Preferencia de pago creada exitosamente",
	})
}

// webhookNotification is the body the payment processor posts
type webhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// HandleWebhook processes payment notifications. The notification body is
// never trusted: the payment is re-fetched from the processor and only an
// approved payment with a well-formed external reference activates premium.
// Permanently bad events (malformed reference, unknown user) are logged and
// acknowledged so the processor stops retrying; verification failures stay
// 500 so it retries.
func (h *SubscriptionHandler) HandleWebhook(c echo.Context) error {
	var notification webhookNotification
	if err := c.Bind(&notification); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid webhook payload")
	}

	if notification.Type != "payment" || notification.Data.ID == "" {
		return c.JSON(http.StatusOK, echo.Map{"message": "Webhook processed successfully"})
	}

	payment, err := h.gateway.GetPayment(c.Request().Context(), notification.Data.ID)
	if err != nil {
		log.Printf("Error verifying payment %s: %v", notification.Data.ID, err)
		h.logEvent(&models.WebhookEvent{
			Type:      notification.Type,
			PaymentID: notification.Data.ID,
			Outcome:   models.OutcomeVerificationError,
		})
		return echo.NewHTTPError(http.StatusInternalServerError, "Payment verification failed")
	}

	event := &models.WebhookEvent{
		Type:              notification.Type,
		PaymentID:         notification.Data.ID,
		Status:            payment.Status,
		ExternalReference: payment.ExternalReference,
		Amount:            payment.TransactionAmount,
	}

	if payment.Status != payments.StatusApproved || payment.ExternalReference == "" {
		log.Printf("Payment %s status %q - not processing", notification.Data.ID, payment.Status)
		event.Outcome = models.OutcomeIgnoredStatus
		h.logEvent(event)
		return c.JSON(http.StatusOK, echo.Map{"message": "Webhook processed successfully"})
	}

	userID, err := payments.ParsePremiumReference(payment.ExternalReference)
	if err != nil {
		log.Printf("Could not extract user ID from external reference %q", payment.ExternalReference)
		event.Outcome = models.OutcomeInvalidReference
		h.logEvent(event)
		return c.JSON(http.StatusOK, echo.Map{"message": "Webhook processed successfully"})
	}

	user, err := h.userRepository.ActivatePremium(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Printf("External reference %q points at unknown user %d", payment.ExternalReference, userID)
			event.Outcome = models.OutcomeUnknownUser
			h.logEvent(event)
			return c.JSON(http.StatusOK, echo.Map{"message": "Webhook processed successfully"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to activate subscription")
	}

	log.Printf("Premium subscription activated for user %d", user.ID)
	event.Outcome = models.OutcomeActivated
	h.logEvent(event)

	// Confirmation email is best effort only
	if err := h.mailer.SendSubscriptionNotification(&mailer.SubscriptionNotification{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Amount:   payment.TransactionAmount,
		Currency: premiumCurrency,
		When:     time.Now(),
	}); err != nil {
		log.Printf("Failed to send confirmation email: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Webhook processed successfully"})
}

// GetWebhookEvents returns the most recent payment notifications and their
// outcomes, for operational inspection
func (h *SubscriptionHandler) GetWebhookEvents(c echo.Context) error {
	limit := int64(50)
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.eventRepository.GetRecentWebhookEvents(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch webhook events")
	}

	return c.JSON(http.StatusOK, events)
}

func (h *SubscriptionHandler) logEvent(event *models.WebhookEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.eventRepository.LogWebhookEvent(ctx, event); err != nil {
		log.Printf("Failed to log webhook event: %v", err)
	}
}
