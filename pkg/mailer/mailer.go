package mailer

import (
	"errors"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SubscriptionNotification carries the details of a premium purchase for
// the internal notification email.
type SubscriptionNotification struct {
	UserID   uint
	Username string
	Email    string
	Amount   float64
	Currency string
	When     time.Time
}

// Sender is the outbound notification channel. Callers treat it as
// fire-and-forget: a send failure is logged, never propagated to the user.
type Sender interface {
	SendSubscriptionNotification(data *SubscriptionNotification) error
	SendTestEmail() error
}

// SendGridMailer implements Sender via the SendGrid API
type SendGridMailer struct {
	apiKey string
	to     string
	from   string
}

// NewSendGridMailer creates a mailer. With an empty API key every send
// fails with a configuration error, which callers log and ignore.
func NewSendGridMailer(apiKey, notificationEmail string) *SendGridMailer {
	return &SendGridMailer{
		apiKey: apiKey,
		to:     notificationEmail,
		from:   "noreply@candyweb.com",
	}
}

func (m *SendGridMailer) send(subject, plain, html string) error {
	if m.apiKey == "" {
		return errors.New("mailer: SENDGRID_API_KEY not configured")
	}

	from := mail.NewEmail("CandyWeb", m.from)
	to := mail.NewEmail("", m.to)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("mailer: sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// SendSubscriptionNotification emails the team about a premium purchase
func (m *SendGridMailer) SendSubscriptionNotification(data *SubscriptionNotification) error {
	timestamp := data.When.Format("2006-01-02 15:04")

	plain := fmt.Sprintf(`Nueva Suscripción Premium - CandyWeb

Detalles del Usuario:
- Usuario: %s
- Email: %s
- ID Usuario: %d

Detalles del Pago:
- Monto: $%.2f %s
- Fecha: %s
- Procesado por: Mercado Pago

Esta notificación fue generada automáticamente por CandyWeb.`,
		data.Username, data.Email, data.UserID, data.Amount, data.Currency, timestamp)

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>Nueva Suscripción Premium</h1>
  <h2>Detalles del Usuario</h2>
  <p><strong>Usuario:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>ID Usuario:</strong> %d</p>
  <h2>Detalles del Pago</h2>
  <p><strong>Monto:</strong> $%.2f %s</p>
  <p><strong>Fecha y Hora:</strong> %s</p>
  <p><strong>Procesado por:</strong> Mercado Pago</p>
  <p style="color: #888; font-size: 12px;">CandyWeb - Plataforma de Aprendizaje de Idiomas</p>
</div>`,
		data.Username, data.Email, data.UserID, data.Amount, data.Currency, timestamp)

	return m.send("Nueva Suscripción Premium - CandyWeb", plain, html)
}

// SendTestEmail verifies the SendGrid configuration end to end
func (m *SendGridMailer) SendTestEmail() error {
	now := time.Now().Format("2006-01-02 15:04:05")
	plain := fmt.Sprintf(`SendGrid configurado correctamente.

Este es un email de prueba para confirmar que la configuración está funcionando.
Fecha de prueba: %s`, now)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif;">
  <h1>SendGrid Configurado Correctamente</h1>
  <p>Este es un email de prueba para confirmar que la configuración está funcionando.</p>
  <p><strong>Fecha de prueba:</strong> %s</p>
</div>`, now)

	return m.send("Test Email - CandyWeb", plain, html)
}
