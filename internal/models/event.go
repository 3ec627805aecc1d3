package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WebhookEvent is an audit record of a payment-processor notification and
// what the backend did with it. Stored in MongoDB, write-only from the
// request path.
type WebhookEvent struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type              string             `json:"type" bson:"type"`
	PaymentID         string             `json:"payment_id" bson:"payment_id"`
	Status            string             `json:"status,omitempty" bson:"status,omitempty"`
	ExternalReference string             `json:"external_reference,omitempty" bson:"external_reference,omitempty"`
	Amount            float64            `json:"amount,omitempty" bson:"amount,omitempty"`
	Outcome           string             `json:"outcome" bson:"outcome"`
	ReceivedAt        time.Time          `json:"received_at" bson:"received_at"`
}

// Outcomes recorded for webhook events.
const (
	OutcomeActivated         = "activated"
	OutcomeIgnoredStatus     = "ignored_status"
	OutcomeInvalidReference  = "invalid_reference"
	OutcomeUnknownUser       = "unknown_user"
	OutcomeVerificationError = "verification_error"
)

// ContactMessage is a contact-form submission, stored in MongoDB.
type ContactMessage struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Message   string             `json:"message" bson:"message"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// ContactRequest defines the request body for the contact form
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=2000"`
}
