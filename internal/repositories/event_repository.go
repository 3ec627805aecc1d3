package repositories

import (
	"context"
	"time"

	"github.com/fran21fran/candyweb-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepository defines the interface for the audit/event log. Writes are
// fire-and-forget from the request path: a failed log entry never fails the
// operation that produced it.
type EventRepository interface {
	LogWebhookEvent(ctx context.Context, event *models.WebhookEvent) error
	LogContactMessage(ctx context.Context, message *models.ContactMessage) error
	GetRecentWebhookEvents(ctx context.Context, limit int64) ([]models.WebhookEvent, error)
}

// MongoEventRepository implements EventRepository for MongoDB
type MongoEventRepository struct {
	events   *mongo.Collection
	messages *mongo.Collection
}

// NewMongoEventRepository creates a new MongoEventRepository
func NewMongoEventRepository(db *mongo.Database) *MongoEventRepository {
	return &MongoEventRepository{
		events:   db.Collection("webhook_events"),
		messages: db.Collection("contact_messages"),
	}
}

// LogWebhookEvent records a payment notification and its outcome
func (r *MongoEventRepository) LogWebhookEvent(ctx context.Context, event *models.WebhookEvent) error {
	event.ID = primitive.NewObjectID()
	if event.ReceivedAt.IsZero() {
		event.ReceivedAt = time.Now()
	}
	_, err := r.events.InsertOne(ctx, event)
	return err
}

// LogContactMessage records a contact-form submission
func (r *MongoEventRepository) LogContactMessage(ctx context.Context, message *models.ContactMessage) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	_, err := r.messages.InsertOne(ctx, message)
	return err
}

// GetRecentWebhookEvents retrieves the latest webhook events, newest first.
// Used for operational inspection of payment processing.
func (r *MongoEventRepository) GetRecentWebhookEvents(ctx context.Context, limit int64) ([]models.WebhookEvent, error) {
	var events []models.WebhookEvent
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "received_at", Value: -1}})
	cursor, err := r.events.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
