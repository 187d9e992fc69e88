package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ContentAction string

const (
	ActionCreated ContentAction = "created"
	ActionUpdated ContentAction = "updated"
	ActionSaved   ContentAction = "saved"
	ActionDeleted ContentAction = "deleted"
)

// ContentEvent is emitted after every successful write to a collection.
type ContentEvent struct {
	Collection string        `json:"collection"`
	Action     ContentAction `json:"action"`
	EntityID   uuid.UUID     `json:"entity_id"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type ContactMessage struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

type EventPublisher interface {
	PublishContentEvent(ctx context.Context, evt ContentEvent) error
	PublishContactMessage(ctx context.Context, msg ContactMessage) error
}
