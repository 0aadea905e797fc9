package nats

import (
	"context"
	"time"

	"github.com/Dexuser/property-service/internal/property/domain"
)

// Subjects for property lifecycle events.
const (
	SubjectPropertyCreated = "property.created"
	SubjectPropertyUpdated = "property.updated"
	SubjectPropertyDeleted = "property.deleted"
)

type propertyEvent struct {
	PropertyID uint      `json:"property_id"`
	Code       string    `json:"code,omitempty"`
	AgentID    string    `json:"agent_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PropertyEvents adapts the generic Publisher to the engine's
// EventPublisher port.
type PropertyEvents struct {
	publisher *Publisher
}

func NewPropertyEvents(publisher *Publisher) *PropertyEvents {
	return &PropertyEvents{publisher: publisher}
}

func (e *PropertyEvents) PropertyCreated(ctx context.Context, property *domain.Property) error {
	return e.publisher.Publish(ctx, SubjectPropertyCreated, propertyEvent{
		PropertyID: property.ID,
		Code:       property.Code,
		AgentID:    property.AgentID,
		OccurredAt: time.Now().UTC(),
	})
}

func (e *PropertyEvents) PropertyUpdated(ctx context.Context, property *domain.Property) error {
	return e.publisher.Publish(ctx, SubjectPropertyUpdated, propertyEvent{
		PropertyID: property.ID,
		Code:       property.Code,
		AgentID:    property.AgentID,
		OccurredAt: time.Now().UTC(),
	})
}

func (e *PropertyEvents) PropertyDeleted(ctx context.Context, propertyID uint) error {
	return e.publisher.Publish(ctx, SubjectPropertyDeleted, propertyEvent{
		PropertyID: propertyID,
		OccurredAt: time.Now().UTC(),
	})
}
