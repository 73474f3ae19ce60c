package produce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Document event actions published on the exchange.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionPurged  = "purged" // whole collection removed
)

type DocumentProduce struct {
	channel  *amqp.Channel
	exchange string
}

type documentEvent struct {
	Action     string `json:"action"`
	Collection string `json:"collection"`
	ItemID     string `json:"item_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

func NewDocumentProduce(channel *amqp.Channel, exchange string) *DocumentProduce {
	return &DocumentProduce{channel: channel, exchange: exchange}
}

// PublishDocumentEvent emits a change notification after a successful
// mutation. Consumers are external; a publish failure must never fail the
// originating request, so callers log the returned error and move on.
func (p *DocumentProduce) PublishDocumentEvent(ctx context.Context, action, collection, itemID string) error {
	body, err := json.Marshal(documentEvent{
		Action:     action,
		Collection: collection,
		ItemID:     itemID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to encode document event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		"document."+action,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish document event: %w", err)
	}
	return nil
}
