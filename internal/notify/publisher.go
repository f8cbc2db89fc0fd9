package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Queue is the durable queue every event is published to.
const Queue = "docdesk.notifications"

// Publisher hands an event to the delivery pipeline.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// AMQPPublisher opens a connection per publish. Volume is a handful of
// events per request at most.
type AMQPPublisher struct {
	url   string
	queue string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: Queue}
}

// Publish declares the queue and sends ev as a persistent JSON message on
// the default exchange.
func (p *AMQPPublisher) Publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	return ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	})
}

// Discard drops every event. It stands in when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }

// BestEffort publishes ev and logs a failure instead of returning it, so a
// broker outage never fails the request that produced the event.
func BestEffort(ctx context.Context, p Publisher, log logrus.FieldLogger, ev Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		log.WithFields(logrus.Fields{"event": ev.Type, "error": err}).Warn("notification not published")
	}
}
