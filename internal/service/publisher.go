package service

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/airline-booking/internal/queue"
)

// AMQPPublisher publishes order events to RabbitMQ.  Each publish dials
// its own connection; order placement is not frequent enough to justify a
// pooled channel.  Messages are persistent and routed through the default
// exchange to a durable queue of the same name.
type AMQPPublisher struct {
    url string
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string) *AMQPPublisher {
    return &AMQPPublisher{url: url}
}

// PublishOrderPlaced sends event to the order.placed queue.  Failures are
// returned, not logged; the caller decides what a failed publish means.
func (p *AMQPPublisher) PublishOrderPlaced(ctx context.Context, event q.OrderPlacedEvent) error {
    body, err := json.Marshal(event)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }

    conn, err := amqp.Dial(p.url)
    if err != nil {
        return fmt.Errorf("dial rabbitmq: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("open channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(
        q.OrderPlacedQueue, // name
        true,               // durable
        false,              // autoDelete
        false,              // exclusive
        false,              // noWait
        nil,                // args
    ); err != nil {
        return fmt.Errorf("declare queue: %w", err)
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    event.EventID,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", q.OrderPlacedQueue, false, false, pub); err != nil {
        return fmt.Errorf("publish: %w", err)
    }
    return nil
}
