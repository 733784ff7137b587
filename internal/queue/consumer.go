package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "os"
    "path/filepath"
    "strings"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/sirupsen/logrus"
)

// Consumer listens on the order.placed queue and appends one line per
// order to a log file.
type Consumer struct {
    url     string
    logPath string
    logger  *logrus.Logger

    mu sync.Mutex // serializes writes to logPath
}

// NewConsumer returns a consumer for the broker at url writing to logPath
// (logs/orders.log when empty).
func NewConsumer(url, logPath string, logger *logrus.Logger) *Consumer {
    if logPath == "" {
        logPath = filepath.Join("logs", "orders.log")
    }
    return &Consumer{url: url, logPath: logPath, logger: logger}
}

// Run connects to RabbitMQ and consumes until ctx is cancelled.  Lost
// connections are re-dialled with exponential backoff capped at 30s.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        if err := ctx.Err(); err != nil {
            return err
        }
        conn, err := amqp.Dial(c.url)
        if err != nil {
            c.logger.WithError(err).WithField("retry_in", backoff.String()).Warn("order-consumer: dial failed")
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        c.logger.WithError(err).Warn("order-consumer: consume loop ended, reconnecting")
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        c.logger.WithError(err).Warn("order-consumer: set QoS failed")
    }
    if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(OrderPlacedQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.Handle(d.Body); err != nil {
                c.logger.WithError(err).WithField("message_id", d.MessageId).Error("order-consumer: handle message failed")
                _ = d.Nack(false, false) // do not requeue poison messages
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// Handle decodes one message body and appends its log line.
func (c *Consumer) Handle(body []byte) error {
    var ev OrderPlacedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    c.mu.Lock()
    defer c.mu.Unlock()
    if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    if _, err := io.WriteString(f, FormatOrderLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    c.logger.WithFields(logrus.Fields{"order_id": ev.OrderID, "event_id": ev.EventID}).Debug("order-consumer: recorded")
    return nil
}

// FormatOrderLine renders ev as a single newline-terminated line.
func FormatOrderLine(ev OrderPlacedEvent) string {
    seats := make([]string, 0, len(ev.Tickets))
    for _, t := range ev.Tickets {
        seats = append(seats, fmt.Sprintf("%d:%d-%d", t.FlightID, t.Row, t.Seat))
    }
    return fmt.Sprintf("[%s] Order placed | order_id=%d | user_id=%d | event_id=%s | tickets=[%s]\n",
        ev.PlacedAt, ev.OrderID, ev.UserID, ev.EventID, strings.Join(seats, ","))
}

// sleep waits for d or until ctx is done; it reports whether d elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
