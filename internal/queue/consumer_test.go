package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "testing"

    logtest "github.com/sirupsen/logrus/hooks/test"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func sampleEvent() OrderPlacedEvent {
    return OrderPlacedEvent{
        EventID:  "0b8f7c1e-3b7a-4f0e-9c55-8c2d7c1b1a11",
        OrderID:  42,
        UserID:   7,
        PlacedAt: "2026-04-01T12:00:00Z",
        Tickets: []EventTicket{
            {FlightID: 100, Row: 1, Seat: 1},
            {FlightID: 100, Row: 1, Seat: 2},
        },
    }
}

func TestFormatOrderLine(t *testing.T) {
    assert.Equal(t,
        "[2026-04-01T12:00:00Z] Order placed | order_id=42 | user_id=7 | event_id=0b8f7c1e-3b7a-4f0e-9c55-8c2d7c1b1a11 | tickets=[100:1-1,100:1-2]\n",
        FormatOrderLine(sampleEvent()))

    ev := sampleEvent()
    ev.Tickets = nil
    assert.Contains(t, FormatOrderLine(ev), "tickets=[]")
}

func TestConsumerHandleAppendsLines(t *testing.T) {
    logger, _ := logtest.NewNullLogger()
    path := filepath.Join(t.TempDir(), "logs", "orders.log")
    c := NewConsumer("amqp://unused", path, logger)

    body, err := json.Marshal(sampleEvent())
    require.NoError(t, err)
    require.NoError(t, c.Handle(body))
    require.NoError(t, c.Handle(body))

    data, err := os.ReadFile(path)
    require.NoError(t, err)
    line := FormatOrderLine(sampleEvent())
    assert.Equal(t, line+line, string(data))
}

func TestConsumerHandleRejectsBadJSON(t *testing.T) {
    logger, _ := logtest.NewNullLogger()
    path := filepath.Join(t.TempDir(), "orders.log")
    c := NewConsumer("amqp://unused", path, logger)

    assert.Error(t, c.Handle([]byte("{not json")))
    _, err := os.Stat(path)
    assert.True(t, os.IsNotExist(err))
}
