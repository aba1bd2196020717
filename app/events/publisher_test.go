package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"nfm-facility/app/models"
)

type stubWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (s *stubWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, msgs...)
	return nil
}

func (s *stubWriter) Close() error {
	s.closed = true
	return nil
}

func TestPublishInvoiceWritesKeyedEvent(t *testing.T) {
	w := &stubWriter{}
	p := newKafkaPublisher(w)
	fixed := time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	inv := &models.Invoice{
		ID:         "7b7c2c55-7d56-4c59-9e0b-1d1f3b6e4a10",
		Number:     "INV-202403-001",
		Year:       2024,
		Month:      3,
		ClientName: "Port Authority",
		GrandTotal: decimal.NewFromInt(575000),
	}
	if err := p.PublishInvoice(context.Background(), inv); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != "INV-202403-001" {
		t.Fatalf("key: got %q", msg.Key)
	}

	var evt InvoiceEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if evt.Type != InvoiceIssued || evt.InvoiceNo != inv.Number || !evt.OccurredAt.Equal(fixed) {
		t.Fatalf("unexpected event: %+v", evt)
	}
	if !evt.GrandTotal.Equal(inv.GrandTotal) {
		t.Fatalf("grand total: got %s", evt.GrandTotal)
	}
	if evt.EventID == "" {
		t.Fatalf("expected an event id")
	}
}

func TestPublishInvoiceSurfacesWriterError(t *testing.T) {
	p := newKafkaPublisher(&stubWriter{err: errors.New("broker down")})
	if err := p.PublishInvoice(context.Background(), &models.Invoice{Number: "INV-202403-002"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewWithoutBrokersIsNoop(t *testing.T) {
	p := New(nil, "nfm.invoices")
	if _, ok := p.(NoopPublisher); !ok {
		t.Fatalf("expected NoopPublisher, got %T", p)
	}
	if err := p.PublishInvoice(context.Background(), &models.Invoice{}); err != nil {
		t.Fatalf("noop publish: %v", err)
	}
}

func TestClosePropagates(t *testing.T) {
	w := &stubWriter{}
	if err := newKafkaPublisher(w).Close(); err != nil || !w.closed {
		t.Fatalf("expected writer closed")
	}
}
