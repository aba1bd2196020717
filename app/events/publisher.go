// Package events announces business events (issued invoices) to Kafka for downstream accounting.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"nfm-facility/app/metrics"
	"nfm-facility/app/models"
)

const (
	InvoiceIssued = "invoice.issued"
	schemaVersion = "1"
	writeTimeout  = 5 * time.Second
)

// InvoiceEvent is the payload written for every issued invoice.
type InvoiceEvent struct {
	EventID       string          `json:"event_id"`
	Type          string          `json:"type"`
	SchemaVersion string          `json:"schema_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNo     string          `json:"invoice_no"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	ClientName    string          `json:"client_name,omitempty"`
	ContractRef   string          `json:"contract_ref,omitempty"`
	LabourTotal   decimal.Decimal `json:"labour_total"`
	FleetTotal    decimal.Decimal `json:"fleet_total"`
	OtherTotal    decimal.Decimal `json:"other_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Publisher announces issued invoices.
type Publisher interface {
	PublishInvoice(ctx context.Context, inv *models.Invoice) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes invoice events keyed by invoice number.
type KafkaPublisher struct {
	writer messageWriter
	now    func() time.Time
}

// NewKafkaPublisher connects lazily; the first write dials the brokers.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("invoice topic must not be empty")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: false,
	}
	return newKafkaPublisher(w), nil
}

func newKafkaPublisher(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, now: time.Now}
}

func (p *KafkaPublisher) PublishInvoice(ctx context.Context, inv *models.Invoice) error {
	evt := InvoiceEvent{
		EventID:       uuid.NewString(),
		Type:          InvoiceIssued,
		SchemaVersion: schemaVersion,
		OccurredAt:    p.now().UTC(),
		InvoiceID:     inv.ID,
		InvoiceNo:     inv.Number,
		Year:          inv.Year,
		Month:         inv.Month,
		ClientName:    inv.ClientName,
		ContractRef:   inv.ContractRef,
		LabourTotal:   inv.LabourTotal,
		FleetTotal:    inv.FleetTotal,
		OtherTotal:    inv.OtherTotal,
		GrandTotal:    inv.GrandTotal,
	}
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode invoice event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(inv.Number),
		Value: value,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(InvoiceIssued)},
			{Key: "schema_version", Value: []byte(schemaVersion)},
		},
	})
	if err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("publish invoice event: %w", err)
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishInvoice(_ context.Context, inv *models.Invoice) error {
	metrics.EventsPublished.WithLabelValues("skipped").Inc()
	return nil
}

func (NoopPublisher) Close() error { return nil }

// New returns a Kafka publisher when brokers are given and a no-op otherwise.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		log.Println("Kafka brokers not configured; invoice events disabled")
		return NoopPublisher{}
	}
	p, err := NewKafkaPublisher(brokers, topic)
	if err != nil {
		log.Printf("Warning: invoice events disabled: %v", err)
		return NoopPublisher{}
	}
	return p
}
