package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"carebase/internal/shared/timefmt"
	audit "carebase/pkg/platform/audit"
)

// Sink delivers audit events to a Kafka topic for the compliance pipeline.
type Sink struct {
	client *kgo.Client
	topic  string
}

// payload is the wire shape of one audit record.
type payload struct {
	OrgID         string `json:"orgId"`
	Domain        string `json:"domain"`
	Action        string `json:"action"`
	ResourceType  string `json:"resourceType"`
	ResourceID    string `json:"resourceId"`
	CorrelationID string `json:"correlationId"`
	RequestID     string `json:"requestId,omitempty"`
	Actor         string `json:"actor,omitempty"`
	ClientIP      string `json:"clientIp,omitempty"`
	Browser       string `json:"browser,omitempty"`
	OccurredAt    string `json:"occurredAt"`
}

// New connects a producer and makes sure the topic exists. Partitioning is by
// org so per-tenant ordering holds for consumers.
func New(brokers []string, topic string) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProduceRequestTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Sink{client: client, topic: topic}, nil
}

func ensureTopic(client *kgo.Client, topic string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopic(ctx, -1, -1, nil, topic)
	if err != nil {
		return fmt.Errorf("create audit topic: %w", err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create audit topic: %w", resp.Err)
	}
	return nil
}

// Deliver produces one event synchronously.
func (s *Sink) Deliver(ctx context.Context, event audit.Event) error {
	value, err := json.Marshal(payload{
		OrgID:         event.OrgID.String(),
		Domain:        event.Domain.String(),
		Action:        event.Action,
		ResourceType:  event.ResourceType,
		ResourceID:    event.ResourceID,
		CorrelationID: event.CorrelationID,
		RequestID:     event.RequestID,
		Actor:         event.Actor,
		ClientIP:      event.ClientIP,
		Browser:       event.Browser,
		OccurredAt:    timefmt.ISO(event.Timestamp),
	})
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.OrgID.String()),
		Value: value,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes and closes the producer.
func (s *Sink) Close() {
	s.client.Close()
}
