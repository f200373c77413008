package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/capitalize-ai/mail-assistant/internal/model"
	"github.com/capitalize-ai/mail-assistant/pkg/metrics"
)

const (
	// StreamName is the name of the assist events stream.
	StreamName = "ASSIST"

	// SubjectPrefix is the prefix for all assist event subjects.
	SubjectPrefix = "assist"
)

// publisher is the part of jetstream.JetStream the stream manager publishes through.
type publisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// StreamManager handles the assist events stream.
type StreamManager struct {
	client *Client
	pub    publisher
}

// NewStreamManager creates a new stream manager.
func NewStreamManager(client *Client) *StreamManager {
	return &StreamManager{client: client, pub: client.JetStream()}
}

// EnsureStream creates the assist events stream if it does not exist.
func (m *StreamManager) EnsureStream(ctx context.Context) error {
	js := m.client.JetStream()

	if _, err := js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      30 * 24 * time.Hour,
		MaxBytes:    1024 * 1024 * 1024,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Duplicates:  2 * time.Minute,
		Description: "Mail assistant operation events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// EventSubject returns the subject for an operation outcome, e.g. assist.suggest.partial.
func EventSubject(kind model.OperationKind, outcome model.Outcome) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, kind, outcome)
}

// PublishEvent publishes an operation event. The event id doubles as the
// JetStream message id so retries are deduplicated.
func (m *StreamManager) PublishEvent(ctx context.Context, event *model.AssistEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		metrics.RecordEventPublish("error")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := m.pub.Publish(ctx, EventSubject(event.Kind, event.Outcome), data, jetstream.WithMsgID(event.ID)); err != nil {
		metrics.RecordEventPublish("error")
		return fmt.Errorf("failed to publish event: %w", err)
	}

	metrics.RecordEventPublish("success")
	return nil
}
