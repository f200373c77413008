package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/mail-assistant/internal/model"
)

type fakePublisher struct {
	subject string
	payload []byte
	opts    int
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	f.subject = subject
	f.payload = payload
	f.opts = len(opts)
	if f.err != nil {
		return nil, f.err
	}
	return &jetstream.PubAck{Stream: StreamName, Sequence: 1}, nil
}

func TestEventSubject(t *testing.T) {
	assert.Equal(t, "assist.suggest.partial", EventSubject(model.OperationSuggest, model.OutcomePartial))
	assert.Equal(t, "assist.translate.error", EventSubject(model.OperationTranslate, model.OutcomeError))
}

func TestPublishEvent(t *testing.T) {
	pub := &fakePublisher{}
	m := &StreamManager{pub: pub}

	event := &model.AssistEvent{
		ID:        "evt-1",
		Kind:      model.OperationImprove,
		Outcome:   model.OutcomeSuccess,
		Language:  model.LanguageGerman,
		Tone:      model.ToneInformal,
		LatencyMs: 42,
		CreatedAt: time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, m.PublishEvent(context.Background(), event))

	assert.Equal(t, "assist.improve.success", pub.subject)
	assert.Equal(t, 1, pub.opts)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(pub.payload, &decoded))
	assert.Equal(t, "evt-1", decoded["id"])
	assert.Equal(t, "de", decoded["language"])
	assert.NotContains(t, decoded, "text")
}

func TestPublishEventError(t *testing.T) {
	m := &StreamManager{pub: &fakePublisher{err: errors.New("no responders")}}

	err := m.PublishEvent(context.Background(), &model.AssistEvent{ID: "x", Kind: model.OperationSuggest, Outcome: model.OutcomeError})
	assert.ErrorContains(t, err, "failed to publish event")
}

func TestConnectRejectsMissingTLSFiles(t *testing.T) {
	_, err := Connect(context.Background(), Config{
		URL:      "nats://127.0.0.1:1",
		CAFile:   "testdata/missing-ca.pem",
		CertFile: "testdata/missing-cert.pem",
		KeyFile:  "testdata/missing-key.pem",
	}, nil)

	assert.ErrorContains(t, err, "failed to create TLS config")
}
