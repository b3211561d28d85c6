//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/cancellation-risk/internal/domain/event"
	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/infrastructure/kafka"
	pkgkafka "github.com/staybook/cancellation-risk/internal/pkg/kafka"
	"github.com/staybook/cancellation-risk/internal/pkg/testutil"
)

func headers(msg kafkago.Message) map[string]string {
	out := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		out[h.Key] = string(h.Value)
	}
	return out
}

func TestPublisher_DeliversAssessmentEvents(t *testing.T) {
	ctx := context.Background()
	const topic = "booking-risk.events"

	kc := testutil.NewKafkaContainer(ctx, t)
	kc.CreateTopic(ctx, t, topic)

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:  kc.Brokers,
		ClientID: "booking-risk-test",
	})
	require.NoError(t, err)

	publisher := kafka.NewPublisher(producer, topic, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = publisher.Close() })

	assessment, err := model.NewRiskAssessment(0.9875, "BK-5001")
	require.NoError(t, err)
	evts := assessment.ClearEvents()
	require.Len(t, evts, 2)

	require.NoError(t, publisher.Publish(ctx, evts...))

	msgs := kc.ReadMessages(ctx, t, topic, 2)

	completed := msgs[0]
	assert.Equal(t, assessment.ID().String(), string(completed.Key))
	h := headers(completed)
	assert.Equal(t, event.EventTypeAssessmentCompleted, h["event_type"])
	assert.Equal(t, event.AggregateType, h["aggregate_type"])
	assert.Equal(t, evts[0].EventID().String(), h["event_id"])

	var payload event.AssessmentCompleted
	require.NoError(t, json.Unmarshal(completed.Value, &payload))
	assert.Equal(t, "BK-5001", payload.BookingReference)
	assert.Equal(t, "HIGH", payload.Tier)
	assert.Equal(t, "contact_guest", payload.Action)
	assert.InDelta(t, 0.9875, payload.Probability, 1e-9)

	highRisk := msgs[1]
	assert.Equal(t, assessment.ID().String(), string(highRisk.Key))
	assert.Equal(t, event.EventTypeHighRiskDetected, headers(highRisk)["event_type"])
}
