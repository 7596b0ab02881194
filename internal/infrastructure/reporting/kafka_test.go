package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaReporter_PublishesEnvelope(t *testing.T) {
	w := &fakeWriter{}
	r := NewKafkaReporter(w, time.Second)

	require.NoError(t, r.Report("purchase", map[string]interface{}{"value": 52.0}))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, []byte("purchase"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "purchase", env.EventType)
	assert.Equal(t, eventSource, env.Source)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, 52.0, env.Data["value"])
	assert.False(t, env.Timestamp.IsZero())
}

func TestKafkaReporter_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	r := NewKafkaReporter(w, time.Second)

	err := r.Report("page_view", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestKafkaReporter_Close(t *testing.T) {
	w := &fakeWriter{}
	r := NewKafkaReporter(w, time.Second)

	require.NoError(t, r.Close())
	assert.True(t, w.closed)
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "storefront.analytics")
	assert.Equal(t, "storefront.analytics", w.Topic)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
}
