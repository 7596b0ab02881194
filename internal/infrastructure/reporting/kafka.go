package reporting

import (
	"context"
	"fmt"
	"time"

	"lumiere-storefront/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

const eventSource = "lumiere-storefront"

// MessageWriter is the subset of kafka.Writer used by KafkaReporter.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope is the message published for every reported event.
type Envelope struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
}

// KafkaReporter publishes events to a Kafka topic.
type KafkaReporter struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewKafkaWriter creates a writer for topic with batching tuned for small,
// latency-insensitive analytics messages.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

func NewKafkaReporter(writer MessageWriter, timeout time.Duration) *KafkaReporter {
	return &KafkaReporter{writer: writer, timeout: timeout}
}

// Report implements domain.Reporter.
func (r *KafkaReporter) Report(eventName string, data map[string]interface{}) error {
	env := Envelope{
		EventID:   utils.GenerateID(),
		EventType: eventName,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Data:      data,
	}

	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(eventName),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventName)},
		},
	}
	if err := r.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", eventName, err)
	}
	return nil
}

func (r *KafkaReporter) Close() error {
	return r.writer.Close()
}
