package messaging

import (
	"context"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
	"gocloud.dev/pubsub"

	// Register the in-process pubsub driver (mem://).
	_ "gocloud.dev/pubsub/mempubsub"
)

// Dead-letter header names.
const (
	HeaderOriginalTopic     = "kafka_dlt-original-topic"
	HeaderOriginalPartition = "kafka_dlt-original-partition"
	HeaderOriginalOffset    = "kafka_dlt-original-offset"
	HeaderExceptionMessage  = "kafka_dlt-exception-message"
)

// DeadLetterSink receives messages whose processing failed for good.
type DeadLetterSink interface {
	Send(ctx context.Context, msg kafka.Message, cause error) error
	Close(ctx context.Context) error
}

func deadLetterMetadata(msg kafka.Message, cause error) map[string]string {
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	return map[string]string{
		HeaderOriginalTopic:     msg.Topic,
		HeaderOriginalPartition: strconv.Itoa(msg.Partition),
		HeaderOriginalOffset:    strconv.FormatInt(msg.Offset, 10),
		HeaderExceptionMessage:  reason,
	}
}

// KafkaDeadLetterSink republishes failed messages to a dead-letter topic, keeping the
// original key, value and headers.
type KafkaDeadLetterSink struct {
	writer MessageWriter
}

// NewKafkaDeadLetterSink creates a KafkaDeadLetterSink writing through writer.
func NewKafkaDeadLetterSink(writer MessageWriter) *KafkaDeadLetterSink {
	return &KafkaDeadLetterSink{writer: writer}
}

// Send writes msg to the dead-letter topic.
func (s *KafkaDeadLetterSink) Send(ctx context.Context, msg kafka.Message, cause error) error {
	headers := make([]kafka.Header, len(msg.Headers), len(msg.Headers)+4)
	copy(headers, msg.Headers)

	carrier := NewHeaderCarrier(&headers)
	for key, value := range deadLetterMetadata(msg, cause) {
		carrier.Set(key, value)
	}

	err := s.writer.WriteMessages(ctx, kafka.Message{
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	})
	if err != nil {
		return fmt.Errorf("failed to write dead letter: %w", err)
	}
	return nil
}

// Close closes the writer.
func (s *KafkaDeadLetterSink) Close(_ context.Context) error {
	return s.writer.Close()
}

// PubSubDeadLetterSink sends failed messages to a gocloud.dev pubsub topic.
type PubSubDeadLetterSink struct {
	topic *pubsub.Topic
}

// OpenPubSubDeadLetterSink opens the topic identified by url (for example mem://dead-letters).
func OpenPubSubDeadLetterSink(ctx context.Context, url string) (*PubSubDeadLetterSink, error) {
	topic, err := pubsub.OpenTopic(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open dead letter topic: %w", err)
	}
	return NewPubSubDeadLetterSink(topic), nil
}

// NewPubSubDeadLetterSink wraps an already opened topic.
func NewPubSubDeadLetterSink(topic *pubsub.Topic) *PubSubDeadLetterSink {
	return &PubSubDeadLetterSink{topic: topic}
}

// Send publishes the message body with the dead-letter metadata.
func (s *PubSubDeadLetterSink) Send(ctx context.Context, msg kafka.Message, cause error) error {
	metadata := deadLetterMetadata(msg, cause)
	metadata["key"] = string(msg.Key)

	if err := s.topic.Send(ctx, &pubsub.Message{Body: msg.Value, Metadata: metadata}); err != nil {
		return fmt.Errorf("failed to send dead letter: %w", err)
	}
	return nil
}

// Close flushes pending sends and releases the topic.
func (s *PubSubDeadLetterSink) Close(ctx context.Context) error {
	return s.topic.Shutdown(ctx)
}
