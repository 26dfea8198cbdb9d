package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alimgiray/gitossum/pkg/config"
	"github.com/alimgiray/gitossum/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher hands messages to the mining worker queue
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// New returns a Kafka producer, or a logging publisher when no brokers are configured
func New(cfg config.KafkaConfig) Publisher {
	if len(cfg.Brokers) == 0 {
		logger.Warnf("KAFKA_BROKERS not set, mining requests will not be queued")
		return &LogPublisher{topic: cfg.Topic}
	}
	return NewProducer(cfg)
}

// Producer handles Kafka message publishing
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
	}

	return &Producer{writer: writer}
}

// Publish sends a JSON encoded message; messages with the same key land on the same partition
func (p *Producer) Publish(ctx context.Context, key string, value interface{}) error {
	msg, err := encodeMessage(key, value)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

// Close closes the Kafka writer
func (p *Producer) Close() error {
	return p.writer.Close()
}

func encodeMessage(key string, value interface{}) (kafka.Message, error) {
	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal message: %w", err)
	}

	return kafka.Message{
		Key:   []byte(key),
		Value: jsonBytes,
		Time:  time.Now(),
	}, nil
}

// LogPublisher logs messages instead of queueing them
type LogPublisher struct {
	topic string
}

func (p *LogPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	msg, err := encodeMessage(key, value)
	if err != nil {
		return err
	}
	logger.WithField("topic", p.topic).WithField("key", key).Info(string(msg.Value))
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
