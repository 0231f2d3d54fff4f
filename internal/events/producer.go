package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer interface {
	SendMessage(ctx context.Context, topic string, key []byte, value []byte) error
	Close() error
}

// KafkaProducer writes change events through kafka-go.
type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	})
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// ConsoleProducer stands in when no brokers are configured.
type ConsoleProducer struct {
	log *zap.Logger
}

func NewConsoleProducer(log *zap.Logger) *ConsoleProducer {
	log.Info("no Kafka brokers configured, change events go to the console")
	return &ConsoleProducer{log: log}
}

func (p *ConsoleProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	fmt.Printf("\n--- CHANGE_EVENT (CONSOLE) ---\nTopic: %s\nKey: %s\nValue: %s\n--- END ---\n",
		topic, string(key), string(value))
	return nil
}

func (p *ConsoleProducer) Close() error {
	return nil
}
