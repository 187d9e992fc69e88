package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const (
	TopicContentEvents   = "content.events"
	TopicContactMessages = "contact.messages"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ContentEventsWriter   messageWriter
	ContactMessagesWriter messageWriter
	logger                logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	contentWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicContentEvents,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	contactWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicContactMessages,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		ContentEventsWriter:   contentWriter,
		ContactMessagesWriter: contactWriter,
		logger:                log,
	}, nil
}

func (c *KafkaProducerClient) PublishContentEvent(ctx context.Context, evt service.ContentEvent) error {
	return c.publish(ctx, c.ContentEventsWriter, evt.Collection, evt)
}

func (c *KafkaProducerClient) PublishContactMessage(ctx context.Context, msg service.ContactMessage) error {
	return c.publish(ctx, c.ContactMessagesWriter, msg.ID.String(), msg)
}

func (c *KafkaProducerClient) publish(ctx context.Context, w messageWriter, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ContentEventsWriter != nil {
		c.ContentEventsWriter.Close()
	}
	if c.ContactMessagesWriter != nil {
		c.ContactMessagesWriter.Close()
	}
	c.logger.Info("Closed Kafka Producers")
}
