package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// ErrPoisonMessage marks a message that can never be processed. It is
// committed and skipped instead of retried.
var ErrPoisonMessage = errors.New("undecodable message")

type Handler func(ctx context.Context, msg kafka.Message) error

func ContentEventHandler(fn func(ctx context.Context, evt service.ContentEvent) error) Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var evt service.ContentEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return fmt.Errorf("%w: %v", ErrPoisonMessage, err)
		}
		return fn(ctx, evt)
	}
}

func ContactMessageHandler(fn func(ctx context.Context, msg service.ContactMessage) error) Handler {
	return func(ctx context.Context, m kafka.Message) error {
		var msg service.ContactMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			return fmt.Errorf("%w: %v", ErrPoisonMessage, err)
		}
		return fn(ctx, msg)
	}
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const (
	defaultRetryBase = 500 * time.Millisecond
	defaultRetryMax  = time.Minute
)

type Consumer struct {
	reader    messageReader
	topic     string
	handler   Handler
	logger    logger.Logger
	retryBase time.Duration
	retryMax  time.Duration
}

func NewConsumer(brokers []string, groupID, topic string, handler Handler, log logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return newConsumer(reader, topic, handler, log)
}

func newConsumer(reader messageReader, topic string, handler Handler, log logger.Logger) *Consumer {
	return &Consumer{
		reader:    reader,
		topic:     topic,
		handler:   handler,
		logger:    log.With(zap.String("topic", topic)),
		retryBase: defaultRetryBase,
		retryMax:  defaultRetryMax,
	}
}

// Run processes messages until ctx is cancelled. A message is committed
// once it is handled or found undecodable. Other failures are retried in
// place, so a later offset is never committed past a failed message.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("Worker listening")
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("Failed to read message from Kafka", err)
			continue
		}

		err = c.handle(ctx, msg)
		switch {
		case err == nil:
		case errors.Is(err, ErrPoisonMessage):
			c.logger.Warn("Skipping undecodable message", zap.ByteString("key", msg.Key), zap.Error(err))
		default:
			// Shutting down mid retry; the message is fetched again on restart.
			return nil
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.Error("Failed to commit message", err)
		}
	}
}

// handle runs the handler until it succeeds, reports an undecodable
// message, or ctx ends. Delays double from retryBase up to retryMax.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	delay := c.retryBase
	for attempt := 1; ; attempt++ {
		err := c.handler(ctx, msg)
		if err == nil || errors.Is(err, ErrPoisonMessage) {
			return err
		}
		c.logger.Error("Failed to process message", err,
			zap.ByteString("key", msg.Key),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = min(delay*2, c.retryMax)
	}
}
