package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// LogPublisher stands in for Kafka when no brokers are configured. Events
// are logged and dropped.
type LogPublisher struct {
	logger logger.Logger
}

func NewLogPublisher(log logger.Logger) *LogPublisher {
	return &LogPublisher{logger: log}
}

func (p *LogPublisher) PublishContentEvent(_ context.Context, evt service.ContentEvent) error {
	p.logger.Info("Content changed",
		zap.String("collection", evt.Collection),
		zap.String("action", string(evt.Action)),
		zap.String("entity_id", evt.EntityID.String()))
	return nil
}

func (p *LogPublisher) PublishContactMessage(_ context.Context, msg service.ContactMessage) error {
	p.logger.Warn("Contact message received without a broker, not delivered",
		zap.String("message_id", msg.ID.String()),
		zap.String("from", msg.Email))
	return nil
}
