package contact

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const maxMessageLength = 5000

type ContactUseCase struct {
	events service.EventPublisher
	mailer service.Mailer
	logger logger.Logger
}

// NewContactUseCase wires submission and delivery. mailer may be nil in
// processes that only accept submissions.
func NewContactUseCase(events service.EventPublisher, mailer service.Mailer, log logger.Logger) *ContactUseCase {
	return &ContactUseCase{events: events, mailer: mailer, logger: log}
}

type SubmitInput struct {
	Name    string
	Email   string
	Message string
}

func (in SubmitInput) validate() error {
	var errs []error
	if in.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		errs = append(errs, errors.New("email is not a valid address"))
	}
	if in.Message == "" {
		errs = append(errs, errors.New("message is required"))
	}
	if len(in.Message) > maxMessageLength {
		errs = append(errs, errors.New("message is too long"))
	}
	return errors.Join(errs...)
}

// Submit validates the form and queues it for delivery.
func (uc *ContactUseCase) Submit(ctx context.Context, in SubmitInput) (*service.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := in.validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	msg := service.ContactMessage{
		ID:         uuid.New(),
		Name:       in.Name,
		Email:      in.Email,
		Message:    in.Message,
		ReceivedAt: time.Now().UTC(),
	}
	if err := uc.events.PublishContactMessage(ctx, msg); err != nil {
		uc.logger.Error("Failed to queue contact message", err, zap.String("message_id", msg.ID.String()))
		return nil, apperror.NewInternal("failed to queue contact message", err)
	}
	uc.logger.Info("Contact message queued", zap.String("message_id", msg.ID.String()))
	return &msg, nil
}

// Deliver forwards a queued message to the site owner.
func (uc *ContactUseCase) Deliver(ctx context.Context, msg service.ContactMessage) error {
	if uc.mailer == nil {
		return apperror.NewUnavailable("no mailer configured")
	}
	if err := uc.mailer.SendContactMessage(ctx, msg); err != nil {
		uc.logger.Error("Failed to deliver contact message", err, zap.String("message_id", msg.ID.String()))
		return err
	}
	uc.logger.Info("Contact message delivered", zap.String("message_id", msg.ID.String()))
	return nil
}
