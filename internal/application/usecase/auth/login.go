package auth

import (
	"context"

	"github.com/khoahotran/portfolio-cms/internal/domain/session"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("auth_usecase")

// SessionUseCase opens admin session gates over a per-request store.
type SessionUseCase struct {
	adminPassword string
	logger        logger.Logger
}

func NewSessionUseCase(adminPassword string, log logger.Logger) *SessionUseCase {
	if adminPassword == "" {
		log.Warn("No admin password configured, admin login is disabled")
	}
	return &SessionUseCase{adminPassword: adminPassword, logger: log}
}

func (uc *SessionUseCase) Open(ctx context.Context, store session.Store) (*session.Gate, error) {
	gate, err := session.NewGate(ctx, uc.adminPassword, store)
	if err != nil {
		return nil, apperror.NewInternal("failed to restore admin session", err)
	}
	return gate, nil
}

type LoginInput struct {
	Password string
}

type LoginOutput struct {
	Authenticated bool
}

// Login authenticates against the configured password. A wrong password
// is returned as Unauthorized.
func (uc *SessionUseCase) Login(ctx context.Context, store session.Store, input LoginInput) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	gate, err := uc.Open(ctx, store)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	ok, err := gate.Login(ctx, input.Password)
	if err != nil {
		uc.logger.Error("Failed to persist admin session", err)
		err = apperror.NewInternal("failed to persist admin session", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Bool("authenticated", ok))
	if !ok {
		uc.logger.Warn("Rejected admin login attempt")
		return nil, apperror.NewUnauthorized("incorrect password", nil)
	}
	uc.logger.Info("Admin logged in")
	return &LoginOutput{Authenticated: true}, nil
}

// Logout always succeeds for the caller; failures to clear are logged.
func (uc *SessionUseCase) Logout(ctx context.Context, store session.Store) {
	ctx, span := tracer.Start(ctx, "Logout")
	defer span.End()

	gate, err := uc.Open(ctx, store)
	if err != nil {
		uc.logger.Error("Failed to restore session before logout", err)
		if err := store.Clear(ctx, session.FlagKey); err != nil {
			uc.logger.Error("Failed to clear admin session", err)
		}
		return
	}
	if err := gate.Logout(ctx); err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to clear admin session", err)
	}
}
