package service

import "context"

type Mailer interface {
	SendContactMessage(ctx context.Context, msg ContactMessage) error
}
