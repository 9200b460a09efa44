package logmail

import (
	"context"

	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/ports/mail"
)

// Sender solo registra el mensaje. Para dev / entornos sin proveedor.
type Sender struct {
	log logger.Logger
}

func New(log logger.Logger) *Sender {
	if log == nil {
		log = logger.NewNop()
	}
	return &Sender{log: log.With(map[string]any{"component": "logmail"})}
}

func (s *Sender) Send(_ context.Context, msg mail.Message) error {
	s.log.Info("mail sent", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}
