package email

import (
	"context"
	"fmt"
	"time"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/config"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/logging"
)

const verificationSubject = "Verify Your Email Address"

// Sender delivers transactional mail. Implementations block until the
// provider accepted or rejected the message.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, link string) error
}

// New selects the sender configured by cfg.Provider.
func New(cfg config.EmailConfig, linkMaxAge time.Duration, logger *logging.Logger) (Sender, error) {
	switch cfg.Provider {
	case config.EmailProviderSMTP:
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail, linkMaxAge), nil
	case config.EmailProviderMailgun:
		return NewMailgunSender(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunBaseURL, cfg.FromEmail, linkMaxAge)
	case config.EmailProviderConsole:
		return NewConsoleSender(logger), nil
	default:
		return nil, fmt.Errorf("unsupported email provider %q", cfg.Provider)
	}
}

// ConsoleSender logs links instead of mailing them. Used in development.
type ConsoleSender struct {
	logger *logging.Logger
}

func NewConsoleSender(logger *logging.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

func (s *ConsoleSender) SendVerificationEmail(_ context.Context, to, link string) error {
	s.logger.Info("verification email", "email", to, "subject", verificationSubject, "link", link)
	return nil
}
