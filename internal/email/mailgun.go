package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

// MailgunSender sends mail through the Mailgun HTTP API.
type MailgunSender struct {
	mg         *mailgun.MailgunImpl
	fromEmail  string
	linkMaxAge time.Duration
}

// NewMailgunSender validates the credentials and builds a client. An empty
// baseURL keeps the US endpoint.
func NewMailgunSender(domain, apiKey, baseURL, fromEmail string, linkMaxAge time.Duration) (*MailgunSender, error) {
	if domain == "" || apiKey == "" || fromEmail == "" {
		return nil, errors.New("invalid Mailgun configuration")
	}

	mg := mailgun.NewMailgun(domain, apiKey)
	if baseURL != "" {
		mg.SetAPIBase(baseURL)
	}

	return &MailgunSender{
		mg:         mg,
		fromEmail:  fromEmail,
		linkMaxAge: linkMaxAge,
	}, nil
}

func (s *MailgunSender) SendVerificationEmail(ctx context.Context, to, link string) error {
	html, text, err := renderVerification(link, s.linkMaxAge)
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	message := s.mg.NewMessage(s.fromEmail, verificationSubject, text, to)
	message.SetHtml(html)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, _, err := s.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}
