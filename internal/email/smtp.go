package email

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"
)

// SMTPSender sends mail through an authenticated SMTP relay.
type SMTPSender struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	fromEmail    string
	linkMaxAge   time.Duration
}

func NewSMTPSender(smtpHost, smtpPort, smtpUser, smtpPassword, fromEmail string, linkMaxAge time.Duration) *SMTPSender {
	if fromEmail == "" {
		fromEmail = smtpUser
	}
	return &SMTPSender{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpPassword: smtpPassword,
		fromEmail:    fromEmail,
		linkMaxAge:   linkMaxAge,
	}
}

// SendVerificationEmail mails the verification link. Called from the notification workers.
func (s *SMTPSender) SendVerificationEmail(ctx context.Context, to, link string) error {
	html, text, err := renderVerification(link, s.linkMaxAge)
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := buildMessage(s.fromEmail, to, verificationSubject, html, text)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	if err := s.sendEmail(to, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func (s *SMTPSender) sendEmail(to string, msg []byte) error {
	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	return smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg)
}

// buildMessage renders a multipart/alternative message, plain text first so
// clients that prefer the richer part pick the HTML.
func buildMessage(from, to, subject, html, text string) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct{ contentType, content string }{
		{"text/plain; charset=UTF-8", text},
		{"text/html; charset=UTF-8", html},
	}
	for _, p := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {p.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
