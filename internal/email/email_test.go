package email

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/mail"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/config"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/logging"
)

func TestRenderVerification(t *testing.T) {
	link := "http://localhost:3000/auth/verify-email?token=abc"

	html, text, err := renderVerification(link, 600*time.Second)
	require.NoError(t, err)

	assert.Contains(t, html, `href="http://localhost:3000/auth/verify-email?token=abc"`)
	assert.Contains(t, html, "10 minutes")
	assert.Contains(t, text, link)
}

func TestRenderVerification_EscapesLink(t *testing.T) {
	html, _, err := renderVerification(`http://x/"><script>`, time.Hour)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "1 hour")
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 minute", humanDuration(time.Minute))
	assert.Equal(t, "90 seconds", humanDuration(90*time.Second))
	assert.Equal(t, "2 hours", humanDuration(2*time.Hour))
}

func TestBuildMessage_CarriesTextAndHTML(t *testing.T) {
	raw, err := buildMessage("shop@example.com", "asha@example.com", verificationSubject, "<p>hi</p>", "hi")
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Verify Your Email Address", msg.Header.Get("Subject"))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	reader := multipart.NewReader(msg.Body, params["boundary"])
	var types, bodies []string
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(part)
		require.NoError(t, err)
		types = append(types, part.Header.Get("Content-Type"))
		bodies = append(bodies, string(content))
	}

	assert.Equal(t, []string{"text/plain; charset=UTF-8", "text/html; charset=UTF-8"}, types)
	assert.Equal(t, []string{"hi", "<p>hi</p>"}, bodies)
}

func TestNew_SelectsProvider(t *testing.T) {
	logger := logging.Discard()

	s, err := New(config.EmailConfig{Provider: config.EmailProviderConsole}, time.Minute, logger)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleSender{}, s)

	s, err = New(config.EmailConfig{Provider: config.EmailProviderSMTP, SMTPUser: "shop@example.com"}, time.Minute, logger)
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)

	_, err = New(config.EmailConfig{Provider: config.EmailProviderMailgun}, time.Minute, logger)
	assert.Error(t, err, "mailgun needs domain, key and sender")

	s, err = New(config.EmailConfig{
		Provider:      config.EmailProviderMailgun,
		MailgunDomain: "mg.example.com",
		MailgunAPIKey: "key",
		FromEmail:     "shop@example.com",
	}, time.Minute, logger)
	require.NoError(t, err)
	assert.IsType(t, &MailgunSender{}, s)

	_, err = New(config.EmailConfig{Provider: "pigeon"}, time.Minute, logger)
	assert.Error(t, err)
}

func TestConsoleSender_LogsLink(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithHandler(slog.NewJSONHandler(&buf, nil))

	err := NewConsoleSender(logger).SendVerificationEmail(context.Background(), "asha@example.com", "http://x/verify")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "http://x/verify")
}
