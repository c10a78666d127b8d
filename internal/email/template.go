package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var verificationTemplate = template.Must(template.New("verification").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background-color: #B0306A;
            color: white;
            padding: 20px;
            text-align: center;
            border-radius: 5px 5px 0 0;
        }
        .content {
            background-color: #fbf6f8;
            padding: 30px;
            border-radius: 0 0 5px 5px;
        }
        .button {
            display: inline-block;
            background-color: #B0306A;
            color: white !important;
            padding: 12px 30px;
            text-decoration: none;
            border-radius: 5px;
            margin: 20px 0;
        }
        .footer {
            margin-top: 30px;
            font-size: 12px;
            color: #666;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Welcome to Makeover Me</h1>
    </div>
    <div class="content">
        <h2>Confirm your email</h2>
        <p>Thanks for joining! Click the button below to confirm your email address and start shopping.</p>

        <a href="{{.Link}}" class="button" style="color: white !important;">Verify Email</a>

        <p>Or paste this link into your browser:</p>
        <p style="word-break: break-all; color: #B0306A;">{{.Link}}</p>

        <p style="margin-top: 30px;">If you did not sign up for Makeover Me, ignore this email.</p>
    </div>
    <div class="footer">
        <p>This link expires in {{.ExpiresIn}}.</p>
    </div>
</body>
</html>
`))

// renderVerification builds the HTML body and a plain-text fallback.
func renderVerification(link string, maxAge time.Duration) (string, string, error) {
	data := struct {
		Link      string
		ExpiresIn string
	}{
		Link:      link,
		ExpiresIn: humanDuration(maxAge),
	}

	var buf bytes.Buffer
	if err := verificationTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("execute template: %w", err)
	}

	text := fmt.Sprintf("Confirm your Makeover Me account: %s\nThis link expires in %s.", link, data.ExpiresIn)
	return buf.String(), text, nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
