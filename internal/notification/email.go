package notification

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/clubhubdev/clubhub-backend/config"
	"github.com/clubhubdev/clubhub-backend/internal/registration"
)

// Emailer sends registration confirmations with the QR code attached
type Emailer struct {
	host      string
	port      string
	username  string
	password  string
	fromName  string
	fromEmail string
}

func NewEmailer(cfg *config.Config) *Emailer {
	fromEmail := cfg.SMTPFromEmail
	if fromEmail == "" {
		fromEmail = cfg.SMTPUsername
	}
	return &Emailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromName:  cfg.SMTPFromName,
		fromEmail: fromEmail,
	}
}

// SendRegistrationConfirmation emails the participant their RSVP
// details and QR code PNG
func (e *Emailer) SendRegistrationConfirmation(msg registration.ConfirmationMessage) error {
	if e.host == "" || e.username == "" || e.password == "" {
		fmt.Println("⚠️ SMTP not configured. Confirmation email not sent.")
		return nil
	}

	subject := fmt.Sprintf("RSVP Confirmed: %s", msg.EventTitle)
	greeting := msg.ParticipantName
	if greeting == "" {
		greeting = "there"
	}

	intro := "Your RSVP is confirmed!"
	if msg.Reactivated {
		intro = "Your RSVP has been reactivated."
	}

	body := fmt.Sprintf(
		"Hello %s,\n\n%s\n\nEvent: %s\nDate: %s\nTime: %s\nLocation: %s\n\n"+
			"Present the attached QR code at the entrance for check-in.\n\nRegards,\nClubHub Team",
		greeting, intro, msg.EventTitle, msg.EventDate, msg.EventTime, msg.EventLocation,
	)

	var qrPNG []byte
	if msg.QRCodePath != "" {
		data, err := os.ReadFile(msg.QRCodePath)
		if err == nil {
			qrPNG = data
		}
	}

	raw := buildMIMEMessage(e.from(), msg.Email, subject, body, qrPNG)
	return e.send(msg.Email, raw)
}

func (e *Emailer) from() string {
	if e.fromName != "" {
		return fmt.Sprintf("%s <%s>", e.fromName, e.fromEmail)
	}
	return e.fromEmail
}

// buildMIMEMessage assembles a multipart/mixed message with an optional
// PNG attachment
func buildMIMEMessage(from, to, subject, body string, attachment []byte) []byte {
	const boundary = "clubhub-mime-boundary"

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	if len(attachment) == 0 {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(body)
		return []byte(b.String())
	}

	b.WriteString("Content-Type: multipart/mixed; boundary=\"" + boundary + "\"\r\n\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: image/png; name=\"qr-code.png\"\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString("Content-Disposition: attachment; filename=\"qr-code.png\"\r\n\r\n")

	encoded := base64.StdEncoding.EncodeToString(attachment)
	for len(encoded) > 76 {
		b.WriteString(encoded[:76] + "\r\n")
		encoded = encoded[76:]
	}
	b.WriteString(encoded + "\r\n")
	b.WriteString("--" + boundary + "--\r\n")

	return []byte(b.String())
}

func (e *Emailer) send(to string, raw []byte) error {
	addr := fmt.Sprintf("%s:%s", e.host, e.port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         e.host,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", e.username, e.password, e.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(e.fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close message: %w", err)
	}

	return client.Quit()
}
