// Package mailer delivers verification emails over SMTP. Delivery is best
// effort: callers enqueue through the Dispatcher and never observe send
// failures.
package mailer

import (
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"

	"github.com/urraccon/contacts-api/internal/config"
)

// Mailer sends a verification email carrying the confirmation link.
type Mailer interface {
	SendVerificationEmail(to, token string) error
}

// SMTPMailer delivers mail through a configured SMTP relay.
type SMTPMailer struct {
	cfg     config.SMTP
	baseURL string
}

// NewSMTP builds a mailer from SMTP settings. baseURL prefixes the
// verification links embedded in outgoing messages.
func NewSMTP(cfg config.SMTP, baseURL string) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, baseURL: baseURL}
}

// SendVerificationEmail composes and sends the verification message. With no
// SMTP host configured the message is logged instead, which keeps local
// setups usable without a relay.
func (m *SMTPMailer) SendVerificationEmail(to, token string) error {
	link := fmt.Sprintf("%s/api/users/verify/%s", m.baseURL, token)

	if m.cfg.Host == "" {
		log.Printf("mailer: smtp disabled, verification link for %s: %s", to, link)
		return nil
	}

	msg := m.buildMessage(to, link)
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.from(), []string{to}, msg); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.Username
}

func (m *SMTPMailer) buildMessage(to, link string) []byte {
	const boundary = "contacts-api-alt"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from())
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Verify your email\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString("Verify your email address and start adding contacts in your new contact management application.\r\n")
	b.WriteString("Copy the verification link into your browser's address bar:\r\n")
	fmt.Fprintf(&b, "%s\r\n", link)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString("Verify your email address and start adding contacts in your new contact management application.<br/>\r\n")
	fmt.Fprintf(&b, "<a href=%q>Verify email</a><br/>\r\n", link)
	fmt.Fprintf(&b, "Or copy the verification link into your browser's address bar:<br/>%s\r\n", link)

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
