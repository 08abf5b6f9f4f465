// Package mailer sends plain-text notification mail through the
// configured SMTP relay. Delivery, spam handling and retries are the
// relay's problem; a send here either hands the message off or fails.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Message is a single plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer dispatches notification messages.
type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer talks to a plain SMTP relay (Mailpit locally, the provider's
// relay in production).
type SMTPMailer struct {
	addr string
	from string
}

// NewSMTPMailer constructs a mailer for the given relay.
func NewSMTPMailer(host string, port int, from string) *SMTPMailer {
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
}

// Send delivers one message synchronously.
func (m *SMTPMailer) Send(msg Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(m.addr, nil, m.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", msg.To, err)
	}
	return nil
}
