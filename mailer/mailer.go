// Package mailer sends account email over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

var welcomeBody = template.Must(template.New("welcome").Parse(`
	<h1>Welcome, {{.}}!</h1>
	<p>Your account is ready. Ask a question, answer one, or just look around.</p>
`))

// Sender is what Mailer needs from a dialer. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	from   string
	sender Sender
}

func New(host string, port int, email, password string) *Mailer {
	return &Mailer{from: email, sender: gomail.NewDialer(host, port, email, password)}
}

// NewWithSender is New with a caller-supplied transport.
func NewWithSender(from string, s Sender) *Mailer {
	return &Mailer{from: from, sender: s}
}

func (m *Mailer) SendWelcome(ctx context.Context, email, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var body bytes.Buffer
	if err := welcomeBody.Execute(&body, username); err != nil {
		return fmt.Errorf("render welcome mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Welcome to the Q&A forum")
	msg.SetBody("text/html", body.String())

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	return nil
}

// Nop discards mail. It is used when SMTP is not configured.
type Nop struct{}

func (Nop) SendWelcome(context.Context, string, string) error { return nil }
