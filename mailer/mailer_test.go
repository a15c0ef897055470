package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	msgs []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.msgs = append(c.msgs, m...)
	return c.err
}

func TestSendWelcome(t *testing.T) {
	sender := &captureSender{}
	m := NewWithSender("noreply@example.com", sender)

	require.NoError(t, m.SendWelcome(context.Background(), "alice@example.com", "<alice>"))

	require.Len(t, sender.msgs, 1)
	msg := sender.msgs[0]
	assert.Equal(t, []string{"alice@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"noreply@example.com"}, msg.GetHeader("From"))

	var raw bytes.Buffer
	_, err := msg.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "&lt;alice&gt;")
}

func TestSendWelcomeError(t *testing.T) {
	m := NewWithSender("noreply@example.com", &captureSender{err: errors.New("dial tcp: refused")})

	err := m.SendWelcome(context.Background(), "alice@example.com", "alice")

	assert.ErrorContains(t, err, "send welcome mail")
}

func TestSendWelcomeCanceled(t *testing.T) {
	sender := &captureSender{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewWithSender("noreply@example.com", sender).SendWelcome(ctx, "alice@example.com", "alice")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sender.msgs)
}
