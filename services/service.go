// Package services holds the question/answer logic: ordering and search,
// voting, moderation actions, hydration of stored references, drafts and
// accounts. It talks to persistence through store.Store and announces
// committed changes through events.Publisher.
package services

import (
	"context"
	"log"
	"time"

	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/store"
)

// Mailer sends the welcome message after an account is created.
type Mailer interface {
	SendWelcome(ctx context.Context, email, username string) error
}

type Service struct {
	store  store.Store
	events events.Publisher
	mailer Mailer
	now    func() time.Time
}

type Option func(*Service)

func WithMailer(m Mailer) Option {
	return func(s *Service) { s.mailer = m }
}

// WithClock replaces time.Now for timestamps written by the service.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(st store.Store, pub events.Publisher, opts ...Option) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	s := &Service{store: st, events: pub, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) publish(ctx context.Context, t events.Type, payload any) {
	if err := s.events.Publish(ctx, events.Event{Type: t, Payload: payload}); err != nil {
		log.Printf("services: publish %s: %v", t, err)
	}
}

// followUp logs a failed secondary write. The primary write already
// committed, so the request still succeeds.
func followUp(op string, err error) {
	if err != nil {
		log.Printf("services: %s: %v", op, err)
	}
}
