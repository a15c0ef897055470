package services

import (
	"context"
	"testing"
	"time"

	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/models"
	"github.com/engrsakib/qa-with-go/store/memstore"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *Service
	store  *memstore.Store
	events *events.Recorder
	clock  *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	f := &fixture{store: memstore.New(), events: &events.Recorder{}, clock: &now}
	f.svc = New(f.store, f.events, WithClock(func() time.Time { return *f.clock }))
	return f
}

// tick advances the fixture clock so later writes sort after earlier ones.
func (f *fixture) tick() {
	*f.clock = f.clock.Add(time.Minute)
}

func (f *fixture) account(t *testing.T, username string, ut models.UserType) models.Account {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.CreateAccount(ctx, NewAccount{Username: username, Email: username + "@example.com", Password: "secret123"})
	require.NoError(t, err)
	if ut != models.UserTypeUser {
		_, err = f.svc.SetUserType(ctx, username, ut)
		require.NoError(t, err)
	}
	a, err := f.svc.GetAccount(ctx, username)
	require.NoError(t, err)
	return a
}

func (f *fixture) question(t *testing.T, by, title string, tags ...string) models.QuestionView {
	t.Helper()
	if len(tags) == 0 {
		tags = []string{"go"}
	}
	in := NewQuestion{Title: title, Text: "body of " + title, AskedBy: by}
	for _, name := range tags {
		in.Tags = append(in.Tags, NewTag{Name: name})
	}
	q, err := f.svc.AddQuestion(context.Background(), in)
	require.NoError(t, err)
	f.tick()
	return q
}

func (f *fixture) answer(t *testing.T, q models.QuestionView, by, text string) models.AnswerView {
	t.Helper()
	a, err := f.svc.AddAnswer(context.Background(), q.ID, NewAnswer{Text: text, AnsBy: by})
	require.NoError(t, err)
	f.tick()
	return a
}
