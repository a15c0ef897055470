package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mailerSpy struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func (m *mailerSpy) SendWelcome(_ context.Context, email, _ string) error {
	m.mu.Lock()
	m.sent = append(m.sent, email)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

func TestCreateAccount(t *testing.T) {
	f := newFixture(t)
	spy := &mailerSpy{done: make(chan struct{}, 1)}
	f.svc = New(f.store, f.events, WithMailer(spy), WithClock(func() time.Time { return *f.clock }))
	ctx := context.Background()

	a, err := f.svc.CreateAccount(ctx, NewAccount{Username: "alice", Email: "Alice@Example.com", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, models.UserTypeUser, a.UserType)
	assert.Equal(t, "alice@example.com", a.Email)
	assert.NotEqual(t, "secret123", a.HashedPassword)
	assert.NotNil(t, a.Questions)
	<-spy.done
	assert.Equal(t, []string{"alice@example.com"}, spy.sent)
}

func TestCreateAccountConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.CreateAccount(ctx, NewAccount{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.svc.CreateAccount(ctx, NewAccount{Username: "alice", Email: "other@example.com", Password: "secret123"})
	require.ErrorIs(t, err, errorz.ErrConflict)
	assert.Equal(t, "username already exists", errorz.Message(err))

	_, err = f.svc.CreateAccount(ctx, NewAccount{Username: "bob", Email: "alice@example.com", Password: "secret123"})
	require.ErrorIs(t, err, errorz.ErrConflict)
	assert.Equal(t, "email already exists", errorz.Message(err))

	_, err = f.svc.CreateAccount(ctx, NewAccount{Username: "bob", Email: "bob@example.com", Password: "secret123"})
	assert.NoError(t, err)
}

func TestCreateAccountValidation(t *testing.T) {
	f := newFixture(t)
	cases := map[string]NewAccount{
		"empty username":  {Email: "a@example.com", Password: "secret123"},
		"spaced username": {Username: "a b", Email: "a@example.com", Password: "secret123"},
		"bad email":       {Username: "a", Email: "not-an-email", Password: "secret123"},
		"short password":  {Username: "a", Email: "a@example.com", Password: "123"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.CreateAccount(context.Background(), in)
			assert.ErrorIs(t, err, errorz.ErrValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "alice", models.UserTypeUser)

	a, err := f.svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.Username)

	_, wrong := f.svc.Login(ctx, "alice", "nope")
	_, missing := f.svc.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, wrong, errorz.ErrUnauthorized)
	assert.ErrorIs(t, missing, errorz.ErrUnauthorized)
	assert.Equal(t, errorz.Message(wrong), errorz.Message(missing))
}

func TestUpdateSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "alice", models.UserTypeUser)

	a, err := f.svc.UpdateSettings(ctx, "alice", models.Settings{DarkMode: true, TextSize: "large"})
	require.NoError(t, err)
	assert.True(t, a.Settings.DarkMode)
	assert.Equal(t, "large", a.Settings.TextSize)
	evs := f.events.OfType(events.UserUpdate)
	require.NotEmpty(t, evs)
	pushed, err := json.Marshal(evs[len(evs)-1].Payload)
	require.NoError(t, err)
	assert.Contains(t, string(pushed), `"username":"alice"`)
	assert.NotContains(t, string(pushed), "email")

	_, err = f.svc.UpdateSettings(ctx, "alice", models.Settings{TextSize: "huge"})
	assert.ErrorIs(t, err, errorz.ErrValidation)

	_, err = f.svc.UpdateSettings(ctx, "nobody", models.Settings{})
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}

func TestSetUserType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "alice", models.UserTypeUser)

	a, err := f.svc.SetUserType(ctx, "alice", models.UserTypeModerator)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeModerator, a.UserType)

	_, err = f.svc.SetUserType(ctx, "alice", "admin")
	assert.ErrorIs(t, err, errorz.ErrValidation)
}
