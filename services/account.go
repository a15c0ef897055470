package services

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/models"
	"github.com/engrsakib/qa-with-go/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const minPasswordLength = 6

type NewAccount struct {
	Username string
	Email    string
	Password string
}

// CreateAccount registers a user. Username and email must both be unused.
func (s *Service) CreateAccount(ctx context.Context, in NewAccount) (models.Account, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || strings.ContainsAny(username, " \t\n") {
		return models.Account{}, errorz.Validation("invalid username")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.Account{}, errorz.Validation("invalid email")
	}
	if len(in.Password) < minPasswordLength {
		return models.Account{}, errorz.Validation("password must be at least %d characters", minPasswordLength)
	}

	accounts := s.store.Accounts()
	if err := absent(accounts.FindByUsername(ctx, username)); err != nil {
		if errors.Is(err, errorz.ErrConflict) {
			return models.Account{}, errorz.Conflict("username already exists")
		}
		return models.Account{}, err
	}
	if err := absent(accounts.FindByEmail(ctx, email)); err != nil {
		if errors.Is(err, errorz.ErrConflict) {
			return models.Account{}, errorz.Conflict("email already exists")
		}
		return models.Account{}, err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.Account{}, errorz.Storage("hash password", err)
	}
	a := models.Account{
		Username:           username,
		Email:              email,
		HashedPassword:     hashed,
		UserType:           models.UserTypeUser,
		DateCreated:        s.now(),
		Questions:          []primitive.ObjectID{},
		Answers:            []primitive.ObjectID{},
		Comments:           []primitive.ObjectID{},
		UpVotedQuestions:   []primitive.ObjectID{},
		DownVotedQuestions: []primitive.ObjectID{},
		QuestionDrafts:     []primitive.ObjectID{},
		AnswerDrafts:       []primitive.ObjectID{},
		Settings:           models.Settings{TextSize: "medium"},
	}
	// The unique indexes still decide when two registrations race.
	if err := accounts.Insert(ctx, &a); err != nil {
		return models.Account{}, err
	}

	if s.mailer != nil {
		go func() {
			if err := s.mailer.SendWelcome(context.WithoutCancel(ctx), a.Email, a.Username); err != nil {
				log.Printf("services: welcome mail to %s: %v", a.Username, err)
			}
		}()
	}
	return a, nil
}

// absent turns a successful lookup into a conflict and a not-found into nil.
func absent(_ models.Account, err error) error {
	if err == nil {
		return errorz.ErrConflict
	}
	if errors.Is(err, errorz.ErrNotFound) {
		return nil
	}
	return err
}

// Login checks the password. Unknown users and wrong passwords get the same error.
func (s *Service) Login(ctx context.Context, username, password string) (models.Account, error) {
	a, err := s.store.Accounts().FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, errorz.ErrNotFound) {
		return models.Account{}, errorz.Unauthorized("invalid username or password")
	}
	if err != nil {
		return models.Account{}, err
	}
	if !utils.CheckPassword(a.HashedPassword, password) {
		return models.Account{}, errorz.Unauthorized("invalid username or password")
	}
	return a, nil
}

func (s *Service) GetAccount(ctx context.Context, username string) (models.Account, error) {
	return s.store.Accounts().FindByUsername(ctx, username)
}

func (s *Service) UpdateSettings(ctx context.Context, username string, settings models.Settings) (models.Account, error) {
	switch settings.TextSize {
	case "", "small", "medium", "large":
	default:
		return models.Account{}, errorz.Validation("invalid text size %q", settings.TextSize)
	}
	if settings.TextSize == "" {
		settings.TextSize = "medium"
	}
	a, err := s.store.Accounts().UpdateSettings(ctx, username, settings)
	if err != nil {
		return models.Account{}, err
	}
	s.publish(ctx, events.UserUpdate, events.UserPayload{User: a.Public()})
	return a, nil
}

// SetUserType changes an account's role. It backs the command-line promote
// tool; the HTTP promote action stays unimplemented.
func (s *Service) SetUserType(ctx context.Context, username string, t models.UserType) (models.Account, error) {
	if !t.Valid() {
		return models.Account{}, errorz.Validation("invalid user type %q", t)
	}
	a, err := s.store.Accounts().SetUserType(ctx, username, t)
	if err != nil {
		return models.Account{}, err
	}
	s.publish(ctx, events.UserUpdate, events.UserPayload{User: a.Public()})
	return a, nil
}
