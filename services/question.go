package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxTitleLength = 100
	maxTags        = 5
	maxTagLength   = 20
)

type NewTag struct {
	Name        string
	Description string
}

type NewQuestion struct {
	Title   string
	Text    string
	Tags    []NewTag
	AskedBy string
}

func validateQuestion(title, text string, tags []NewTag) error {
	title, text = strings.TrimSpace(title), strings.TrimSpace(text)
	switch {
	case title == "":
		return errorz.Validation("title cannot be empty")
	case utf8.RuneCountInString(title) > maxTitleLength:
		return errorz.Validation("title cannot be more than %d characters", maxTitleLength)
	case text == "":
		return errorz.Validation("question text cannot be empty")
	case len(tags) == 0:
		return errorz.Validation("should have at least 1 tag")
	case len(tags) > maxTags:
		return errorz.Validation("cannot have more than %d tags", maxTags)
	}
	for _, t := range tags {
		name := strings.TrimSpace(t.Name)
		if name == "" || strings.ContainsAny(name, " \t\n") {
			return errorz.Validation("invalid tag name %q", t.Name)
		}
		if utf8.RuneCountInString(name) > maxTagLength {
			return errorz.Validation("new tag length cannot be more than %d", maxTagLength)
		}
	}
	return nil
}

// upsertTags returns the ids of the named tags, creating missing ones.
// Duplicate names in the input collapse to one tag.
func (s *Service) upsertTags(ctx context.Context, tags []NewTag) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		name := strings.ToLower(strings.TrimSpace(t.Name))
		if seen[name] {
			continue
		}
		seen[name] = true
		tag, err := s.store.Tags().Upsert(ctx, name, strings.TrimSpace(t.Description))
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func (s *Service) AddQuestion(ctx context.Context, in NewQuestion) (models.QuestionView, error) {
	if err := validateQuestion(in.Title, in.Text, in.Tags); err != nil {
		return models.QuestionView{}, err
	}
	if in.AskedBy == "" {
		return models.QuestionView{}, errorz.Validation("askedBy is required")
	}
	tagIDs, err := s.upsertTags(ctx, in.Tags)
	if err != nil {
		return models.QuestionView{}, err
	}

	q := models.Question{
		Title:       strings.TrimSpace(in.Title),
		Text:        strings.TrimSpace(in.Text),
		Tags:        tagIDs,
		Answers:     []primitive.ObjectID{},
		AskedBy:     in.AskedBy,
		AskDateTime: s.now(),
		Views:       []string{},
		UpVotes:     []string{},
		DownVotes:   []string{},
		Comments:    []primitive.ObjectID{},
	}
	if err := s.store.Questions().Insert(ctx, &q); err != nil {
		return models.QuestionView{}, err
	}
	followUp("record question on account", s.store.Accounts().AddToList(ctx, in.AskedBy, models.ListQuestions, q.ID))

	view, err := s.HydrateQuestion(ctx, q)
	if err != nil {
		return models.QuestionView{}, err
	}
	s.publish(ctx, events.QuestionUpdate, events.QuestionPayload{Question: view})
	return view, nil
}

// GetQuestions returns every question matching search, ordered by order.
func (s *Service) GetQuestions(ctx context.Context, order Order, search string) ([]models.QuestionView, error) {
	qs, err := s.store.Questions().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.HydrateQuestions(ctx, qs)
	if err != nil {
		return nil, err
	}
	return SortQuestions(FilterBySearch(views, search), order), nil
}

// GetQuestionByID returns the hydrated question. A non-empty username is
// recorded as a viewer and the new view count is pushed to clients.
func (s *Service) GetQuestionByID(ctx context.Context, id primitive.ObjectID, username string) (models.QuestionView, error) {
	var (
		q   models.Question
		err error
	)
	if username != "" {
		q, err = s.store.Questions().AddView(ctx, id, username)
	} else {
		q, err = s.store.Questions().FindByID(ctx, id)
	}
	if err != nil {
		return models.QuestionView{}, err
	}
	view, err := s.HydrateQuestion(ctx, q)
	if err != nil {
		return models.QuestionView{}, err
	}
	if username != "" {
		s.publish(ctx, events.QuestionUpdate, events.QuestionPayload{Question: view})
	}
	return view, nil
}
