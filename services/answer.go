package services

import (
	"context"
	"slices"
	"strings"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NewAnswer struct {
	Text  string
	AnsBy string
}

// AddAnswer stores the answer and links it to the question. The link is a
// conditional write that fails on a locked question; the stored answer is
// then deleted again so nothing of it persists.
func (s *Service) AddAnswer(ctx context.Context, qid primitive.ObjectID, in NewAnswer) (models.AnswerView, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return models.AnswerView{}, errorz.Validation("answer text cannot be empty")
	}
	if in.AnsBy == "" {
		return models.AnswerView{}, errorz.Validation("ansBy is required")
	}

	a := models.Answer{
		Text:        text,
		AnsBy:       in.AnsBy,
		AnsDateTime: s.now(),
		Comments:    []primitive.ObjectID{},
	}
	if err := s.store.Answers().Insert(ctx, &a); err != nil {
		return models.AnswerView{}, err
	}
	if err := s.store.Questions().PushAnswer(ctx, qid, a.ID); err != nil {
		_, rbErr := s.store.Answers().Delete(ctx, a.ID)
		followUp("roll back unlinked answer", rbErr)
		return models.AnswerView{}, err
	}
	followUp("record answer on account", s.store.Accounts().AddToList(ctx, in.AnsBy, models.ListAnswers, a.ID))

	view, err := s.HydrateAnswer(ctx, a)
	if err != nil {
		return models.AnswerView{}, err
	}
	s.publish(ctx, events.AnswerUpdate, events.AnswerPayload{QID: qid.Hex(), Answer: view})
	return view, nil
}

// MarkCorrect lets the asker accept one answer. Any previously accepted
// answer on the same question is cleared.
func (s *Service) MarkCorrect(ctx context.Context, qid, aid primitive.ObjectID, username string) (models.QuestionView, error) {
	q, err := s.store.Questions().FindByID(ctx, qid)
	if err != nil {
		return models.QuestionView{}, err
	}
	if q.AskedBy != username {
		return models.QuestionView{}, errorz.Forbidden("only the asker can accept an answer")
	}
	if q.Locked {
		return models.QuestionView{}, errorz.Locked("question is locked")
	}
	if !slices.Contains(q.Answers, aid) {
		return models.QuestionView{}, errorz.NotFound("answer not found on question")
	}
	for _, id := range q.Answers {
		if _, err := s.store.Answers().SetCorrect(ctx, id, id == aid); err != nil && id == aid {
			return models.QuestionView{}, err
		}
	}

	q, err = s.store.Questions().FindByID(ctx, qid)
	if err != nil {
		return models.QuestionView{}, err
	}
	view, err := s.HydrateQuestion(ctx, q)
	if err != nil {
		return models.QuestionView{}, err
	}
	s.publish(ctx, events.QuestionUpdate, events.QuestionPayload{Question: view})
	return view, nil
}
