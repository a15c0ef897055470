package services

import (
	"context"

	"github.com/engrsakib/qa-with-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HydrateQuestion resolves the tag, answer and comment references of q.
// References to documents that no longer exist are skipped.
func (s *Service) HydrateQuestion(ctx context.Context, q models.Question) (models.QuestionView, error) {
	views, err := s.HydrateQuestions(ctx, []models.Question{q})
	if err != nil {
		return models.QuestionView{}, err
	}
	return views[0], nil
}

// HydrateQuestions resolves a batch of questions with one lookup per
// collection rather than one per question.
func (s *Service) HydrateQuestions(ctx context.Context, qs []models.Question) ([]models.QuestionView, error) {
	var tagIDs, answerIDs, commentIDs []primitive.ObjectID
	for _, q := range qs {
		tagIDs = append(tagIDs, q.Tags...)
		answerIDs = append(answerIDs, q.Answers...)
		commentIDs = append(commentIDs, q.Comments...)
	}

	tags, err := s.store.Tags().FindMany(ctx, uniqueIDs(tagIDs))
	if err != nil {
		return nil, err
	}
	answers, err := s.store.Answers().FindMany(ctx, uniqueIDs(answerIDs))
	if err != nil {
		return nil, err
	}
	for _, a := range answers {
		commentIDs = append(commentIDs, a.Comments...)
	}
	comments, err := s.store.Comments().FindMany(ctx, uniqueIDs(commentIDs))
	if err != nil {
		return nil, err
	}

	tagByID := indexBy(tags, func(t models.Tag) primitive.ObjectID { return t.ID })
	answerByID := indexBy(answers, func(a models.Answer) primitive.ObjectID { return a.ID })
	commentByID := indexBy(comments, func(c models.Comment) primitive.ObjectID { return c.ID })

	views := make([]models.QuestionView, 0, len(qs))
	for _, q := range qs {
		views = append(views, questionView(q, tagByID, answerByID, commentByID))
	}
	return views, nil
}

func (s *Service) HydrateAnswer(ctx context.Context, a models.Answer) (models.AnswerView, error) {
	comments, err := s.store.Comments().FindMany(ctx, a.Comments)
	if err != nil {
		return models.AnswerView{}, err
	}
	return answerView(a, indexBy(comments, func(c models.Comment) primitive.ObjectID { return c.ID })), nil
}

func questionView(q models.Question, tags map[primitive.ObjectID]models.Tag, answers map[primitive.ObjectID]models.Answer, comments map[primitive.ObjectID]models.Comment) models.QuestionView {
	v := models.QuestionView{
		ID:          q.ID,
		Title:       q.Title,
		Text:        q.Text,
		Tags:        resolve(q.Tags, tags),
		Answers:     make([]models.AnswerView, 0, len(q.Answers)),
		AskedBy:     q.AskedBy,
		AskDateTime: q.AskDateTime,
		Views:       nonNil(q.Views),
		UpVotes:     nonNil(q.UpVotes),
		DownVotes:   nonNil(q.DownVotes),
		Comments:    resolve(q.Comments, comments),
		Locked:      q.Locked,
		Pinned:      q.Pinned,
	}
	for _, id := range q.Answers {
		if a, ok := answers[id]; ok {
			v.Answers = append(v.Answers, answerView(a, comments))
		}
	}
	return v
}

func answerView(a models.Answer, comments map[primitive.ObjectID]models.Comment) models.AnswerView {
	return models.AnswerView{
		ID:          a.ID,
		Text:        a.Text,
		AnsBy:       a.AnsBy,
		AnsDateTime: a.AnsDateTime,
		Comments:    resolve(a.Comments, comments),
		Locked:      a.Locked,
		Pinned:      a.Pinned,
		IsCorrect:   a.IsCorrect,
	}
}

func resolve[T any](ids []primitive.ObjectID, byID map[primitive.ObjectID]T) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

func indexBy[T any](items []T, key func(T) primitive.ObjectID) map[primitive.ObjectID]T {
	m := make(map[primitive.ObjectID]T, len(items))
	for _, it := range items {
		m[key(it)] = it
	}
	return m
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
