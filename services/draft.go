package services

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuestionDraftInput struct {
	Username string
	DraftID  *primitive.ObjectID
	RealID   *primitive.ObjectID
	Edit     models.QuestionContent
}

// SaveQuestionDraft stores the draft without publishing it. Repeated saves
// reuse one record: the one named by DraftID, or else the user's existing
// draft of the same RealID.
func (s *Service) SaveQuestionDraft(ctx context.Context, in QuestionDraftInput) (models.DraftQuestion, error) {
	if in.Username == "" {
		return models.DraftQuestion{}, errorz.Validation("username is required")
	}
	drafts := s.store.Drafts()

	existing, err := s.findQuestionDraft(ctx, in)
	if err == nil {
		return drafts.UpdateQuestion(ctx, existing.ID, in.Edit)
	}
	if !errors.Is(err, errorz.ErrNotFound) || in.DraftID != nil {
		return models.DraftQuestion{}, err
	}

	if in.RealID != nil {
		q, err := s.store.Questions().FindByID(ctx, *in.RealID)
		if err != nil {
			return models.DraftQuestion{}, err
		}
		if q.AskedBy != in.Username {
			return models.DraftQuestion{}, errorz.Forbidden("only the asker can edit this question")
		}
	}
	d := models.DraftQuestion{Username: in.Username, RealID: in.RealID, Edit: in.Edit, UpdatedAt: s.now()}
	if err := drafts.InsertQuestion(ctx, &d); err != nil {
		return models.DraftQuestion{}, err
	}
	followUp("record draft on account", s.store.Accounts().AddToList(ctx, in.Username, models.ListQuestionDrafts, d.ID))
	return d, nil
}

func (s *Service) findQuestionDraft(ctx context.Context, in QuestionDraftInput) (models.DraftQuestion, error) {
	drafts := s.store.Drafts()
	switch {
	case in.DraftID != nil:
		d, err := drafts.FindQuestion(ctx, *in.DraftID)
		if err != nil {
			return models.DraftQuestion{}, err
		}
		if d.Username != in.Username {
			return models.DraftQuestion{}, errorz.Forbidden("draft belongs to another user")
		}
		return d, nil
	case in.RealID != nil:
		return drafts.FindQuestionByReal(ctx, in.Username, *in.RealID)
	}
	return models.DraftQuestion{}, errorz.NotFound("question draft not found")
}

// PostQuestionDraft publishes the draft, as a new question or as an edit of
// its RealID, then deletes the draft.
func (s *Service) PostQuestionDraft(ctx context.Context, username string, draftID primitive.ObjectID) (models.QuestionView, error) {
	d, err := s.store.Drafts().FindQuestion(ctx, draftID)
	if err != nil {
		return models.QuestionView{}, err
	}
	if d.Username != username {
		return models.QuestionView{}, errorz.Forbidden("draft belongs to another user")
	}

	tags := make([]NewTag, 0, len(d.Edit.TagNames))
	for _, name := range d.Edit.TagNames {
		tags = append(tags, NewTag{Name: name})
	}

	var view models.QuestionView
	if d.RealID == nil {
		view, err = s.AddQuestion(ctx, NewQuestion{Title: d.Edit.Title, Text: d.Edit.Text, Tags: tags, AskedBy: username})
	} else {
		view, err = s.editQuestion(ctx, *d.RealID, username, d.Edit.Title, d.Edit.Text, tags)
	}
	if err != nil {
		return models.QuestionView{}, err
	}

	if err := s.store.Drafts().DeleteQuestion(ctx, d.ID); err != nil {
		return models.QuestionView{}, err
	}
	followUp("clear draft on account", s.store.Accounts().RemoveFromList(ctx, username, models.ListQuestionDrafts, d.ID))
	return view, nil
}

func (s *Service) editQuestion(ctx context.Context, id primitive.ObjectID, username, title, text string, tags []NewTag) (models.QuestionView, error) {
	if err := validateQuestion(title, text, tags); err != nil {
		return models.QuestionView{}, err
	}
	q, err := s.store.Questions().FindByID(ctx, id)
	if err != nil {
		return models.QuestionView{}, err
	}
	if q.AskedBy != username {
		return models.QuestionView{}, errorz.Forbidden("only the asker can edit this question")
	}
	if q.Locked {
		return models.QuestionView{}, errorz.Locked("question is locked")
	}
	tagIDs, err := s.upsertTags(ctx, tags)
	if err != nil {
		return models.QuestionView{}, err
	}
	q, err = s.store.Questions().UpdateContent(ctx, id, strings.TrimSpace(title), strings.TrimSpace(text), tagIDs)
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

type AnswerDraftInput struct {
	Username   string
	DraftID    *primitive.ObjectID
	QuestionID primitive.ObjectID
	RealID     *primitive.ObjectID
	Edit       models.AnswerContent
}

func (s *Service) SaveAnswerDraft(ctx context.Context, in AnswerDraftInput) (models.DraftAnswer, error) {
	if in.Username == "" {
		return models.DraftAnswer{}, errorz.Validation("username is required")
	}
	if in.QuestionID.IsZero() {
		return models.DraftAnswer{}, errorz.Validation("questionId is required")
	}
	drafts := s.store.Drafts()

	existing, err := s.findAnswerDraft(ctx, in)
	if err == nil {
		return drafts.UpdateAnswer(ctx, existing.ID, in.Edit)
	}
	if !errors.Is(err, errorz.ErrNotFound) || in.DraftID != nil {
		return models.DraftAnswer{}, err
	}

	if _, err := s.store.Questions().FindByID(ctx, in.QuestionID); err != nil {
		return models.DraftAnswer{}, err
	}
	if in.RealID != nil {
		a, err := s.answerOnQuestion(ctx, in.QuestionID, *in.RealID)
		if err != nil {
			return models.DraftAnswer{}, err
		}
		if a.AnsBy != in.Username {
			return models.DraftAnswer{}, errorz.Forbidden("only the author can edit this answer")
		}
	}
	d := models.DraftAnswer{
		Username:   in.Username,
		QuestionID: in.QuestionID,
		RealID:     in.RealID,
		Edit:       in.Edit,
		UpdatedAt:  s.now(),
	}
	if err := drafts.InsertAnswer(ctx, &d); err != nil {
		return models.DraftAnswer{}, err
	}
	followUp("record draft on account", s.store.Accounts().AddToList(ctx, in.Username, models.ListAnswerDrafts, d.ID))
	return d, nil
}

func (s *Service) findAnswerDraft(ctx context.Context, in AnswerDraftInput) (models.DraftAnswer, error) {
	drafts := s.store.Drafts()
	switch {
	case in.DraftID != nil:
		d, err := drafts.FindAnswer(ctx, *in.DraftID)
		if err != nil {
			return models.DraftAnswer{}, err
		}
		if d.Username != in.Username {
			return models.DraftAnswer{}, errorz.Forbidden("draft belongs to another user")
		}
		return d, nil
	case in.RealID != nil:
		return drafts.FindAnswerByReal(ctx, in.Username, *in.RealID)
	}
	return models.DraftAnswer{}, errorz.NotFound("answer draft not found")
}

// PostAnswerDraft publishes the draft as a new answer on its question, or as
// new text for its RealID, then deletes the draft. Both paths honor locks.
func (s *Service) PostAnswerDraft(ctx context.Context, username string, draftID primitive.ObjectID) (models.AnswerView, error) {
	d, err := s.store.Drafts().FindAnswer(ctx, draftID)
	if err != nil {
		return models.AnswerView{}, err
	}
	if d.Username != username {
		return models.AnswerView{}, errorz.Forbidden("draft belongs to another user")
	}

	var view models.AnswerView
	if d.RealID == nil {
		view, err = s.AddAnswer(ctx, d.QuestionID, NewAnswer{Text: d.Edit.Text, AnsBy: username})
	} else {
		view, err = s.editAnswer(ctx, d.QuestionID, *d.RealID, username, d.Edit.Text)
	}
	if err != nil {
		return models.AnswerView{}, err
	}

	if err := s.store.Drafts().DeleteAnswer(ctx, d.ID); err != nil {
		return models.AnswerView{}, err
	}
	followUp("clear draft on account", s.store.Accounts().RemoveFromList(ctx, username, models.ListAnswerDrafts, d.ID))
	return view, nil
}

func (s *Service) editAnswer(ctx context.Context, qid, aid primitive.ObjectID, username, text string) (models.AnswerView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.AnswerView{}, errorz.Validation("answer text cannot be empty")
	}
	a, err := s.answerOnQuestion(ctx, qid, aid)
	if err != nil {
		return models.AnswerView{}, err
	}
	if a.AnsBy != username {
		return models.AnswerView{}, errorz.Forbidden("only the author can edit this answer")
	}
	a, err = s.store.Answers().UpdateText(ctx, aid, text)
	if err != nil {
		return models.AnswerView{}, err
	}
	view, err := s.HydrateAnswer(ctx, a)
	if err != nil {
		return models.AnswerView{}, err
	}
	s.publish(ctx, events.AnswerUpdate, events.AnswerPayload{QID: qid.Hex(), Answer: view})
	return view, nil
}

// answerOnQuestion loads aid only if it is listed on question qid.
func (s *Service) answerOnQuestion(ctx context.Context, qid, aid primitive.ObjectID) (models.Answer, error) {
	q, err := s.store.Questions().FindByID(ctx, qid)
	if err != nil {
		return models.Answer{}, err
	}
	if !slices.Contains(q.Answers, aid) {
		return models.Answer{}, errorz.Validation("answer %s does not belong to question %s", aid.Hex(), qid.Hex())
	}
	return s.store.Answers().FindByID(ctx, aid)
}

func (s *Service) ListDrafts(ctx context.Context, username string) (models.Drafts, error) {
	questions, err := s.store.Drafts().ListQuestions(ctx, username)
	if err != nil {
		return models.Drafts{}, err
	}
	answers, err := s.store.Drafts().ListAnswers(ctx, username)
	if err != nil {
		return models.Drafts{}, err
	}
	return models.Drafts{Questions: questions, Answers: answers}, nil
}
