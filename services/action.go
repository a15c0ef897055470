package services

import (
	"context"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TakeAction applies a moderation action and pushes the affected entity.
//
//	pin     sets pinned on any post; there is no unpin
//	lock    sets locked on a question or answer; a comment is returned unchanged
//	remove  deletes the post and unlinks it from its parent
//	promote not implemented
func (s *Service) TakeAction(ctx context.Context, act models.Action) (models.ActionResult, error) {
	if err := validateAction(act); err != nil {
		return models.ActionResult{}, err
	}
	actor, err := s.store.Accounts().FindByUsername(ctx, act.User)
	if err != nil {
		return models.ActionResult{}, err
	}
	if !actor.UserType.CanModerate() {
		return models.ActionResult{}, errorz.Forbidden("only moderators can take actions")
	}

	switch act.Type {
	case models.ActionPin:
		return s.pin(ctx, act)
	case models.ActionLock:
		return s.lock(ctx, act)
	case models.ActionRemove:
		return s.remove(ctx, act)
	case models.ActionPromote:
		return models.ActionResult{}, errorz.NotImplemented("action %q is not implemented", act.Type)
	}
	return models.ActionResult{}, errorz.Validation("unknown action type %q", act.Type)
}

func validateAction(act models.Action) error {
	switch act.Type {
	case models.ActionPin, models.ActionLock, models.ActionRemove, models.ActionPromote:
	default:
		return errorz.Validation("unknown action type %q", act.Type)
	}
	if act.User == "" {
		return errorz.Validation("user is required")
	}
	if !act.PostType.Valid() {
		return errorz.Validation("invalid post type %q", act.PostType)
	}
	if act.PostID.IsZero() {
		return errorz.Validation("postID is required")
	}
	if act.Type != models.ActionRemove {
		return nil
	}
	switch act.PostType {
	case models.PostAnswer:
		if act.ParentID == nil {
			return errorz.Validation("parentID is required to remove an answer")
		}
		if act.ParentType != "" && act.ParentType != models.PostQuestion {
			return errorz.Validation("an answer's parent must be a question")
		}
	case models.PostComment:
		if act.ParentID == nil || act.ParentType == "" {
			return errorz.Validation("parentID and parentPostType are required to remove a comment")
		}
		if act.ParentType != models.PostQuestion && act.ParentType != models.PostAnswer {
			return errorz.Validation("a comment's parent must be a question or an answer")
		}
	}
	return nil
}

func (s *Service) pin(ctx context.Context, act models.Action) (models.ActionResult, error) {
	switch act.PostType {
	case models.PostQuestion:
		q, err := s.store.Questions().SetFlag(ctx, act.PostID, models.FlagPinned)
		if err != nil {
			return models.ActionResult{}, err
		}
		return s.questionResult(ctx, q)
	case models.PostAnswer:
		a, err := s.store.Answers().SetFlag(ctx, act.PostID, models.FlagPinned)
		if err != nil {
			return models.ActionResult{}, err
		}
		return s.answerResult(ctx, a, act)
	default:
		c, err := s.store.Comments().SetPinned(ctx, act.PostID)
		if err != nil {
			return models.ActionResult{}, err
		}
		return s.commentResult(ctx, c, act, false), nil
	}
}

func (s *Service) lock(ctx context.Context, act models.Action) (models.ActionResult, error) {
	switch act.PostType {
	case models.PostQuestion:
		q, err := s.store.Questions().SetFlag(ctx, act.PostID, models.FlagLocked)
		if err != nil {
			return models.ActionResult{}, err
		}
		return s.questionResult(ctx, q)
	case models.PostAnswer:
		a, err := s.store.Answers().SetFlag(ctx, act.PostID, models.FlagLocked)
		if err != nil {
			return models.ActionResult{}, err
		}
		return s.answerResult(ctx, a, act)
	default:
		// Comments have no lock; nothing changes and nothing is pushed.
		c, err := s.store.Comments().FindByID(ctx, act.PostID)
		if err != nil {
			return models.ActionResult{}, err
		}
		return commentOnly(c, act, false), nil
	}
}

func (s *Service) remove(ctx context.Context, act models.Action) (models.ActionResult, error) {
	switch act.PostType {
	case models.PostQuestion:
		return s.removeQuestion(ctx, act.PostID)
	case models.PostAnswer:
		return s.removeAnswer(ctx, act)
	default:
		return s.removeComment(ctx, act)
	}
}

// removeQuestion deletes the question together with its answers and every
// comment under either of them.
func (s *Service) removeQuestion(ctx context.Context, id primitive.ObjectID) (models.ActionResult, error) {
	q, err := s.store.Questions().FindByID(ctx, id)
	if err != nil {
		return models.ActionResult{}, err
	}
	view, err := s.HydrateQuestion(ctx, q)
	if err != nil {
		return models.ActionResult{}, err
	}
	if _, err := s.store.Questions().Delete(ctx, id); err != nil {
		return models.ActionResult{}, err
	}

	accounts := s.store.Accounts()
	followUp("unlink question from author", accounts.RemoveFromList(ctx, q.AskedBy, models.ListQuestions, q.ID))
	commentIDs := append([]primitive.ObjectID{}, q.Comments...)
	for _, c := range view.Comments {
		followUp("unlink comment from author", accounts.RemoveFromList(ctx, c.CommentBy, models.ListComments, c.ID))
	}
	for _, a := range view.Answers {
		followUp("unlink answer from author", accounts.RemoveFromList(ctx, a.AnsBy, models.ListAnswers, a.ID))
		for _, c := range a.Comments {
			commentIDs = append(commentIDs, c.ID)
			followUp("unlink comment from author", accounts.RemoveFromList(ctx, c.CommentBy, models.ListComments, c.ID))
		}
	}
	followUp("delete question comments", s.store.Comments().DeleteMany(ctx, commentIDs))
	followUp("delete question answers", s.store.Answers().DeleteMany(ctx, q.Answers))

	s.publish(ctx, events.QuestionUpdate, events.QuestionPayload{Question: view, Removed: true})
	return models.ActionResult{PostType: models.PostQuestion, Question: &view, Removed: true}, nil
}

func (s *Service) removeAnswer(ctx context.Context, act models.Action) (models.ActionResult, error) {
	if err := s.store.Questions().PullAnswer(ctx, *act.ParentID, act.PostID); err != nil {
		return models.ActionResult{}, err
	}
	a, err := s.store.Answers().Delete(ctx, act.PostID)
	if err != nil {
		return models.ActionResult{}, err
	}
	view, err := s.HydrateAnswer(ctx, a)
	if err != nil {
		return models.ActionResult{}, err
	}
	followUp("delete answer comments", s.store.Comments().DeleteMany(ctx, a.Comments))
	followUp("unlink answer from author", s.store.Accounts().RemoveFromList(ctx, a.AnsBy, models.ListAnswers, a.ID))
	for _, c := range view.Comments {
		followUp("unlink comment from author", s.store.Accounts().RemoveFromList(ctx, c.CommentBy, models.ListComments, c.ID))
	}

	s.publish(ctx, events.AnswerUpdate, events.AnswerPayload{QID: act.ParentID.Hex(), Answer: view, Removed: true})
	return models.ActionResult{
		PostType:   models.PostAnswer,
		Answer:     &view,
		ParentID:   act.ParentID.Hex(),
		ParentType: models.PostQuestion,
		Removed:    true,
	}, nil
}

func (s *Service) removeComment(ctx context.Context, act models.Action) (models.ActionResult, error) {
	var err error
	if act.ParentType == models.PostQuestion {
		err = s.store.Questions().PullComment(ctx, *act.ParentID, act.PostID)
	} else {
		err = s.store.Answers().PullComment(ctx, *act.ParentID, act.PostID)
	}
	if err != nil {
		return models.ActionResult{}, err
	}
	c, err := s.store.Comments().Delete(ctx, act.PostID)
	if err != nil {
		return models.ActionResult{}, err
	}
	followUp("unlink comment from author", s.store.Accounts().RemoveFromList(ctx, c.CommentBy, models.ListComments, c.ID))
	return s.commentResult(ctx, c, act, true), nil
}

func (s *Service) questionResult(ctx context.Context, q models.Question) (models.ActionResult, error) {
	view, err := s.HydrateQuestion(ctx, q)
	if err != nil {
		return models.ActionResult{}, err
	}
	s.publish(ctx, events.QuestionUpdate, events.QuestionPayload{Question: view})
	return models.ActionResult{PostType: models.PostQuestion, Question: &view}, nil
}

func (s *Service) answerResult(ctx context.Context, a models.Answer, act models.Action) (models.ActionResult, error) {
	view, err := s.HydrateAnswer(ctx, a)
	if err != nil {
		return models.ActionResult{}, err
	}
	res := models.ActionResult{PostType: models.PostAnswer, Answer: &view}
	if act.ParentID != nil {
		res.ParentID = act.ParentID.Hex()
		res.ParentType = models.PostQuestion
	}
	s.publish(ctx, events.AnswerUpdate, events.AnswerPayload{QID: res.ParentID, Answer: view})
	return res, nil
}

func (s *Service) commentResult(ctx context.Context, c models.Comment, act models.Action, removed bool) models.ActionResult {
	res := commentOnly(c, act, removed)
	s.publish(ctx, events.CommentUpdate, events.CommentPayload{
		Result:   c,
		Type:     res.ParentType,
		ParentID: res.ParentID,
		Removed:  removed,
	})
	return res
}

func commentOnly(c models.Comment, act models.Action, removed bool) models.ActionResult {
	res := models.ActionResult{PostType: models.PostComment, Comment: &c, Removed: removed}
	if act.ParentID != nil {
		res.ParentID = act.ParentID.Hex()
		res.ParentType = act.ParentType
	}
	return res
}
