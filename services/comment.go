package services

import (
	"context"
	"strings"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxCommentLength = 140

type NewComment struct {
	Text      string
	CommentBy string
}

// AddComment attaches a comment to a question or an answer. A locked parent
// rejects it with errorz.ErrLocked and the comment is not kept.
func (s *Service) AddComment(ctx context.Context, parentID primitive.ObjectID, parentType models.PostType, in NewComment) (models.Comment, error) {
	if parentType != models.PostQuestion && parentType != models.PostAnswer {
		return models.Comment{}, errorz.Validation("invalid type %q", parentType)
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return models.Comment{}, errorz.Validation("comment text cannot be empty")
	}
	if len([]rune(text)) > maxCommentLength {
		return models.Comment{}, errorz.Validation("comment cannot be more than %d characters", maxCommentLength)
	}
	if in.CommentBy == "" {
		return models.Comment{}, errorz.Validation("commentBy is required")
	}

	c := models.Comment{Text: text, CommentBy: in.CommentBy, CommentDateTime: s.now()}
	if err := s.store.Comments().Insert(ctx, &c); err != nil {
		return models.Comment{}, err
	}

	var err error
	if parentType == models.PostQuestion {
		err = s.store.Questions().PushComment(ctx, parentID, c.ID)
	} else {
		err = s.store.Answers().PushComment(ctx, parentID, c.ID)
	}
	if err != nil {
		_, rbErr := s.store.Comments().Delete(ctx, c.ID)
		followUp("roll back unlinked comment", rbErr)
		return models.Comment{}, err
	}
	followUp("record comment on account", s.store.Accounts().AddToList(ctx, in.CommentBy, models.ListComments, c.ID))

	s.publish(ctx, events.CommentUpdate, events.CommentPayload{Result: c, Type: parentType, ParentID: parentID.Hex()})
	return c, nil
}
