package services

import (
	"context"
	"testing"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr(id primitive.ObjectID) *primitive.ObjectID { return &id }

func TestTakeActionRequiresModerator(t *testing.T) {
	f := newFixture(t)
	f.account(t, "bob", models.UserTypeUser)
	q := f.question(t, "alice", "Pin me")

	_, err := f.svc.TakeAction(context.Background(), models.Action{User: "bob", Type: models.ActionPin, PostType: models.PostQuestion, PostID: q.ID})

	assert.ErrorIs(t, err, errorz.ErrForbidden)
}

func TestTakeActionValidation(t *testing.T) {
	f := newFixture(t)
	f.account(t, "mod", models.UserTypeModerator)
	id := primitive.NewObjectID()

	cases := map[string]models.Action{
		"unknown type":          {User: "mod", Type: "ban", PostType: models.PostQuestion, PostID: id},
		"unknown post type":     {User: "mod", Type: models.ActionPin, PostType: "tag", PostID: id},
		"missing post id":       {User: "mod", Type: models.ActionPin, PostType: models.PostQuestion},
		"answer without parent": {User: "mod", Type: models.ActionRemove, PostType: models.PostAnswer, PostID: id},
		"comment without type":  {User: "mod", Type: models.ActionRemove, PostType: models.PostComment, PostID: id, ParentID: ptr(id)},
	}
	for name, act := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.TakeAction(context.Background(), act)
			assert.ErrorIs(t, err, errorz.ErrValidation)
		})
	}
}

func TestPinIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "mod", models.UserTypeModerator)
	q := f.question(t, "alice", "Pin me")
	act := models.Action{User: "mod", Type: models.ActionPin, PostType: models.PostQuestion, PostID: q.ID}

	for range 2 {
		res, err := f.svc.TakeAction(ctx, act)
		require.NoError(t, err)
		require.NotNil(t, res.Question)
		assert.True(t, res.Question.Pinned)
	}
}

func TestPinComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "owner", models.UserTypeOwner)
	q := f.question(t, "alice", "Comments")
	c, err := f.svc.AddComment(ctx, q.ID, models.PostQuestion, NewComment{Text: "pin this", CommentBy: "bob"})
	require.NoError(t, err)

	res, err := f.svc.TakeAction(ctx, models.Action{
		User: "owner", Type: models.ActionPin, PostType: models.PostComment,
		PostID: c.ID, ParentID: ptr(q.ID), ParentType: models.PostQuestion,
	})

	require.NoError(t, err)
	require.NotNil(t, res.Comment)
	assert.True(t, res.Comment.Pinned)
	assert.Equal(t, q.ID.Hex(), res.ParentID)
}

func TestLockCommentChangesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "mod", models.UserTypeModerator)
	q := f.question(t, "alice", "Comments")
	c, err := f.svc.AddComment(ctx, q.ID, models.PostQuestion, NewComment{Text: "lock this", CommentBy: "bob"})
	require.NoError(t, err)
	before := len(f.events.Events())

	res, err := f.svc.TakeAction(ctx, models.Action{User: "mod", Type: models.ActionLock, PostType: models.PostComment, PostID: c.ID})

	require.NoError(t, err)
	assert.Equal(t, c.ID, res.Comment.ID)
	assert.Len(t, f.events.Events(), before)
}

func TestPromoteNotImplemented(t *testing.T) {
	f := newFixture(t)
	f.account(t, "mod", models.UserTypeModerator)

	_, err := f.svc.TakeAction(context.Background(), models.Action{User: "mod", Type: models.ActionPromote, PostType: models.PostQuestion, PostID: primitive.NewObjectID()})

	assert.ErrorIs(t, err, errorz.ErrNotImplemented)
}

func TestRemoveAnswerUnlinksFromQuestion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "mod", models.UserTypeModerator)
	f.account(t, "bob", models.UserTypeUser)
	q := f.question(t, "alice", "Remove answer")
	keep := f.answer(t, q, "carol", "keep")
	gone := f.answer(t, q, "bob", "gone")

	res, err := f.svc.TakeAction(ctx, models.Action{
		User: "mod", Type: models.ActionRemove, PostType: models.PostAnswer,
		PostID: gone.ID, ParentID: ptr(q.ID),
	})
	require.NoError(t, err)
	assert.True(t, res.Removed)

	stored, err := f.store.Questions().FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{keep.ID}, stored.Answers)
	_, err = f.store.Answers().FindByID(ctx, gone.ID)
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	bob, err := f.svc.GetAccount(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bob.Answers)

	evs := f.events.OfType(events.AnswerUpdate)
	last := evs[len(evs)-1].Payload.(events.AnswerPayload)
	assert.True(t, last.Removed)
	assert.Equal(t, q.ID.Hex(), last.QID)
}

func TestRemoveQuestionCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "mod", models.UserTypeModerator)
	f.account(t, "alice", models.UserTypeUser)
	q := f.question(t, "alice", "Remove everything")
	a := f.answer(t, q, "bob", "answer")
	qc, err := f.svc.AddComment(ctx, q.ID, models.PostQuestion, NewComment{Text: "q comment", CommentBy: "carol"})
	require.NoError(t, err)
	ac, err := f.svc.AddComment(ctx, a.ID, models.PostAnswer, NewComment{Text: "a comment", CommentBy: "carol"})
	require.NoError(t, err)

	res, err := f.svc.TakeAction(ctx, models.Action{User: "mod", Type: models.ActionRemove, PostType: models.PostQuestion, PostID: q.ID})
	require.NoError(t, err)
	assert.True(t, res.Removed)

	_, err = f.store.Questions().FindByID(ctx, q.ID)
	assert.ErrorIs(t, err, errorz.ErrNotFound)
	_, err = f.store.Answers().FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, errorz.ErrNotFound)
	for _, id := range []primitive.ObjectID{qc.ID, ac.ID} {
		_, err = f.store.Comments().FindByID(ctx, id)
		assert.ErrorIs(t, err, errorz.ErrNotFound)
	}

	alice, err := f.svc.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, alice.Questions)

	evs := f.events.OfType(events.QuestionUpdate)
	assert.True(t, evs[len(evs)-1].Payload.(events.QuestionPayload).Removed)
}

func TestRemoveComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "mod", models.UserTypeModerator)
	q := f.question(t, "alice", "Remove comment")
	a := f.answer(t, q, "bob", "answer")
	c, err := f.svc.AddComment(ctx, a.ID, models.PostAnswer, NewComment{Text: "bye", CommentBy: "carol"})
	require.NoError(t, err)

	res, err := f.svc.TakeAction(ctx, models.Action{
		User: "mod", Type: models.ActionRemove, PostType: models.PostComment,
		PostID: c.ID, ParentID: ptr(a.ID), ParentType: models.PostAnswer,
	})
	require.NoError(t, err)
	assert.True(t, res.Removed)
	assert.Equal(t, models.PostAnswer, res.ParentType)

	stored, err := f.store.Answers().FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Comments)
}

func TestRemoveWithWrongParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.account(t, "mod", models.UserTypeModerator)
	q := f.question(t, "alice", "Real parent")
	other := f.question(t, "alice", "Unrelated")
	a := f.answer(t, q, "bob", "answer")
	c, err := f.svc.AddComment(ctx, q.ID, models.PostQuestion, NewComment{Text: "hi", CommentBy: "carol"})
	require.NoError(t, err)

	_, err = f.svc.TakeAction(ctx, models.Action{
		User: "mod", Type: models.ActionRemove, PostType: models.PostAnswer,
		PostID: a.ID, ParentID: ptr(other.ID),
	})
	assert.ErrorIs(t, err, errorz.ErrNotFound)
	_, err = f.store.Answers().FindByID(ctx, a.ID)
	require.NoError(t, err)

	_, err = f.svc.TakeAction(ctx, models.Action{
		User: "mod", Type: models.ActionRemove, PostType: models.PostComment,
		PostID: c.ID, ParentID: ptr(a.ID), ParentType: models.PostAnswer,
	})
	assert.ErrorIs(t, err, errorz.ErrNotFound)
	_, err = f.store.Comments().FindByID(ctx, c.ID)
	require.NoError(t, err)

	stored, err := f.store.Questions().FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a.ID}, stored.Answers)
	assert.Equal(t, []primitive.ObjectID{c.ID}, stored.Comments)
}
