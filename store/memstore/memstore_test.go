package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestQuestionsAreCopied(t *testing.T) {
	st := New()
	ctx := context.Background()
	q := models.Question{Title: "t", UpVotes: []string{"bob"}}
	require.NoError(t, st.Questions().Insert(ctx, &q))

	got, err := st.Questions().FindByID(ctx, q.ID)
	require.NoError(t, err)
	got.UpVotes[0] = "mallory"

	again, err := st.Questions().FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, again.UpVotes)
}

func TestFindAllNewestFirst(t *testing.T) {
	st := New()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, q := range []models.Question{
		{Title: "old", AskDateTime: base},
		{Title: "new", AskDateTime: base.Add(2 * time.Hour)},
		{Title: "mid", AskDateTime: base.Add(time.Hour)},
	} {
		require.NoError(t, st.Questions().Insert(ctx, &q))
	}

	all, err := st.Questions().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].Title)
	assert.Equal(t, "old", all[2].Title)
}

func TestVoteReturnsPreImage(t *testing.T) {
	st := New()
	ctx := context.Background()
	q := models.Question{DownVotes: []string{"bob"}}
	require.NoError(t, st.Questions().Insert(ctx, &q))

	before, err := st.Questions().Vote(ctx, q.ID, "bob", models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, before.DownVotes)

	after, err := st.Questions().FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, after.UpVotes)
	assert.Empty(t, after.DownVotes)
}

func TestLockedPushes(t *testing.T) {
	st := New()
	ctx := context.Background()
	q := models.Question{}
	require.NoError(t, st.Questions().Insert(ctx, &q))
	_, err := st.Questions().SetFlag(ctx, q.ID, models.FlagLocked)
	require.NoError(t, err)

	assert.ErrorIs(t, st.Questions().PushAnswer(ctx, q.ID, primitive.NewObjectID()), errorz.ErrLocked)
	assert.ErrorIs(t, st.Questions().PushComment(ctx, q.ID, primitive.NewObjectID()), errorz.ErrLocked)
	assert.ErrorIs(t, st.Questions().PushAnswer(ctx, primitive.NewObjectID(), primitive.NewObjectID()), errorz.ErrNotFound)
}

func TestPullRequiresMembership(t *testing.T) {
	st := New()
	ctx := context.Background()
	q := models.Question{}
	require.NoError(t, st.Questions().Insert(ctx, &q))
	a := models.Answer{}
	require.NoError(t, st.Answers().Insert(ctx, &a))
	answerID := primitive.NewObjectID()
	require.NoError(t, st.Questions().PushAnswer(ctx, q.ID, answerID))

	assert.ErrorIs(t, st.Questions().PullAnswer(ctx, q.ID, primitive.NewObjectID()), errorz.ErrNotFound)
	assert.ErrorIs(t, st.Questions().PullComment(ctx, q.ID, primitive.NewObjectID()), errorz.ErrNotFound)
	assert.ErrorIs(t, st.Answers().PullComment(ctx, a.ID, primitive.NewObjectID()), errorz.ErrNotFound)
	require.NoError(t, st.Questions().PullAnswer(ctx, q.ID, answerID))

	got, err := st.Questions().FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Answers)
}

func TestFindManyKeepsOrderAndSkipsMissing(t *testing.T) {
	st := New()
	ctx := context.Background()
	a := models.Comment{Text: "a"}
	b := models.Comment{Text: "b"}
	require.NoError(t, st.Comments().Insert(ctx, &a))
	require.NoError(t, st.Comments().Insert(ctx, &b))

	got, err := st.Comments().FindMany(ctx, []primitive.ObjectID{b.ID, primitive.NewObjectID(), a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Text)
	assert.Equal(t, "a", got[1].Text)
}

func TestAccountUniqueness(t *testing.T) {
	st := New()
	ctx := context.Background()
	require.NoError(t, st.Accounts().Insert(ctx, &models.Account{Username: "alice", Email: "alice@example.com"}))

	err := st.Accounts().Insert(ctx, &models.Account{Username: "alice", Email: "x@example.com"})
	assert.Equal(t, "username already exists", errorz.Message(err))
	err = st.Accounts().Insert(ctx, &models.Account{Username: "bob", Email: "alice@example.com"})
	assert.Equal(t, "email already exists", errorz.Message(err))
}

func TestTagUpsert(t *testing.T) {
	st := New()
	ctx := context.Background()

	first, err := st.Tags().Upsert(ctx, "go", "desc")
	require.NoError(t, err)
	second, err := st.Tags().Upsert(ctx, "go", "other")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	all, err := st.Tags().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
