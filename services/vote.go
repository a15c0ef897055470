package services

import (
	"context"
	"slices"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Service) Upvote(ctx context.Context, qid primitive.ObjectID, username string) (models.VoteUpdate, error) {
	return s.vote(ctx, qid, username, models.VoteUp)
}

func (s *Service) Downvote(ctx context.Context, qid primitive.ObjectID, username string) (models.VoteUpdate, error) {
	return s.vote(ctx, qid, username, models.VoteDown)
}

// vote toggles with one atomic store write. The store hands back the
// pre-image; the post-image is computed from it with the same rule the
// write applied.
func (s *Service) vote(ctx context.Context, qid primitive.ObjectID, username string, dir models.VoteDirection) (models.VoteUpdate, error) {
	if username == "" {
		return models.VoteUpdate{}, errorz.Validation("username is required")
	}
	before, err := s.store.Questions().Vote(ctx, qid, username, dir)
	if err != nil {
		return models.VoteUpdate{}, err
	}
	up, down := models.ApplyVote(before.UpVotes, before.DownVotes, username, dir)

	if delta := models.VoteDelta(before.UpVotes, before.DownVotes, up, down); delta != 0 && before.AskedBy != username {
		followUp("adjust author score", s.store.Accounts().IncScore(ctx, before.AskedBy, delta))
	}
	s.syncVoterLists(ctx, qid, username, up, down)

	update := models.VoteUpdate{QID: qid.Hex(), UpVotes: nonNil(up), DownVotes: nonNil(down)}
	s.publish(ctx, events.VoteUpdate, update)
	return update, nil
}

func (s *Service) syncVoterLists(ctx context.Context, qid primitive.ObjectID, username string, up, down []string) {
	accounts := s.store.Accounts()
	sync := func(list models.AccountList, member bool) {
		if member {
			followUp("record vote on account", accounts.AddToList(ctx, username, list, qid))
		} else {
			followUp("clear vote on account", accounts.RemoveFromList(ctx, username, list, qid))
		}
	}
	sync(models.ListUpVotedQuestions, slices.Contains(up, username))
	sync(models.ListDownVotedQuestions, slices.Contains(down, username))
}
