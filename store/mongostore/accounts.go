package mongostore

import (
	"context"
	"errors"
	"strings"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// emailIndex is the server's default name for the unique email index.
const emailIndex = "email_1"

type accountRepo struct {
	coll *mongo.Collection
}

func (r *accountRepo) Insert(ctx context.Context, a *models.Account) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	nonNilIDs(&a.Questions, &a.Answers, &a.Comments, &a.UpVotedQuestions, &a.DownVotedQuestions, &a.QuestionDrafts, &a.AnswerDrafts)
	_, err := r.coll.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		if duplicateIndex(err) == emailIndex {
			return errorz.Conflict("email already exists")
		}
		return errorz.Conflict("username already exists")
	}
	if err != nil {
		return errorz.Storage("insert account", err)
	}
	return nil
}

func (r *accountRepo) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	return findOne[models.Account](ctx, r.coll, bson.M{"username": username}, "user")
}

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	return findOne[models.Account](ctx, r.coll, bson.M{"email": email}, "user")
}

func (r *accountRepo) SetUserType(ctx context.Context, username string, t models.UserType) (models.Account, error) {
	update := bson.M{"$set": bson.M{"userType": t}}
	return findOneAndUpdate[models.Account](ctx, r.coll, bson.M{"username": username}, update, "user", options.After)
}

func (r *accountRepo) UpdateSettings(ctx context.Context, username string, s models.Settings) (models.Account, error) {
	update := bson.M{"$set": bson.M{"settings": s}}
	return findOneAndUpdate[models.Account](ctx, r.coll, bson.M{"username": username}, update, "user", options.After)
}

func (r *accountRepo) IncScore(ctx context.Context, username string, delta int) error {
	return r.updateOne(ctx, username, bson.M{"$inc": bson.M{"score": delta}})
}

func (r *accountRepo) AddToList(ctx context.Context, username string, list models.AccountList, id primitive.ObjectID) error {
	return r.updateOne(ctx, username, bson.M{"$addToSet": bson.M{string(list): id}})
}

func (r *accountRepo) RemoveFromList(ctx context.Context, username string, list models.AccountList, id primitive.ObjectID) error {
	return r.updateOne(ctx, username, bson.M{"$pull": bson.M{string(list): id}})
}

func (r *accountRepo) updateOne(ctx context.Context, username string, update bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return errorz.Storage("update user", err)
	}
	if res.MatchedCount == 0 {
		return errorz.NotFound("user not found")
	}
	return nil
}

// duplicateIndex returns the index named by a duplicate key error. The name is
// the token after the first "index: ", which precedes the offending key value.
func duplicateIndex(err error) string {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return ""
	}
	for _, e := range we.WriteErrors {
		_, rest, ok := strings.Cut(e.Message, "index: ")
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(rest, " ")
		return name
	}
	return ""
}
