package mongostore

import (
	"context"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type answerRepo struct {
	coll *mongo.Collection
}

func (r *answerRepo) Insert(ctx context.Context, a *models.Answer) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	nonNilIDs(&a.Comments)
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return errorz.Storage("insert answer", err)
	}
	return nil
}

func (r *answerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.Answer, error) {
	return findOne[models.Answer](ctx, r.coll, bson.M{"_id": id}, "answer")
}

func (r *answerRepo) FindMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Answer, error) {
	return findByIDs(ctx, r.coll, ids, func(a models.Answer) primitive.ObjectID { return a.ID }, "answers")
}

func (r *answerRepo) UpdateText(ctx context.Context, id primitive.ObjectID, text string) (models.Answer, error) {
	filter := bson.M{"_id": id, "locked": bson.M{"$ne": true}}
	update := bson.M{"$set": bson.M{"text": text}}
	a, err := findOneAndUpdate[models.Answer](ctx, r.coll, filter, update, "answer", options.After)
	if err == nil || !isNotFound(err) {
		return a, err
	}
	return models.Answer{}, missingOrLocked(ctx, r.coll, id, "answer")
}

func (r *answerRepo) Delete(ctx context.Context, id primitive.ObjectID) (models.Answer, error) {
	return findOneAndDelete[models.Answer](ctx, r.coll, id, "answer")
}

func (r *answerRepo) DeleteMany(ctx context.Context, ids []primitive.ObjectID) error {
	return deleteMany(ctx, r.coll, ids, "answers")
}

func (r *answerRepo) SetFlag(ctx context.Context, id primitive.ObjectID, flag models.Flag) (models.Answer, error) {
	update := bson.M{"$set": bson.M{string(flag): true}}
	return findOneAndUpdate[models.Answer](ctx, r.coll, bson.M{"_id": id}, update, "answer", options.After)
}

func (r *answerRepo) SetCorrect(ctx context.Context, id primitive.ObjectID, correct bool) (models.Answer, error) {
	update := bson.M{"$set": bson.M{"isCorrect": correct}}
	return findOneAndUpdate[models.Answer](ctx, r.coll, bson.M{"_id": id}, update, "answer", options.After)
}

func (r *answerRepo) PushComment(ctx context.Context, id, commentID primitive.ObjectID) error {
	return pushUnlessLocked(ctx, r.coll, id, "comments", commentID, "answer")
}

func (r *answerRepo) PullComment(ctx context.Context, id, commentID primitive.ObjectID) error {
	return pull(ctx, r.coll, id, "comments", commentID, "answer", "comment")
}
