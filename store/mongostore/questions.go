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

type questionRepo struct {
	coll *mongo.Collection
}

func (r *questionRepo) Insert(ctx context.Context, q *models.Question) error {
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	nonNilIDs(&q.Tags, &q.Answers, &q.Comments)
	nonNilStrings(&q.Views, &q.UpVotes, &q.DownVotes)
	if _, err := r.coll.InsertOne(ctx, q); err != nil {
		return errorz.Storage("insert question", err)
	}
	return nil
}

func (r *questionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.Question, error) {
	return findOne[models.Question](ctx, r.coll, bson.M{"_id": id}, "question")
}

func (r *questionRepo) FindAll(ctx context.Context) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "askDateTime", Value: -1}})
	return findAll[models.Question](ctx, r.coll, bson.M{}, "questions", opts)
}

func (r *questionRepo) UpdateContent(ctx context.Context, id primitive.ObjectID, title, text string, tags []primitive.ObjectID) (models.Question, error) {
	nonNilIDs(&tags)
	update := bson.M{"$set": bson.M{"title": title, "text": text, "tags": tags}}
	return findOneAndUpdate[models.Question](ctx, r.coll, bson.M{"_id": id}, update, "question", options.After)
}

func (r *questionRepo) Delete(ctx context.Context, id primitive.ObjectID) (models.Question, error) {
	return findOneAndDelete[models.Question](ctx, r.coll, id, "question")
}

func (r *questionRepo) AddView(ctx context.Context, id primitive.ObjectID, username string) (models.Question, error) {
	update := bson.M{"$addToSet": bson.M{"views": username}}
	return findOneAndUpdate[models.Question](ctx, r.coll, bson.M{"_id": id}, update, "question", options.After)
}

// Vote runs the toggle as one pipeline update. Both $set expressions read the
// pre-image, so the user is removed from the opposite set and toggled in the
// chosen set in the same write.
func (r *questionRepo) Vote(ctx context.Context, id primitive.ObjectID, username string, dir models.VoteDirection) (models.Question, error) {
	same, other := "upVotes", "downVotes"
	if dir == models.VoteDown {
		same, other = other, same
	}
	user := literal(username)
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: same, Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$in", Value: bson.A{user, arrayOrEmpty(same)}}},
				withoutExpr(same, username),
				bson.D{{Key: "$concatArrays", Value: bson.A{arrayOrEmpty(same), bson.A{user}}}},
			}}}},
			{Key: other, Value: withoutExpr(other, username)},
		}}},
	}
	return findOneAndUpdate[models.Question](ctx, r.coll, bson.M{"_id": id}, update, "question", options.Before)
}

func (r *questionRepo) SetFlag(ctx context.Context, id primitive.ObjectID, flag models.Flag) (models.Question, error) {
	update := bson.M{"$set": bson.M{string(flag): true}}
	return findOneAndUpdate[models.Question](ctx, r.coll, bson.M{"_id": id}, update, "question", options.After)
}

func (r *questionRepo) PushAnswer(ctx context.Context, id, answerID primitive.ObjectID) error {
	return pushUnlessLocked(ctx, r.coll, id, "answers", answerID, "question")
}

func (r *questionRepo) PullAnswer(ctx context.Context, id, answerID primitive.ObjectID) error {
	return pull(ctx, r.coll, id, "answers", answerID, "question", "answer")
}

func (r *questionRepo) PushComment(ctx context.Context, id, commentID primitive.ObjectID) error {
	return pushUnlessLocked(ctx, r.coll, id, "comments", commentID, "question")
}

func (r *questionRepo) PullComment(ctx context.Context, id, commentID primitive.ObjectID) error {
	return pull(ctx, r.coll, id, "comments", commentID, "question", "comment")
}

func (r *questionRepo) CountByTag(ctx context.Context) (map[primitive.ObjectID]int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$tags"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tags"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errorz.Storage("count questions by tag", err)
	}
	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Count int                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errorz.Storage("decode tag counts", err)
	}
	counts := make(map[primitive.ObjectID]int, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

func arrayOrEmpty(field string) bson.D {
	return bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, bson.A{}}}}
}

func withoutExpr(field, value string) bson.D {
	return bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: arrayOrEmpty(field)},
		{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", literal(value)}}}},
	}}}
}

// literal keeps user input such as "$name" from being read as a field path.
func literal(v string) bson.D {
	return bson.D{{Key: "$literal", Value: v}}
}
