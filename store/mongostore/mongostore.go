// Package mongostore implements store.Store on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	questionCollection      = "questions"
	answerCollection        = "answers"
	commentCollection       = "comments"
	tagCollection           = "tags"
	accountCollection       = "accounts"
	questionDraftCollection = "questionDrafts"
	answerDraftCollection   = "answerDrafts"
)

type Store struct {
	db *mongo.Database
}

var _ store.Store = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Questions() store.QuestionRepository {
	return &questionRepo{coll: s.db.Collection(questionCollection)}
}

func (s *Store) Answers() store.AnswerRepository {
	return &answerRepo{coll: s.db.Collection(answerCollection)}
}

func (s *Store) Comments() store.CommentRepository {
	return &commentRepo{coll: s.db.Collection(commentCollection)}
}

func (s *Store) Tags() store.TagRepository {
	return &tagRepo{coll: s.db.Collection(tagCollection)}
}

func (s *Store) Accounts() store.AccountRepository {
	return &accountRepo{coll: s.db.Collection(accountCollection)}
}

func (s *Store) Drafts() store.DraftRepository {
	return &draftRepo{
		questions: s.db.Collection(questionDraftCollection),
		answers:   s.db.Collection(answerDraftCollection),
	}
}

// EnsureIndexes creates the unique indexes the account and tag invariants rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		accountCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		tagCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		questionDraftCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}, {Key: "realId", Value: 1}}},
		},
		answerDraftCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}, {Key: "realId", Value: 1}}},
		},
	}
	for name, specs := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any, what string) (T, error) {
	var out T
	err := coll.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, errorz.NotFound("%s not found", what)
	}
	if err != nil {
		return out, errorz.Storage("find "+what, err)
	}
	return out, nil
}

func findOneAndUpdate[T any](ctx context.Context, coll *mongo.Collection, filter, update any, what string, returnDoc options.ReturnDocument) (T, error) {
	var out T
	opts := options.FindOneAndUpdate().SetReturnDocument(returnDoc)
	err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, errorz.NotFound("%s not found", what)
	}
	if err != nil {
		return out, errorz.Storage("update "+what, err)
	}
	return out, nil
}

func findOneAndDelete[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, what string) (T, error) {
	var out T
	err := coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, errorz.NotFound("%s not found", what)
	}
	if err != nil {
		return out, errorz.Storage("delete "+what, err)
	}
	return out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, what string, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, errorz.Storage("list "+what, err)
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errorz.Storage("decode "+what, err)
	}
	return out, nil
}

// findByIDs returns the documents in the order of ids, skipping missing ones.
func findByIDs[T any](ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID, idOf func(T) primitive.ObjectID, what string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	docs, err := findAll[T](ctx, coll, bson.M{"_id": bson.M{"$in": ids}}, what)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]T, len(docs))
	for _, d := range docs {
		byID[idOf(d)] = d
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// pushUnlessLocked appends value to field of the document only while the
// document is not locked. The filter carries the lock check so it is one write.
func pushUnlessLocked(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, field string, value primitive.ObjectID, what string) error {
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": id, "locked": bson.M{"$ne": true}},
		bson.M{"$push": bson.M{field: value}},
	)
	if err != nil {
		return errorz.Storage("update "+what, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return missingOrLocked(ctx, coll, id, what)
}

func missingOrLocked(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, what string) error {
	n, err := coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return errorz.Storage("find "+what, err)
	}
	if n == 0 {
		return errorz.NotFound("%s not found", what)
	}
	return errorz.Locked("%s is locked", what)
}

// pull removes value from field only when the document holds it, so a wrong
// parent id is reported instead of silently matching.
func pull(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, field string, value primitive.ObjectID, what, child string) error {
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id, field: value}, bson.M{"$pull": bson.M{field: value}})
	if err != nil {
		return errorz.Storage("update "+what, err)
	}
	if res.ModifiedCount > 0 {
		return nil
	}
	n, err := coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return errorz.Storage("find "+what, err)
	}
	if n == 0 {
		return errorz.NotFound("%s not found", what)
	}
	return errorz.NotFound("%s not found on %s", child, what)
}

func deleteMany(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID, what string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return errorz.Storage("delete "+what, err)
	}
	return nil
}

func nonNilIDs(lists ...*[]primitive.ObjectID) {
	for _, l := range lists {
		if *l == nil {
			*l = []primitive.ObjectID{}
		}
	}
}

func nonNilStrings(lists ...*[]string) {
	for _, l := range lists {
		if *l == nil {
			*l = []string{}
		}
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, errorz.ErrNotFound)
}
