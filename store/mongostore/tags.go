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

type tagRepo struct {
	coll *mongo.Collection
}

// Upsert inserts the tag only when no tag has this name. Two concurrent
// upserts can both miss and race on the unique index; the loser re-reads.
func (r *tagRepo) Upsert(ctx context.Context, name, description string) (models.Tag, error) {
	filter := bson.M{"name": name}
	update := bson.M{"$setOnInsert": bson.M{"name": name, "description": description}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var tag models.Tag
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&tag)
	if mongo.IsDuplicateKeyError(err) {
		return r.FindByName(ctx, name)
	}
	if err != nil {
		return models.Tag{}, errorz.Storage("upsert tag", err)
	}
	return tag, nil
}

func (r *tagRepo) FindByName(ctx context.Context, name string) (models.Tag, error) {
	return findOne[models.Tag](ctx, r.coll, bson.M{"name": name}, "tag")
}

func (r *tagRepo) FindMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Tag, error) {
	return findByIDs(ctx, r.coll, ids, func(t models.Tag) primitive.ObjectID { return t.ID }, "tags")
}

func (r *tagRepo) FindAll(ctx context.Context) ([]models.Tag, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[models.Tag](ctx, r.coll, bson.M{}, "tags", opts)
}
