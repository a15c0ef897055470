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

type commentRepo struct {
	coll *mongo.Collection
}

func (r *commentRepo) Insert(ctx context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return errorz.Storage("insert comment", err)
	}
	return nil
}

func (r *commentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.Comment, error) {
	return findOne[models.Comment](ctx, r.coll, bson.M{"_id": id}, "comment")
}

func (r *commentRepo) FindMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error) {
	return findByIDs(ctx, r.coll, ids, func(c models.Comment) primitive.ObjectID { return c.ID }, "comments")
}

func (r *commentRepo) Delete(ctx context.Context, id primitive.ObjectID) (models.Comment, error) {
	return findOneAndDelete[models.Comment](ctx, r.coll, id, "comment")
}

func (r *commentRepo) DeleteMany(ctx context.Context, ids []primitive.ObjectID) error {
	return deleteMany(ctx, r.coll, ids, "comments")
}

func (r *commentRepo) SetPinned(ctx context.Context, id primitive.ObjectID) (models.Comment, error) {
	update := bson.M{"$set": bson.M{"pinned": true}}
	return findOneAndUpdate[models.Comment](ctx, r.coll, bson.M{"_id": id}, update, "comment", options.After)
}
