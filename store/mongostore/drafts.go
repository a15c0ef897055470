package mongostore

import (
	"context"
	"time"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type draftRepo struct {
	questions *mongo.Collection
	answers   *mongo.Collection
}

func (r *draftRepo) InsertQuestion(ctx context.Context, d *models.DraftQuestion) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	nonNilStrings(&d.Edit.TagNames)
	if _, err := r.questions.InsertOne(ctx, d); err != nil {
		return errorz.Storage("insert question draft", err)
	}
	return nil
}

func (r *draftRepo) UpdateQuestion(ctx context.Context, id primitive.ObjectID, edit models.QuestionContent) (models.DraftQuestion, error) {
	nonNilStrings(&edit.TagNames)
	update := bson.M{"$set": bson.M{"edit": edit, "updatedAt": time.Now()}}
	return findOneAndUpdate[models.DraftQuestion](ctx, r.questions, bson.M{"_id": id}, update, "question draft", options.After)
}

func (r *draftRepo) FindQuestion(ctx context.Context, id primitive.ObjectID) (models.DraftQuestion, error) {
	return findOne[models.DraftQuestion](ctx, r.questions, bson.M{"_id": id}, "question draft")
}

func (r *draftRepo) FindQuestionByReal(ctx context.Context, username string, realID primitive.ObjectID) (models.DraftQuestion, error) {
	return findOne[models.DraftQuestion](ctx, r.questions, bson.M{"username": username, "realId": realID}, "question draft")
}

func (r *draftRepo) DeleteQuestion(ctx context.Context, id primitive.ObjectID) error {
	_, err := findOneAndDelete[models.DraftQuestion](ctx, r.questions, id, "question draft")
	return err
}

func (r *draftRepo) ListQuestions(ctx context.Context, username string) ([]models.DraftQuestion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	return findAll[models.DraftQuestion](ctx, r.questions, bson.M{"username": username}, "question drafts", opts)
}

func (r *draftRepo) InsertAnswer(ctx context.Context, d *models.DraftAnswer) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if _, err := r.answers.InsertOne(ctx, d); err != nil {
		return errorz.Storage("insert answer draft", err)
	}
	return nil
}

func (r *draftRepo) UpdateAnswer(ctx context.Context, id primitive.ObjectID, edit models.AnswerContent) (models.DraftAnswer, error) {
	update := bson.M{"$set": bson.M{"edit": edit, "updatedAt": time.Now()}}
	return findOneAndUpdate[models.DraftAnswer](ctx, r.answers, bson.M{"_id": id}, update, "answer draft", options.After)
}

func (r *draftRepo) FindAnswer(ctx context.Context, id primitive.ObjectID) (models.DraftAnswer, error) {
	return findOne[models.DraftAnswer](ctx, r.answers, bson.M{"_id": id}, "answer draft")
}

func (r *draftRepo) FindAnswerByReal(ctx context.Context, username string, realID primitive.ObjectID) (models.DraftAnswer, error) {
	return findOne[models.DraftAnswer](ctx, r.answers, bson.M{"username": username, "realId": realID}, "answer draft")
}

func (r *draftRepo) DeleteAnswer(ctx context.Context, id primitive.ObjectID) error {
	_, err := findOneAndDelete[models.DraftAnswer](ctx, r.answers, id, "answer draft")
	return err
}

func (r *draftRepo) ListAnswers(ctx context.Context, username string) ([]models.DraftAnswer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	return findAll[models.DraftAnswer](ctx, r.answers, bson.M{"username": username}, "answer drafts", opts)
}
