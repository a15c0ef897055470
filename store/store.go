// Package store declares the persistence contract of the Q&A service.
//
// Every mutating method is a single atomic operation on one document: vote
// toggles, flag sets and the lock-checked reference pushes never read and
// then write in two steps. Absent documents are reported as errorz.ErrNotFound.
package store

import (
	"context"

	"github.com/engrsakib/qa-with-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store interface {
	Questions() QuestionRepository
	Answers() AnswerRepository
	Comments() CommentRepository
	Tags() TagRepository
	Accounts() AccountRepository
	Drafts() DraftRepository
}

type QuestionRepository interface {
	Insert(ctx context.Context, q *models.Question) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Question, error)
	FindAll(ctx context.Context) ([]models.Question, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, title, text string, tags []primitive.ObjectID) (models.Question, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Question, error)
	AddView(ctx context.Context, id primitive.ObjectID, username string) (models.Question, error)
	// Vote toggles username in the vote sets and returns the document as it
	// was before the update. The state after is models.ApplyVote of it.
	Vote(ctx context.Context, id primitive.ObjectID, username string, dir models.VoteDirection) (models.Question, error)
	SetFlag(ctx context.Context, id primitive.ObjectID, flag models.Flag) (models.Question, error)
	// PushAnswer and PushComment fail with errorz.ErrLocked when the question is locked.
	PushAnswer(ctx context.Context, id, answerID primitive.ObjectID) error
	PullAnswer(ctx context.Context, id, answerID primitive.ObjectID) error
	PushComment(ctx context.Context, id, commentID primitive.ObjectID) error
	PullComment(ctx context.Context, id, commentID primitive.ObjectID) error
	CountByTag(ctx context.Context) (map[primitive.ObjectID]int, error)
}

type AnswerRepository interface {
	Insert(ctx context.Context, a *models.Answer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Answer, error)
	FindMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Answer, error)
	// UpdateText fails with errorz.ErrLocked when the answer is locked.
	UpdateText(ctx context.Context, id primitive.ObjectID, text string) (models.Answer, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Answer, error)
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) error
	SetFlag(ctx context.Context, id primitive.ObjectID, flag models.Flag) (models.Answer, error)
	SetCorrect(ctx context.Context, id primitive.ObjectID, correct bool) (models.Answer, error)
	// PushComment fails with errorz.ErrLocked when the answer is locked.
	PushComment(ctx context.Context, id, commentID primitive.ObjectID) error
	PullComment(ctx context.Context, id, commentID primitive.ObjectID) error
}

type CommentRepository interface {
	Insert(ctx context.Context, c *models.Comment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Comment, error)
	FindMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.Comment, error)
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) error
	SetPinned(ctx context.Context, id primitive.ObjectID) (models.Comment, error)
}

type TagRepository interface {
	// Upsert returns the tag named name, creating it when absent.
	Upsert(ctx context.Context, name, description string) (models.Tag, error)
	FindByName(ctx context.Context, name string) (models.Tag, error)
	FindMany(ctx context.Context, ids []primitive.ObjectID) ([]models.Tag, error)
	FindAll(ctx context.Context) ([]models.Tag, error)
}

type AccountRepository interface {
	// Insert fails with errorz.ErrConflict when the username or email is taken.
	Insert(ctx context.Context, a *models.Account) error
	FindByUsername(ctx context.Context, username string) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	SetUserType(ctx context.Context, username string, t models.UserType) (models.Account, error)
	UpdateSettings(ctx context.Context, username string, s models.Settings) (models.Account, error)
	IncScore(ctx context.Context, username string, delta int) error
	AddToList(ctx context.Context, username string, list models.AccountList, id primitive.ObjectID) error
	RemoveFromList(ctx context.Context, username string, list models.AccountList, id primitive.ObjectID) error
}

type DraftRepository interface {
	InsertQuestion(ctx context.Context, d *models.DraftQuestion) error
	UpdateQuestion(ctx context.Context, id primitive.ObjectID, edit models.QuestionContent) (models.DraftQuestion, error)
	FindQuestion(ctx context.Context, id primitive.ObjectID) (models.DraftQuestion, error)
	FindQuestionByReal(ctx context.Context, username string, realID primitive.ObjectID) (models.DraftQuestion, error)
	DeleteQuestion(ctx context.Context, id primitive.ObjectID) error
	ListQuestions(ctx context.Context, username string) ([]models.DraftQuestion, error)

	InsertAnswer(ctx context.Context, d *models.DraftAnswer) error
	UpdateAnswer(ctx context.Context, id primitive.ObjectID, edit models.AnswerContent) (models.DraftAnswer, error)
	FindAnswer(ctx context.Context, id primitive.ObjectID) (models.DraftAnswer, error)
	FindAnswerByReal(ctx context.Context, username string, realID primitive.ObjectID) (models.DraftAnswer, error)
	DeleteAnswer(ctx context.Context, id primitive.ObjectID) error
	ListAnswers(ctx context.Context, username string) ([]models.DraftAnswer, error)
}
