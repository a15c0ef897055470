package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuestionContent struct {
	Title    string   `bson:"title" json:"title"`
	Text     string   `bson:"text" json:"text"`
	TagNames []string `bson:"tagNames" json:"tagNames"`
}

// DraftQuestion is an unpublished question. RealID points at the published
// question it will replace, when the draft is an edit.
type DraftQuestion struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Username  string              `bson:"username" json:"username"`
	RealID    *primitive.ObjectID `bson:"realId,omitempty" json:"realId,omitempty"`
	Edit      QuestionContent     `bson:"edit" json:"edit"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type AnswerContent struct {
	Text string `bson:"text" json:"text"`
}

type DraftAnswer struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Username   string              `bson:"username" json:"username"`
	QuestionID primitive.ObjectID  `bson:"questionId" json:"questionId"`
	RealID     *primitive.ObjectID `bson:"realId,omitempty" json:"realId,omitempty"`
	Edit       AnswerContent       `bson:"edit" json:"edit"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type Drafts struct {
	Questions []DraftQuestion `json:"questionDrafts"`
	Answers   []DraftAnswer   `json:"answerDrafts"`
}
