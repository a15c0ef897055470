package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer belongs to exactly one question through that question's Answers list.
type Answer struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Text        string               `bson:"text" json:"text"`
	AnsBy       string               `bson:"ansBy" json:"ansBy"`
	AnsDateTime time.Time            `bson:"ansDateTime" json:"ansDateTime"`
	Comments    []primitive.ObjectID `bson:"comments" json:"comments"`
	Locked      bool                 `bson:"locked" json:"locked"`
	Pinned      bool                 `bson:"pinned" json:"pinned"`
	IsCorrect   bool                 `bson:"isCorrect" json:"isCorrect"`
}

type AnswerView struct {
	ID          primitive.ObjectID `json:"_id"`
	Text        string             `json:"text"`
	AnsBy       string             `json:"ansBy"`
	AnsDateTime time.Time          `json:"ansDateTime"`
	Comments    []Comment          `json:"comments"`
	Locked      bool               `json:"locked"`
	Pinned      bool               `json:"pinned"`
	IsCorrect   bool               `json:"isCorrect"`
}
