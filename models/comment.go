package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is always a leaf, owned by one question or one answer.
type Comment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Text            string             `bson:"text" json:"text"`
	CommentBy       string             `bson:"commentBy" json:"commentBy"`
	CommentDateTime time.Time          `bson:"commentDateTime" json:"commentDateTime"`
	Pinned          bool               `bson:"pinned" json:"pinned"`
}
