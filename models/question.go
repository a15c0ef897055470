package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is the stored form: tags, answers and comments are references.
type Question struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title       string               `bson:"title" json:"title"`
	Text        string               `bson:"text" json:"text"`
	Tags        []primitive.ObjectID `bson:"tags" json:"tags"`
	Answers     []primitive.ObjectID `bson:"answers" json:"answers"`
	AskedBy     string               `bson:"askedBy" json:"askedBy"`
	AskDateTime time.Time            `bson:"askDateTime" json:"askDateTime"`
	Views       []string             `bson:"views" json:"views"`
	UpVotes     []string             `bson:"upVotes" json:"upVotes"`
	DownVotes   []string             `bson:"downVotes" json:"downVotes"`
	Comments    []primitive.ObjectID `bson:"comments" json:"comments"`
	Locked      bool                 `bson:"locked" json:"locked"`
	Pinned      bool                 `bson:"pinned" json:"pinned"`
}

// QuestionView is a question with every reference resolved.
type QuestionView struct {
	ID          primitive.ObjectID `json:"_id"`
	Title       string             `json:"title"`
	Text        string             `json:"text"`
	Tags        []Tag              `json:"tags"`
	Answers     []AnswerView       `json:"answers"`
	AskedBy     string             `json:"askedBy"`
	AskDateTime time.Time          `json:"askDateTime"`
	Views       []string           `json:"views"`
	UpVotes     []string           `json:"upVotes"`
	DownVotes   []string           `json:"downVotes"`
	Comments    []Comment          `json:"comments"`
	Locked      bool               `json:"locked"`
	Pinned      bool               `json:"pinned"`
}

// LastActivity is the newest answer time, or false when there are no answers.
func (q QuestionView) LastActivity() (time.Time, bool) {
	var latest time.Time
	for _, a := range q.Answers {
		if a.AnsDateTime.After(latest) {
			latest = a.AnsDateTime
		}
	}
	return latest, len(q.Answers) > 0
}

// HasTag reports whether the question carries a tag with the given name (case-insensitive).
func (q QuestionView) HasTag(name string) bool {
	for _, t := range q.Tags {
		if equalFold(t.Name, name) {
			return true
		}
	}
	return false
}
