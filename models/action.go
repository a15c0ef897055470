package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type ActionType string

const (
	ActionPin     ActionType = "pin"
	ActionLock    ActionType = "lock"
	ActionRemove  ActionType = "remove"
	ActionPromote ActionType = "promote"
)

type PostType string

const (
	PostQuestion PostType = "question"
	PostAnswer   PostType = "answer"
	PostComment  PostType = "comment"
)

func (p PostType) Valid() bool {
	return p == PostQuestion || p == PostAnswer || p == PostComment
}

// Flag is a boolean field that moderation can set on a post.
type Flag string

const (
	FlagPinned Flag = "pinned"
	FlagLocked Flag = "locked"
)

// Action is a moderation request. Removing an answer needs ParentID (its question);
// removing a comment needs ParentID and ParentType.
type Action struct {
	User       string
	Type       ActionType
	PostType   PostType
	PostID     primitive.ObjectID
	ParentID   *primitive.ObjectID
	ParentType PostType
}

// ActionResult is what an action produced. Exactly one of Question, Answer
// or Comment is set, matching PostType.
type ActionResult struct {
	PostType   PostType      `json:"postType"`
	Question   *QuestionView `json:"question,omitempty"`
	Answer     *AnswerView   `json:"answer,omitempty"`
	Comment    *Comment      `json:"comment,omitempty"`
	ParentID   string        `json:"parentID,omitempty"`
	ParentType PostType      `json:"parentPostType,omitempty"`
	Removed    bool          `json:"removed"`
}
