// Package events pushes committed state changes to connected clients.
//
// Services publish after the database write succeeds. There is no ordering
// between events from different requests; every payload carries the whole
// entity keyed by id so a client can apply it on its own.
package events

import (
	"context"
	"sync"

	"github.com/engrsakib/qa-with-go/models"
)

type Type string

const (
	QuestionUpdate Type = "questionUpdate"
	AnswerUpdate   Type = "answerUpdate"
	CommentUpdate  Type = "commentUpdate"
	VoteUpdate     Type = "voteUpdate"
	UserUpdate     Type = "userUpdate"
)

type Event struct {
	Type    Type `json:"type"`
	Payload any  `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type QuestionPayload struct {
	Question models.QuestionView `json:"question"`
	Removed  bool                `json:"removed"`
}

type AnswerPayload struct {
	QID     string            `json:"qid"`
	Answer  models.AnswerView `json:"answer"`
	Removed bool              `json:"removed"`
}

type CommentPayload struct {
	Result   models.Comment  `json:"result"`
	Type     models.PostType `json:"type"`
	ParentID string          `json:"parentID"`
	Removed  bool            `json:"removed"`
}

type UserPayload struct {
	User models.PublicAccount `json:"user"`
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// OfType returns the recorded events of type t in publish order.
func (r *Recorder) OfType(t Type) []Event {
	var out []Event
	for _, ev := range r.Events() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
