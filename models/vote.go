package models

import "slices"

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// ApplyVote returns the vote sets after username votes in dir.
// Voting the same way twice cancels; voting the other way moves the user across.
// A username never ends up in both sets.
func ApplyVote(up, down []string, username string, dir VoteDirection) ([]string, []string) {
	same, other := up, down
	if dir == VoteDown {
		same, other = down, up
	}

	other = without(other, username)
	if slices.Contains(same, username) {
		same = without(same, username)
	} else {
		same = append(slices.Clone(same), username)
	}

	if dir == VoteDown {
		return other, same
	}
	return same, other
}

// VoteDelta is the change to the author's score between two vote states.
func VoteDelta(beforeUp, beforeDown, afterUp, afterDown []string) int {
	return (len(afterUp) - len(beforeUp)) - (len(afterDown) - len(beforeDown))
}

type VoteUpdate struct {
	QID       string   `json:"qid"`
	UpVotes   []string `json:"upVotes"`
	DownVotes []string `json:"downVotes"`
}

func without(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
