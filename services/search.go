package services

import (
	"regexp"
	"strings"

	"github.com/engrsakib/qa-with-go/models"
)

var tagPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)

// SearchQuery is a parsed search string: bracketed words are tags, the rest keywords.
type SearchQuery struct {
	Tags     []string
	Keywords []string
}

func ParseSearch(s string) SearchQuery {
	var q SearchQuery
	for _, m := range tagPattern.FindAllStringSubmatch(s, -1) {
		if tag := strings.TrimSpace(m[1]); tag != "" {
			q.Tags = append(q.Tags, tag)
		}
	}
	q.Keywords = strings.Fields(tagPattern.ReplaceAllString(s, " "))
	return q
}

func (q SearchQuery) Empty() bool {
	return len(q.Tags) == 0 && len(q.Keywords) == 0
}

// Matches is true when any keyword occurs in the title or text, or any tag is
// on the question. A query with no criteria matches everything.
func (q SearchQuery) Matches(v models.QuestionView) bool {
	if q.Empty() {
		return true
	}
	title, text := strings.ToLower(v.Title), strings.ToLower(v.Text)
	for _, k := range q.Keywords {
		k = strings.ToLower(k)
		if strings.Contains(title, k) || strings.Contains(text, k) {
			return true
		}
	}
	for _, t := range q.Tags {
		if v.HasTag(t) {
			return true
		}
	}
	return false
}

// FilterBySearch keeps the questions matching search. An empty search returns qs unchanged.
func FilterBySearch(qs []models.QuestionView, search string) []models.QuestionView {
	q := ParseSearch(search)
	if q.Empty() {
		return qs
	}
	out := make([]models.QuestionView, 0, len(qs))
	for _, v := range qs {
		if q.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}
