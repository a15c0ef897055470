package services

import (
	"testing"
	"time"

	"github.com/engrsakib/qa-with-go/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func view(title string, asked int, answers ...int) models.QuestionView {
	v := models.QuestionView{ID: primitive.NewObjectID(), Title: title, AskDateTime: base.Add(time.Duration(asked) * time.Hour)}
	for _, h := range answers {
		v.Answers = append(v.Answers, models.AnswerView{AnsDateTime: base.Add(time.Duration(h) * time.Hour)})
	}
	return v
}

func titles(qs []models.QuestionView) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Title)
	}
	return out
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, OrderActive, ParseOrder("active"))
	assert.Equal(t, OrderMostViewed, ParseOrder("mostViewed"))
	assert.Equal(t, OrderNewest, ParseOrder(""))
	assert.Equal(t, OrderNewest, ParseOrder("bogus"))
}

func TestSortNewest(t *testing.T) {
	qs := []models.QuestionView{view("a", 1), view("c", 3), view("b", 2)}

	got := SortNewest(qs)

	assert.Equal(t, []string{"c", "b", "a"}, titles(got))
	assert.Equal(t, []string{"a", "c", "b"}, titles(qs), "input must not be reordered")
}

func TestSortUnanswered(t *testing.T) {
	qs := []models.QuestionView{view("a", 1), view("b", 2, 5), view("c", 3)}

	assert.Equal(t, []string{"c", "a"}, titles(SortUnanswered(qs)))
}

func TestSortActive(t *testing.T) {
	t.Run("answered by latest answer first", func(t *testing.T) {
		// p was asked later but q has the most recent answer.
		q := view("q", 1, 2, 10)
		p := view("p", 5, 6)
		assert.Equal(t, []string{"q", "p"}, titles(SortActive([]models.QuestionView{p, q})))
	})

	t.Run("unanswered follow newest first", func(t *testing.T) {
		qs := []models.QuestionView{view("old", 1), view("answered", 0, 2), view("new", 9)}
		assert.Equal(t, []string{"answered", "new", "old"}, titles(SortActive(qs)))
	})
}

func TestSortMostViewed(t *testing.T) {
	a, b, c := view("a", 1), view("b", 2), view("c", 3)
	a.Views = []string{"x", "y", "z"}
	b.Views = []string{"x"}
	c.Views = []string{"y"}

	assert.Equal(t, []string{"a", "c", "b"}, titles(SortMostViewed([]models.QuestionView{a, b, c})))
}

func TestSortQuestionsPreservesLength(t *testing.T) {
	qs := []models.QuestionView{view("a", 1), view("b", 2, 3), view("c", 3)}
	for _, o := range []Order{OrderNewest, OrderActive, OrderMostViewed} {
		assert.Len(t, SortQuestions(qs, o), len(qs), o)
	}
}
