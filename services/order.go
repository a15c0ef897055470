package services

import (
	"slices"

	"github.com/engrsakib/qa-with-go/models"
)

type Order string

const (
	OrderNewest     Order = "newest"
	OrderUnanswered Order = "unanswered"
	OrderActive     Order = "active"
	OrderMostViewed Order = "mostViewed"
)

// ParseOrder maps a query value to an Order. Unknown values fall back to newest.
func ParseOrder(s string) Order {
	switch Order(s) {
	case OrderUnanswered, OrderActive, OrderMostViewed:
		return Order(s)
	}
	return OrderNewest
}

// SortQuestions returns a new slice ordered by o. The input is not modified.
func SortQuestions(qs []models.QuestionView, o Order) []models.QuestionView {
	switch o {
	case OrderUnanswered:
		return SortUnanswered(qs)
	case OrderActive:
		return SortActive(qs)
	case OrderMostViewed:
		return SortMostViewed(qs)
	}
	return SortNewest(qs)
}

func SortNewest(qs []models.QuestionView) []models.QuestionView {
	out := slices.Clone(qs)
	slices.SortStableFunc(out, byNewest)
	return out
}

func SortUnanswered(qs []models.QuestionView) []models.QuestionView {
	out := make([]models.QuestionView, 0, len(qs))
	for _, q := range SortNewest(qs) {
		if len(q.Answers) == 0 {
			out = append(out, q)
		}
	}
	return out
}

// SortActive ranks answered questions by their latest answer. Questions
// without answers follow, newest first.
func SortActive(qs []models.QuestionView) []models.QuestionView {
	out := SortNewest(qs)
	slices.SortStableFunc(out, func(a, b models.QuestionView) int {
		ta, okA := a.LastActivity()
		tb, okB := b.LastActivity()
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	return out
}

func SortMostViewed(qs []models.QuestionView) []models.QuestionView {
	out := SortNewest(qs)
	slices.SortStableFunc(out, func(a, b models.QuestionView) int {
		return len(b.Views) - len(a.Views)
	})
	return out
}

func byNewest(a, b models.QuestionView) int {
	return b.AskDateTime.Compare(a.AskDateTime)
}
