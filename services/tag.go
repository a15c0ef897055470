package services

import (
	"context"
	"strings"

	"github.com/engrsakib/qa-with-go/models"
)

// TagsWithQuestionCount lists every tag with the number of questions using it.
func (s *Service) TagsWithQuestionCount(ctx context.Context) ([]models.TagCount, error) {
	tags, err := s.store.Tags().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.store.Questions().CountByTag(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.TagCount, 0, len(tags))
	for _, t := range tags {
		out = append(out, models.TagCount{Name: t.Name, Qcnt: counts[t.ID]})
	}
	return out, nil
}

func (s *Service) GetTagByName(ctx context.Context, name string) (models.Tag, error) {
	return s.store.Tags().FindByName(ctx, strings.ToLower(strings.TrimSpace(name)))
}
