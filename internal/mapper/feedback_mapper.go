package mapper

import (
	"kb-assist-be/internal/entity"
	"kb-assist-be/internal/model"
)

type FeedbackMapper struct{}

func NewFeedbackMapper() *FeedbackMapper {
	return &FeedbackMapper{}
}

func (m *FeedbackMapper) ToEntity(f *model.Feedback) *entity.FeedbackEntry {
	if f == nil {
		return nil
	}
	return &entity.FeedbackEntry{
		Id:        f.Id,
		Query:     f.Query,
		Answer:    f.Answer,
		Rating:    f.Rating,
		Type:      f.Type,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FeedbackMapper) ToModel(f *entity.FeedbackEntry) *model.Feedback {
	if f == nil {
		return nil
	}
	return &model.Feedback{
		Id:        f.Id,
		Query:     f.Query,
		Answer:    f.Answer,
		Rating:    f.Rating,
		Type:      f.Type,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FeedbackMapper) ToEntities(models []*model.Feedback) []*entity.FeedbackEntry {
	entities := make([]*entity.FeedbackEntry, len(models))
	for i, f := range models {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
