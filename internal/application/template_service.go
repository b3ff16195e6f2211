package application

import (
	"context"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
)

type TemplatePatch struct {
	Name    *string
	Subject *string
	Body    *string
}

type TemplateService struct {
	Templates repo.OfferTemplateRepository
}

func NewTemplateService(templates repo.OfferTemplateRepository) *TemplateService {
	return &TemplateService{Templates: templates}
}

func (s *TemplateService) List(ctx context.Context) ([]entity.OfferTemplate, error) {
	return s.Templates.List(ctx)
}

func (s *TemplateService) Create(ctx context.Context, name, subject, body string) (*entity.OfferTemplate, error) {
	t := &entity.OfferTemplate{Name: name, Subject: subject, Body: body}
	if err := s.Templates.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) Get(ctx context.Context, id string) (*entity.OfferTemplate, error) {
	t, err := s.Templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTemplateNotFound
	}
	return t, nil
}

func (s *TemplateService) Update(ctx context.Context, id string, p TemplatePatch) (*entity.OfferTemplate, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Subject != nil {
		t.Subject = *p.Subject
	}
	if p.Body != nil {
		t.Body = *p.Body
	}
	if err := s.Templates.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	ok, err := s.Templates.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTemplateNotFound
	}
	return nil
}
