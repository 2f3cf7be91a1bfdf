package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"libris/internal/errs"
	"libris/internal/http-api/models"
	"libris/internal/http-api/repository"
	"libris/pkg/slugify"

	"gorm.io/gorm"
)

type TagService interface {
	GetAll(ctx context.Context) ([]models.Tag, error)
	Create(ctx context.Context, label string) (*models.Tag, error)
	Delete(ctx context.Context, id string) error
}

type tagService struct {
	repo  repository.TagRepository
	guard DependencyGuard
}

func NewTagService(repo repository.TagRepository, guard DependencyGuard) TagService {
	return &tagService{repo: repo, guard: guard}
}

func (s *tagService) GetAll(ctx context.Context) ([]models.Tag, error) {
	return s.repo.ListActive(ctx)
}

func (s *tagService) Create(ctx context.Context, label string) (*models.Tag, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, errs.Validation("tag label is required")
	}
	tag := &models.Tag{
		Label:  label,
		Slug:   slugify.Slugify(label),
		Status: true,
		Date:   time.Now(),
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("a tag with this slug already exists")
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("tag does not exist")
		}
		return err
	}
	hasDependents, err := s.guard.HasDependents(ctx, KindTag, id)
	if err != nil {
		return err
	}
	if hasDependents {
		return s.repo.SoftDelete(ctx, id)
	}
	return s.repo.Delete(ctx, id)
}
