package service

import (
	"context"
	"errors"
	"time"

	"libris/internal/assets"
	"libris/internal/errs"
	"libris/internal/http-api/dto"
	"libris/internal/http-api/models"
	"libris/internal/http-api/repository"
	"libris/pkg/slugify"

	"gorm.io/gorm"
)

type EditorialService interface {
	GetAll(ctx context.Context) ([]models.Editorial, error)
	Upload(ctx context.Context, in dto.CreateEditorialDTO, image FilePayload) (*models.Editorial, error)
	Update(ctx context.Context, id string, in dto.UpdateEditorialDTO, image *FilePayload) (*models.Editorial, error)
	Delete(ctx context.Context, id string) error
}

type editorialService struct {
	repo   repository.EditorialRepository
	guard  DependencyGuard
	assets assets.Resolver
}

func NewEditorialService(repo repository.EditorialRepository, guard DependencyGuard, resolver assets.Resolver) EditorialService {
	return &editorialService{repo: repo, guard: guard, assets: resolver}
}

// GetAll resolves every image key to a URL in a single batched call,
// splicing results back by position.
func (s *editorialService) GetAll(ctx context.Context) ([]models.Editorial, error) {
	editorials, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(editorials) == 0 {
		return editorials, nil
	}

	keys := make([]string, len(editorials))
	for i, e := range editorials {
		keys[i] = e.Image.Key
	}
	urls, err := s.assets.ResolveAccessURLs(ctx, keys)
	if err != nil {
		return nil, err
	}
	for i := range editorials {
		editorials[i].Image = models.FileRef{URL: urls[i]}
	}
	return editorials, nil
}

func (s *editorialService) Upload(ctx context.Context, in dto.CreateEditorialDTO, image FilePayload) (*models.Editorial, error) {
	record, err := s.assets.UploadFile(ctx, image.Data, image.Filename, "editorials")
	if err != nil {
		return nil, err
	}

	editorial := &models.Editorial{
		Name:   in.Editorial,
		Slug:   slugify.Slugify(in.Editorial),
		Image:  models.FileRef{ID: record.ID, Key: record.Key},
		Status: true,
		Date:   time.Now(),
	}
	if err := s.repo.Create(ctx, editorial); err != nil {
		s.assets.RequestDeletion([]string{record.ID})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("an editorial with this slug already exists")
		}
		return nil, err
	}

	// The created view carries a live URL for the fresh image.
	urls, err := s.assets.ResolveAccessURLs(ctx, []string{record.Key})
	if err != nil {
		return nil, err
	}
	editorial.Image.URL = urls[0]
	return editorial, nil
}

func (s *editorialService) Update(ctx context.Context, id string, in dto.UpdateEditorialDTO, image *FilePayload) (*models.Editorial, error) {
	editorial, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("editorial does not exist")
		}
		return nil, err
	}

	oldImage := editorial.Image
	replacedImage := false
	if image != nil {
		record, err := s.assets.UploadFile(ctx, image.Data, image.Filename, "editorials")
		if err != nil {
			return nil, err
		}
		editorial.Image = models.FileRef{ID: record.ID, Key: record.Key}
		replacedImage = true
	}

	if in.Editorial != nil && *in.Editorial != "" {
		editorial.Name = *in.Editorial
		editorial.Slug = slugify.Slugify(*in.Editorial)
	}

	if err := s.repo.Save(ctx, editorial); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("an editorial with this slug already exists")
		}
		return nil, err
	}

	if replacedImage {
		s.assets.RequestDeletion([]string{oldImage.ID})
		urls, err := s.assets.ResolveAccessURLs(ctx, []string{editorial.Image.Key})
		if err != nil {
			return nil, err
		}
		editorial.Image.URL = urls[0]
	}
	return editorial, nil
}

func (s *editorialService) Delete(ctx context.Context, id string) error {
	editorial, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("editorial does not exist")
		}
		return err
	}

	hasDependents, err := s.guard.HasDependents(ctx, KindEditorial, id)
	if err != nil {
		return err
	}
	if hasDependents {
		if err := s.repo.SoftDelete(ctx, id); err != nil {
			return err
		}
	} else {
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
	}
	s.assets.RequestDeletion([]string{editorial.Image.ID})
	return nil
}
