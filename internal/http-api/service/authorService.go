package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"libris/internal/assets"
	"libris/internal/errs"
	"libris/internal/http-api/dto"
	"libris/internal/http-api/models"
	"libris/internal/http-api/repository"
	"libris/pkg/slugify"

	"gorm.io/gorm"
)

// FilePayload is a binary part extracted from a multipart request.
type FilePayload struct {
	Filename string
	Data     []byte
}

type AuthorService interface {
	GetAll(ctx context.Context) ([]dto.AuthorListItem, error)
	GetBySlug(ctx context.Context, slug string) (*models.Author, error)
	Upload(ctx context.Context, in dto.CreateAuthorDTO, image FilePayload) (*models.Author, error)
	Update(ctx context.Context, id string, in dto.UpdateAuthorDTO, image *FilePayload) error
	Delete(ctx context.Context, id string) error
}

type authorService struct {
	repo   repository.AuthorRepository
	guard  DependencyGuard
	assets assets.Resolver
}

func NewAuthorService(repo repository.AuthorRepository, guard DependencyGuard, resolver assets.Resolver) AuthorService {
	return &authorService{repo: repo, guard: guard, assets: resolver}
}

func (s *authorService) GetAll(ctx context.Context) ([]dto.AuthorListItem, error) {
	authors, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuthorListItem, 0, len(authors))
	for _, a := range authors {
		items = append(items, dto.FromModelToAuthorListItem(a))
	}
	return items, nil
}

func (s *authorService) GetBySlug(ctx context.Context, slug string) (*models.Author, error) {
	author, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("author does not exist")
		}
		return nil, err
	}
	urls, err := s.assets.ResolveAccessURLs(ctx, []string{author.Image.Key})
	if err != nil {
		return nil, err
	}
	author.Image = models.FileRef{URL: urls[0]}
	return author, nil
}

// Upload registers the image with the asset resolver first; no author row is
// created when that call fails.
func (s *authorService) Upload(ctx context.Context, in dto.CreateAuthorDTO, image FilePayload) (*models.Author, error) {
	record, err := s.assets.UploadFile(ctx, image.Data, image.Filename, "authors")
	if err != nil {
		return nil, err
	}

	author := in.ToModel(slugify.Slugify(in.Name), time.Now())
	author.Image = models.FileRef{ID: record.ID, Key: record.Key}

	if err := s.repo.Create(ctx, &author); err != nil {
		s.assets.RequestDeletion([]string{record.ID})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("an author with this slug already exists")
		}
		return nil, err
	}
	return &author, nil
}

func (s *authorService) Update(ctx context.Context, id string, in dto.UpdateAuthorDTO, image *FilePayload) error {
	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("author does not exist")
		}
		return err
	}

	oldImage := author.Image
	replacedImage := false
	if image != nil {
		record, err := s.assets.UploadFile(ctx, image.Data, image.Filename, "authors")
		if err != nil {
			return err
		}
		author.Image = models.FileRef{ID: record.ID, Key: record.Key}
		replacedImage = true
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		author.Name = *in.Name
		author.Slug = slugify.Slugify(*in.Name)
	}
	if in.Biography != nil {
		author.Biography = *in.Biography
	}
	if in.References != nil {
		author.References = in.References
	}

	// Submitted arrays fully replace the stored ones; sub-ids are
	// regenerated by the store.
	replaceInfo := in.TableInfo != nil
	replaceFacts := in.FunFacts != nil
	if replaceInfo {
		author.TableInfo = make([]models.TableInfo, 0, len(in.TableInfo))
		for _, item := range in.TableInfo {
			author.TableInfo = append(author.TableInfo, models.TableInfo{Key: item.Key, Value: item.Value})
		}
	}
	if replaceFacts {
		author.FunFacts = make([]models.FunFact, 0, len(in.FunFacts))
		for _, fact := range in.FunFacts {
			author.FunFacts = append(author.FunFacts, models.FunFact{Title: fact.Title, Fact: fact.Fact})
		}
	}

	author.DateUpdate = time.Now()

	if err := s.repo.Update(ctx, author, replaceInfo, replaceFacts); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Conflict("an author with this slug already exists")
		}
		return err
	}

	// Old image becomes orphaned only after a successful update.
	if replacedImage {
		s.assets.RequestDeletion([]string{oldImage.ID})
	}
	return nil
}

func (s *authorService) Delete(ctx context.Context, id string) error {
	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("author does not exist")
		}
		return err
	}

	hasDependents, err := s.guard.HasDependents(ctx, KindAuthor, id)
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
	s.assets.RequestDeletion([]string{author.Image.ID})
	return nil
}
