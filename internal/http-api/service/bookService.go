package service

import (
	"context"
	"errors"
	"log/slog"
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

type BookService interface {
	List(ctx context.Context, userID string, q dto.BookQuery) (*dto.BookListResponse, error)
	GetBySlug(ctx context.Context, slug, userID string) (*dto.BookDetailResponse, error)
	Upload(ctx context.Context, in dto.CreateBookDTO, image, content FilePayload) (*models.Book, error)
	Update(ctx context.Context, id string, in dto.UpdateBookDTO, image, content *FilePayload) (*models.Book, error)
	Delete(ctx context.Context, id string) error
	ToggleSaved(ctx context.Context, userID, bookID string) (bool, error)
	Rank(ctx context.Context, userID, bookID string, ranking int) (*models.RankBook, error)
}

type bookService struct {
	repo      repository.BookRepository
	savedRepo repository.SavedBookRepository
	rankRepo  repository.RankBookRepository
	assets    assets.Resolver
	logger    *slog.Logger
}

func NewBookService(
	repo repository.BookRepository,
	savedRepo repository.SavedBookRepository,
	rankRepo repository.RankBookRepository,
	resolver assets.Resolver,
	logger *slog.Logger,
) BookService {
	return &bookService{
		repo:      repo,
		savedRepo: savedRepo,
		rankRepo:  rankRepo,
		assets:    resolver,
		logger:    logger,
	}
}

// List composes the book list view: the user's saved set is resolved once,
// rows are fetched with references joined, image keys are exchanged for URLs
// in a single batched call, and each item is annotated with is_saved.
func (s *bookService) List(ctx context.Context, userID string, q dto.BookQuery) (*dto.BookListResponse, error) {
	savedIDs, err := s.savedRepo.ListBookIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if q.Saved && len(savedIDs) == 0 {
		return &dto.BookListResponse{Books: []dto.BookListItem{}}, nil
	}

	filters := repository.BookFilters{
		Search:      q.Search,
		MinRanking:  q.Ranking,
		AuthorID:    q.Author,
		TagID:       q.Category,
		EditorialID: q.Editorial,
		Skip:        q.Skip,
		Limit:       q.Limit,
		Alphabet:    q.Alphabet,
		Added:       q.Added,
	}
	if q.Saved {
		filters.SavedIDs = savedIDs
	}

	books, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(books))
	for i, b := range books {
		keys[i] = b.Image.Key
	}
	urls, err := s.assets.ResolveAccessURLs(ctx, keys)
	if err != nil {
		return nil, err
	}

	savedSet := make(map[string]bool, len(savedIDs))
	for _, id := range savedIDs {
		savedSet[id] = true
	}

	items := make([]dto.BookListItem, 0, len(books))
	for i, b := range books {
		b.Image = models.FileRef{URL: urls[i]}
		items = append(items, dto.FromModelToListItem(b, savedSet[b.ID]))
	}

	resp := &dto.BookListResponse{Books: items}
	if q.Total {
		// Whole-collection count, not the filtered count.
		total, err := s.repo.CountAll(ctx)
		if err != nil {
			return nil, err
		}
		resp.Total = &total
	}
	return resp, nil
}

// GetBySlug returns the full detail view plus the requesting user's own
// ranking. Exactly three keys are resolved in one call, fixed order: content
// file, book image, editorial image.
func (s *bookService) GetBySlug(ctx context.Context, slug, userID string) (*dto.BookDetailResponse, error) {
	book, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("book does not exist")
		}
		return nil, err
	}

	var personalRanking *int
	rank, err := s.rankRepo.GetByUserAndBook(ctx, userID, book.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if rank != nil {
		personalRanking = &rank.Ranking
	}

	keys := []string{book.Content.Key, book.Image.Key}
	if book.Editorial != nil {
		keys = append(keys, book.Editorial.Image.Key)
	}
	urls, err := s.assets.ResolveAccessURLs(ctx, keys)
	if err != nil {
		return nil, err
	}
	book.Content = models.FileRef{URL: urls[0]}
	book.Image = models.FileRef{URL: urls[1]}
	if book.Editorial != nil {
		book.Editorial.Image = models.FileRef{URL: urls[2]}
	}

	return &dto.BookDetailResponse{Book: book, Ranking: personalRanking}, nil
}

// Upload registers both files with the asset resolver before any catalog row
// is written; a failed second upload schedules cleanup of the first.
func (s *bookService) Upload(ctx context.Context, in dto.CreateBookDTO, image, content FilePayload) (*models.Book, error) {
	imageRecord, err := s.assets.UploadFile(ctx, image.Data, image.Filename, "books")
	if err != nil {
		return nil, err
	}
	contentRecord, err := s.assets.UploadFile(ctx, content.Data, content.Filename, "books")
	if err != nil {
		s.assets.RequestDeletion([]string{imageRecord.ID})
		return nil, err
	}

	book := in.ToModel(slugify.Slugify(in.Name), time.Now())
	book.Image = models.FileRef{ID: imageRecord.ID, Key: imageRecord.Key}
	book.Content = models.FileRef{ID: contentRecord.ID, Key: contentRecord.Key}

	if err := s.repo.Create(ctx, &book, in.Tags); err != nil {
		s.assets.RequestDeletion([]string{imageRecord.ID, contentRecord.ID})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("a book with this slug already exists")
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, errs.Validation("referenced author, editorial or tag does not exist")
		}
		return nil, err
	}
	return &book, nil
}

// Update applies a partial update. Replacement files are uploaded first; the
// old file records are batched and their deletion requested only after the
// row update succeeds.
func (s *bookService) Update(ctx context.Context, id string, in dto.UpdateBookDTO, image, content *FilePayload) (*models.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("book does not exist")
		}
		return nil, err
	}

	deleteBatch := make([]string, 0, 2)
	if image != nil {
		record, err := s.assets.UploadFile(ctx, image.Data, image.Filename, "books")
		if err != nil {
			return nil, err
		}
		deleteBatch = append(deleteBatch, book.Image.ID)
		book.Image = models.FileRef{ID: record.ID, Key: record.Key}
	}
	if content != nil {
		record, err := s.assets.UploadFile(ctx, content.Data, content.Filename, "books")
		if err != nil {
			return nil, err
		}
		deleteBatch = append(deleteBatch, book.Content.ID)
		book.Content = models.FileRef{ID: record.ID, Key: record.Key}
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		book.Name = *in.Name
		book.Slug = slugify.Slugify(*in.Name)
	}
	if in.Synopsis != nil {
		book.Synopsis = *in.Synopsis
	}
	if in.Author != nil {
		book.AuthorID = *in.Author
	}
	if in.Editorial != nil {
		book.EditorialID = *in.Editorial
	}
	book.DateUpdate = time.Now()

	if err := s.repo.Save(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("a book with this slug already exists")
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, errs.Validation("referenced author or editorial does not exist")
		}
		return nil, err
	}
	if in.Tags != nil {
		if err := s.repo.ReplaceTags(ctx, book, in.Tags); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return nil, errs.Validation("referenced tag does not exist")
			}
			return nil, err
		}
	}

	if len(deleteBatch) > 0 {
		s.assets.RequestDeletion(deleteBatch)
	}
	return book, nil
}

// Delete pulls the book out of every saved set and hard-deletes the row;
// books have no soft-delete path. The book's own files are scheduled for
// deletion afterwards.
func (s *bookService) Delete(ctx context.Context, id string) error {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("book does not exist")
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.assets.RequestDeletion([]string{book.Image.ID, book.Content.ID})
	return nil
}

func (s *bookService) ToggleSaved(ctx context.Context, userID, bookID string) (bool, error) {
	if _, err := s.repo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.NotFound("book does not exist")
		}
		return false, err
	}
	return s.savedRepo.Toggle(ctx, userID, bookID)
}

func (s *bookService) Rank(ctx context.Context, userID, bookID string, ranking int) (*models.RankBook, error) {
	if ranking < 1 || ranking > 5 {
		return nil, errs.Validation("ranking must be between 1 and 5")
	}
	if _, err := s.repo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("book does not exist")
		}
		return nil, err
	}

	rank, err := s.rankRepo.Upsert(ctx, userID, bookID, ranking)
	if err != nil {
		return nil, err
	}

	// Refresh the aggregate on the book row; best effort.
	if avg, err := s.rankRepo.CalculateAverage(ctx, bookID); err == nil {
		if err := s.repo.UpdateRanking(ctx, bookID, avg); err != nil {
			s.logger.Warn("failed to update aggregate ranking", "book_id", bookID, "error", err)
		}
	} else {
		s.logger.Warn("failed to compute aggregate ranking", "book_id", bookID, "error", err)
	}

	return rank, nil
}
