package service

import (
	"context"

	"libris/internal/assets"
	"libris/internal/http-api/models"
	"libris/internal/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// MockBookRepository mocks the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, b *models.Book, tagIDs []string) error {
	args := m.Called(ctx, b, tagIDs)
	return args.Error(0)
}

func (m *MockBookRepository) Save(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) ReplaceTags(ctx context.Context, b *models.Book, tagIDs []string) error {
	args := m.Called(ctx, b, tagIDs)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) GetBySlug(ctx context.Context, slug string) (*models.Book, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context, f repository.BookFilters) ([]models.Book, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) UpdateRanking(ctx context.Context, id string, ranking float64) error {
	args := m.Called(ctx, id, ranking)
	return args.Error(0)
}

func (m *MockBookRepository) HasBookWithTag(ctx context.Context, tagID string) (bool, error) {
	args := m.Called(ctx, tagID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) HasBookWithAuthor(ctx context.Context, authorID string) (bool, error) {
	args := m.Called(ctx, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) HasBookWithEditorial(ctx context.Context, editorialID string) (bool, error) {
	args := m.Called(ctx, editorialID)
	return args.Bool(0), args.Error(1)
}

// MockSavedBookRepository mocks the SavedBookRepository interface
type MockSavedBookRepository struct {
	mock.Mock
}

func (m *MockSavedBookRepository) Toggle(ctx context.Context, userID, bookID string) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedBookRepository) ListBookIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockRankBookRepository mocks the RankBookRepository interface
type MockRankBookRepository struct {
	mock.Mock
}

func (m *MockRankBookRepository) Upsert(ctx context.Context, userID, bookID string, ranking int) (*models.RankBook, error) {
	args := m.Called(ctx, userID, bookID, ranking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RankBook), args.Error(1)
}

func (m *MockRankBookRepository) GetByUserAndBook(ctx context.Context, userID, bookID string) (*models.RankBook, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RankBook), args.Error(1)
}

func (m *MockRankBookRepository) CalculateAverage(ctx context.Context, bookID string) (float64, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(float64), args.Error(1)
}

// MockTagRepository mocks the TagRepository interface
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, t *models.Tag) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) ListActive(ctx context.Context) ([]models.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuthorRepository mocks the AuthorRepository interface
type MockAuthorRepository struct {
	mock.Mock
}

func (m *MockAuthorRepository) Create(ctx context.Context, a *models.Author) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAuthorRepository) Update(ctx context.Context, a *models.Author, replaceInfo, replaceFacts bool) error {
	args := m.Called(ctx, a, replaceInfo, replaceFacts)
	return args.Error(0)
}

func (m *MockAuthorRepository) GetByID(ctx context.Context, id string) (*models.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) GetBySlug(ctx context.Context, slug string) (*models.Author, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Author), args.Error(1)
}

func (m *MockAuthorRepository) ListActive(ctx context.Context) ([]models.Author, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Author), args.Error(1)
}

func (m *MockAuthorRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAuthorRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEditorialRepository mocks the EditorialRepository interface
type MockEditorialRepository struct {
	mock.Mock
}

func (m *MockEditorialRepository) Create(ctx context.Context, e *models.Editorial) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEditorialRepository) Save(ctx context.Context, e *models.Editorial) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEditorialRepository) GetByID(ctx context.Context, id string) (*models.Editorial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Editorial), args.Error(1)
}

func (m *MockEditorialRepository) ListActive(ctx context.Context) ([]models.Editorial, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Editorial), args.Error(1)
}

func (m *MockEditorialRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEditorialRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockResolver mocks the asset resolver client
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolveAccessURLs(ctx context.Context, keys []string) ([]string, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockResolver) UploadFile(ctx context.Context, data []byte, filename, folder string) (*assets.FileRecord, error) {
	args := m.Called(ctx, data, filename, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assets.FileRecord), args.Error(1)
}

func (m *MockResolver) RequestDeletion(fileIDs []string) {
	m.Called(fileIDs)
}
