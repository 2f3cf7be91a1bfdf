package repository

import (
	"context"
	"fmt"
	"strings"

	"libris/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookFilters narrows and orders a book listing. Zero values mean "not set".
type BookFilters struct {
	Search      string
	MinRanking  int
	AuthorID    string
	TagID       string
	EditorialID string
	SavedIDs    []string // restrict to these book ids
	Skip        int
	Limit       int
	Alphabet    string // "asc" | "desc"
	Added       string // "asc" | "desc", secondary sort after Alphabet
}

type BookRepository interface {
	Create(ctx context.Context, b *models.Book, tagIDs []string) error
	Save(ctx context.Context, b *models.Book) error
	ReplaceTags(ctx context.Context, b *models.Book, tagIDs []string) error
	GetByID(ctx context.Context, id string) (*models.Book, error)
	GetBySlug(ctx context.Context, slug string) (*models.Book, error)
	List(ctx context.Context, f BookFilters) ([]models.Book, error)
	CountAll(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
	UpdateRanking(ctx context.Context, id string, ranking float64) error

	// Dependency checks used by the delete guard
	HasBookWithTag(ctx context.Context, tagID string) (bool, error)
	HasBookWithAuthor(ctx context.Context, authorID string) (bool, error)
	HasBookWithEditorial(ctx context.Context, editorialID string) (bool, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book, tagIDs []string) error {
	b.Tags = make([]models.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		b.Tags = append(b.Tags, models.Tag{ID: id})
	}
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *bookRepository) Save(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Omit("Tags", "Author", "Editorial").Save(b).Error; err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

func (r *bookRepository) ReplaceTags(ctx context.Context, b *models.Book, tagIDs []string) error {
	tags := make([]models.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, models.Tag{ID: id})
	}
	if err := r.db.WithContext(ctx).Model(b).Association("Tags").Replace(&tags); err != nil {
		return fmt.Errorf("replace book tags: %w", err)
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBySlug loads the full detail view: tags, author (name and slug only),
// and the editorial with its own image reference.
func (r *bookRepository) GetBySlug(ctx context.Context, slug string) (*models.Book, error) {
	var b models.Book
	err := r.db.WithContext(ctx).
		Preload("Tags", "status = ?", true).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "slug")
		}).
		Preload("Editorial").
		First(&b, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List fetches the list view: synopsis projected out, references resolved in
// one batched preload per collection.
func (r *bookRepository) List(ctx context.Context, f BookFilters) ([]models.Book, error) {
	var list []models.Book

	q := r.db.WithContext(ctx).Model(&models.Book{}).Omit("synopsis")

	if f.Search != "" {
		p := "%" + f.Search + "%"
		q = q.Where("(name ILIKE ? OR synopsis ILIKE ?)", p, p)
	}
	if f.MinRanking > 0 {
		q = q.Where("ranking >= ?", f.MinRanking)
	}
	if f.AuthorID != "" {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.EditorialID != "" {
		q = q.Where("editorial_id = ?", f.EditorialID)
	}
	if f.TagID != "" {
		q = q.Where("id IN (SELECT book_id FROM book_tags WHERE tag_id = ?)", f.TagID)
	}
	if f.SavedIDs != nil {
		q = q.Where("id IN ?", f.SavedIDs)
	}

	// Alphabetical sort is primary; recency is layered on as a secondary
	// key instead of replacing it.
	orders := make([]string, 0, 2)
	if f.Alphabet != "" {
		orders = append(orders, "name "+sortDirection(f.Alphabet))
	}
	if f.Added != "" {
		orders = append(orders, "date_upload "+sortDirection(f.Added))
	}
	if len(orders) > 0 {
		q = q.Order(strings.Join(orders, ", "))
	}

	if f.Skip > 0 {
		q = q.Offset(f.Skip)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	err := q.
		Preload("Tags", "status = ?", true).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Editorial", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "editorial")
		}).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return list, nil
}

func sortDirection(s string) string {
	if s == "desc" {
		return "desc"
	}
	return "asc"
}

// CountAll counts the whole collection, ignoring active filters.
func (r *bookRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}

// Delete removes the book id from every user's saved set and rankings, then
// hard-deletes the row. Sequential inside one transaction; books have no
// soft-delete path.
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.SavedBook{}).Error; err != nil {
			return fmt.Errorf("clean saved sets: %w", err)
		}
		if err := tx.Where("book_id = ?", id).Delete(&models.RankBook{}).Error; err != nil {
			return fmt.Errorf("clean rankings: %w", err)
		}
		if err := tx.Select(clause.Associations).Delete(&models.Book{ID: id}).Error; err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		return nil
	})
}

func (r *bookRepository) UpdateRanking(ctx context.Context, id string, ranking float64) error {
	if err := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", id).
		Update("ranking", ranking).Error; err != nil {
		return fmt.Errorf("update book ranking: %w", err)
	}
	return nil
}

func (r *bookRepository) HasBookWithTag(ctx context.Context, tagID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("book_tags").
		Where("tag_id = ?", tagID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookRepository) HasBookWithAuthor(ctx context.Context, authorID string) (bool, error) {
	return r.hasBookWhere(ctx, "author_id = ?", authorID)
}

func (r *bookRepository) HasBookWithEditorial(ctx context.Context, editorialID string) (bool, error) {
	return r.hasBookWhere(ctx, "editorial_id = ?", editorialID)
}

func (r *bookRepository) hasBookWhere(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where(query, arg).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
