package repository

import (
	"context"
	"fmt"

	"libris/internal/http-api/models"

	"gorm.io/gorm"
)

type AuthorRepository interface {
	Create(ctx context.Context, a *models.Author) error
	// Update saves the author row and, when the corresponding flag is set,
	// fully replaces the table_info / fun_facts arrays (fresh sub-ids, no
	// merge with the stored rows).
	Update(ctx context.Context, a *models.Author, replaceInfo, replaceFacts bool) error
	GetByID(ctx context.Context, id string) (*models.Author, error)
	GetBySlug(ctx context.Context, slug string) (*models.Author, error)
	ListActive(ctx context.Context) ([]models.Author, error)
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type authorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *models.Author) error {
	for i := range a.TableInfo {
		a.TableInfo[i].Position = i
	}
	for i := range a.FunFacts {
		a.FunFacts[i].Position = i
	}
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

func (r *authorRepository) Update(ctx context.Context, a *models.Author, replaceInfo, replaceFacts bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("TableInfo", "FunFacts").Save(a).Error; err != nil {
			return fmt.Errorf("update author: %w", err)
		}
		if replaceInfo {
			if err := tx.Where("author_id = ?", a.ID).Delete(&models.TableInfo{}).Error; err != nil {
				return fmt.Errorf("clear table info: %w", err)
			}
			for i := range a.TableInfo {
				a.TableInfo[i].ID = "" // regenerate sub-ids
				a.TableInfo[i].AuthorID = a.ID
				a.TableInfo[i].Position = i
			}
			if len(a.TableInfo) > 0 {
				if err := tx.Create(&a.TableInfo).Error; err != nil {
					return fmt.Errorf("replace table info: %w", err)
				}
			}
		}
		if replaceFacts {
			if err := tx.Where("author_id = ?", a.ID).Delete(&models.FunFact{}).Error; err != nil {
				return fmt.Errorf("clear fun facts: %w", err)
			}
			for i := range a.FunFacts {
				a.FunFacts[i].ID = ""
				a.FunFacts[i].AuthorID = a.ID
				a.FunFacts[i].Position = i
			}
			if len(a.FunFacts) > 0 {
				if err := tx.Create(&a.FunFacts).Error; err != nil {
					return fmt.Errorf("replace fun facts: %w", err)
				}
			}
		}
		return nil
	})
}

func (r *authorRepository) GetByID(ctx context.Context, id string) (*models.Author, error) {
	var a models.Author
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *authorRepository) GetBySlug(ctx context.Context, slug string) (*models.Author, error) {
	var a models.Author
	err := r.db.WithContext(ctx).
		Preload("TableInfo", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("FunFacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&a, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListActive returns the slim list projection, alphabetically.
func (r *authorRepository) ListActive(ctx context.Context) ([]models.Author, error) {
	var list []models.Author
	err := r.db.WithContext(ctx).
		Select("id", "name", "slug", "date_upload", "date_update").
		Where("status = ?", true).
		Order("name asc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return list, nil
}

func (r *authorRepository) SoftDelete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Model(&models.Author{}).
		Where("id = ?", id).
		Update("status", false).Error; err != nil {
		return fmt.Errorf("soft delete author: %w", err)
	}
	return nil
}

func (r *authorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&models.TableInfo{}).Error; err != nil {
			return fmt.Errorf("delete table info: %w", err)
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.FunFact{}).Error; err != nil {
			return fmt.Errorf("delete fun facts: %w", err)
		}
		if err := tx.Delete(&models.Author{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete author: %w", err)
		}
		return nil
	})
}
