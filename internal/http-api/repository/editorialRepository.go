package repository

import (
	"context"
	"fmt"

	"libris/internal/http-api/models"

	"gorm.io/gorm"
)

type EditorialRepository interface {
	Create(ctx context.Context, e *models.Editorial) error
	Save(ctx context.Context, e *models.Editorial) error
	GetByID(ctx context.Context, id string) (*models.Editorial, error)
	ListActive(ctx context.Context) ([]models.Editorial, error)
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type editorialRepository struct {
	db *gorm.DB
}

func NewEditorialRepository(db *gorm.DB) EditorialRepository {
	return &editorialRepository{db: db}
}

func (r *editorialRepository) Create(ctx context.Context, e *models.Editorial) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create editorial: %w", err)
	}
	return nil
}

func (r *editorialRepository) Save(ctx context.Context, e *models.Editorial) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("update editorial: %w", err)
	}
	return nil
}

func (r *editorialRepository) GetByID(ctx context.Context, id string) (*models.Editorial, error) {
	var e models.Editorial
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *editorialRepository) ListActive(ctx context.Context) ([]models.Editorial, error) {
	var list []models.Editorial
	err := r.db.WithContext(ctx).
		Where("status = ?", true).
		Order("editorial asc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list editorials: %w", err)
	}
	return list, nil
}

func (r *editorialRepository) SoftDelete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Model(&models.Editorial{}).
		Where("id = ?", id).
		Update("status", false).Error; err != nil {
		return fmt.Errorf("soft delete editorial: %w", err)
	}
	return nil
}

func (r *editorialRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Editorial{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete editorial: %w", err)
	}
	return nil
}
