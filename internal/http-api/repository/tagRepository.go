package repository

import (
	"context"
	"fmt"

	"libris/internal/http-api/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	Create(ctx context.Context, t *models.Tag) error
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	ListActive(ctx context.Context) ([]models.Tag, error)
	SoftDelete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, t *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	var t models.Tag
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepository) ListActive(ctx context.Context) ([]models.Tag, error) {
	var list []models.Tag
	err := r.db.WithContext(ctx).
		Where("status = ?", true).
		Order("tag asc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return list, nil
}

func (r *tagRepository) SoftDelete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Model(&models.Tag{}).
		Where("id = ?", id).
		Update("status", false).Error; err != nil {
		return fmt.Errorf("soft delete tag: %w", err)
	}
	return nil
}

func (r *tagRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Tag{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
