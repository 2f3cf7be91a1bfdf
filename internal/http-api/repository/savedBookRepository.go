package repository

import (
	"context"
	"errors"
	"fmt"

	"libris/internal/http-api/models"

	"gorm.io/gorm"
)

type SavedBookRepository interface {
	// Toggle flips the membership of bookID in the user's saved set and
	// reports the resulting state (true = now saved).
	Toggle(ctx context.Context, userID, bookID string) (bool, error)
	// ListBookIDs returns the user's saved set.
	ListBookIDs(ctx context.Context, userID string) ([]string, error)
}

type savedBookRepository struct {
	db *gorm.DB
}

func NewSavedBookRepository(db *gorm.DB) SavedBookRepository {
	return &savedBookRepository{db: db}
}

func (r *savedBookRepository) Toggle(ctx context.Context, userID, bookID string) (bool, error) {
	saved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND book_id = ?", userID, bookID).
			Delete(&models.SavedBook{})
		if res.Error != nil {
			return fmt.Errorf("unsave book: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			return nil // was saved, now removed
		}
		row := &models.SavedBook{UserID: userID, BookID: bookID}
		if err := tx.Create(row).Error; err != nil {
			// Concurrent toggle inserted first; the membership already
			// flipped to saved, report that state.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				saved = true
				return nil
			}
			return fmt.Errorf("save book: %w", err)
		}
		saved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

func (r *savedBookRepository) ListBookIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.SavedBook{}).
		Where("user_id = ?", userID).
		Order("added_at asc").
		Pluck("book_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list saved books: %w", err)
	}
	return ids, nil
}
