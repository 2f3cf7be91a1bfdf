package repository

import (
	"context"
	"fmt"

	"libris/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RankBookRepository interface {
	// Upsert writes the user's rating for a book in one atomic statement:
	// created on first rank, overwritten on re-rank.
	Upsert(ctx context.Context, userID, bookID string, ranking int) (*models.RankBook, error)
	GetByUserAndBook(ctx context.Context, userID, bookID string) (*models.RankBook, error)
	CalculateAverage(ctx context.Context, bookID string) (float64, error)
}

type rankBookRepository struct {
	db *gorm.DB
}

func NewRankBookRepository(db *gorm.DB) RankBookRepository {
	return &rankBookRepository{db: db}
}

func (r *rankBookRepository) Upsert(ctx context.Context, userID, bookID string, ranking int) (*models.RankBook, error) {
	rank := &models.RankBook{
		UserID:  userID,
		BookID:  bookID,
		Ranking: ranking,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"ranking", "updated_at"}),
	}).Create(rank).Error
	if err != nil {
		return nil, fmt.Errorf("upsert ranking: %w", err)
	}
	return r.GetByUserAndBook(ctx, userID, bookID)
}

func (r *rankBookRepository) GetByUserAndBook(ctx context.Context, userID, bookID string) (*models.RankBook, error) {
	var rank models.RankBook
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&rank).Error
	if err != nil {
		return nil, err
	}
	return &rank, nil
}

// CalculateAverage computes the aggregate ranking stored on the book row.
func (r *rankBookRepository) CalculateAverage(ctx context.Context, bookID string) (float64, error) {
	var avg struct {
		Average float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.RankBook{}).
		Select("COALESCE(AVG(ranking), 0) as average").
		Where("book_id = ?", bookID).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("average ranking: %w", err)
	}
	return avg.Average, nil
}
