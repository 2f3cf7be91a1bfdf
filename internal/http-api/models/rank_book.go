package models

import "time"

// RankBook holds one user's rating for one book. Keyed by (user, book) so a
// user keeps an independent rating per book; re-ranking the same book
// overwrites in place.
type RankBook struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_rank_user_book" json:"user_id"`
	BookID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_rank_user_book;index" json:"book_id"`
	Ranking   int       `gorm:"not null;check:ranking >= 1 AND ranking <= 5" json:"ranking"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"book,omitempty"`
}

func (RankBook) TableName() string {
	return "rank_books"
}
