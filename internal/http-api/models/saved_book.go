package models

import "time"

// SavedBook is one membership row of a user's saved set. The composite
// unique index makes the toggle race-safe: a duplicate insert fails instead
// of silently doubling a membership.
type SavedBook struct {
	ID      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_book" json:"user_id"`
	BookID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_book;index" json:"book_id"`
	AddedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (SavedBook) TableName() string {
	return "saved_books"
}
