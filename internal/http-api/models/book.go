package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Name     string `gorm:"size:150;not null" json:"name"`
	Slug     string `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	Synopsis string `gorm:"size:500;not null" json:"synopsis,omitempty"`

	// Aggregate ranking across all users, nullable until first ranked.
	Ranking *float64 `gorm:"type:decimal(3,2)" json:"ranking,omitempty"`

	Image   FileRef `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	Content FileRef `gorm:"embedded;embeddedPrefix:content_" json:"book"`

	AuthorID    string     `gorm:"type:uuid;not null;index" json:"-"`
	Author      *Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	EditorialID string     `gorm:"type:uuid;not null;index" json:"-"`
	Editorial   *Editorial `gorm:"foreignKey:EditorialID" json:"editorial,omitempty"`

	// association
	Tags []Tag `gorm:"many2many:book_tags;constraint:OnDelete:CASCADE;" json:"tags,omitempty"`

	DateUpload time.Time `gorm:"column:date_upload;not null" json:"date_upload"`
	DateUpdate time.Time `gorm:"column:date_update;not null" json:"date_update"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func (Book) TableName() string {
	return "books"
}
