package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tag struct {
	ID     string    `gorm:"primaryKey;type:uuid" json:"id"`
	Label  string    `gorm:"column:tag;size:100;not null" json:"tag"`
	Slug   string    `gorm:"uniqueIndex;size:150;not null" json:"slug"`
	Status bool      `gorm:"default:true;not null" json:"status"`
	Date   time.Time `gorm:"not null" json:"date"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}

func (Tag) TableName() string {
	return "tags"
}
