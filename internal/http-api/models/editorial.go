package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Editorial struct {
	ID     string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name   string  `gorm:"column:editorial;size:100;not null" json:"editorial"`
	Slug   string  `gorm:"uniqueIndex;size:150;not null" json:"slug"`
	Image  FileRef `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	Status bool    `gorm:"default:true;not null" json:"status"`
	Date   time.Time `gorm:"not null" json:"date"`
}

func (e *Editorial) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return
}

func (Editorial) TableName() string {
	return "editorials"
}
