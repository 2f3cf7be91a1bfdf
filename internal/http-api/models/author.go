package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TableInfo is one key/value row of an author's info table. Rows get a fresh
// generated id whenever the parent array is submitted (full replace, no merge).
type TableInfo struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	AuthorID string `gorm:"type:uuid;not null;index" json:"-"`
	Key      string `gorm:"size:50;not null" json:"key"`
	Value    string `gorm:"size:100;not null" json:"value"`
	Position int    `gorm:"not null" json:"-"`
}

func (i *TableInfo) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}

func (TableInfo) TableName() string {
	return "author_table_info"
}

type FunFact struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	AuthorID string `gorm:"type:uuid;not null;index" json:"-"`
	Title    string `gorm:"size:100;not null" json:"title"`
	Fact     string `gorm:"size:500;not null" json:"fact"`
	Position int    `gorm:"not null" json:"-"`
}

func (f *FunFact) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}

func (FunFact) TableName() string {
	return "author_fun_facts"
}

type Author struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string  `gorm:"size:200;not null" json:"name"`
	Slug      string  `gorm:"uniqueIndex;size:250;not null" json:"slug"`
	Image     FileRef `gorm:"embedded;embeddedPrefix:image_" json:"image"`
	Biography string  `gorm:"size:1500;not null" json:"biography,omitempty"`

	TableInfo []TableInfo `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"table_info,omitempty"`
	FunFacts  []FunFact   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"fun_facts,omitempty"`

	References []string `gorm:"serializer:json" json:"references,omitempty"`

	// Soft-delete flag: false while at least one book still references
	// the author.
	Status bool `gorm:"default:true;not null" json:"status"`

	DateUpload time.Time `gorm:"column:date_upload;not null" json:"date_upload"`
	DateUpdate time.Time `gorm:"column:date_update;not null" json:"date_update"`
}

func (a *Author) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

func (Author) TableName() string {
	return "authors"
}
