package dto

import (
	"time"

	"libris/internal/http-api/models"
)

// BookQuery carries the list filters. All fields optional.
type BookQuery struct {
	Skip      int    `form:"skip"`
	Limit     int    `form:"limit"`
	Search    string `form:"search"`
	Total     bool   `form:"total"`
	Alphabet  string `form:"alphabet"` // asc | desc
	Ranking   int    `form:"ranking"`  // minimum aggregate ranking, 1..5
	Added     string `form:"added"`    // asc | desc
	Author    string `form:"author"`
	Category  string `form:"category"` // tag id
	Editorial string `form:"editorial"`
	Saved     bool   `form:"saved"`
}

// CreateBookDTO is the metadata part of the multipart upload payload; the
// binary parts ("image", "book") are handled separately.
type CreateBookDTO struct {
	Name      string   `form:"name" binding:"required"`
	Synopsis  string   `form:"synopsis" binding:"required"`
	Tags      []string `form:"tags" binding:"required"`
	Author    string   `form:"author" binding:"required"`
	Editorial string   `form:"editorial" binding:"required"`
}

// UpdateBookDTO allows partial updates; nil means "leave unchanged".
type UpdateBookDTO struct {
	Name      *string  `form:"name"`
	Synopsis  *string  `form:"synopsis"`
	Tags      []string `form:"tags"`
	Author    *string  `form:"author"`
	Editorial *string  `form:"editorial"`
}

type TagRef struct {
	ID    string `json:"id"`
	Label string `json:"tag"`
}

type AuthorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type EditorialRef struct {
	ID   string `json:"id"`
	Name string `json:"editorial"`
}

type FileView struct {
	URL string `json:"url"`
}

// BookListItem is the list projection: no synopsis, references collapsed to
// display fields, image collapsed to its live URL.
type BookListItem struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Slug      string        `json:"slug"`
	Ranking   *float64      `json:"ranking,omitempty"`
	Tags      []TagRef      `json:"tags"`
	Author    *AuthorRef    `json:"author,omitempty"`
	Editorial *EditorialRef `json:"editorial,omitempty"`
	Image     FileView      `json:"image"`
	IsSaved   bool          `json:"is_saved"`
}

type BookListResponse struct {
	Books []BookListItem `json:"books"`
	Total *int64         `json:"total,omitempty"`
}

type BookDetailResponse struct {
	Book    *models.Book `json:"book"`
	Ranking *int         `json:"ranking,omitempty"`
}

func FromModelToListItem(b models.Book, isSaved bool) BookListItem {
	item := BookListItem{
		ID:      b.ID,
		Name:    b.Name,
		Slug:    b.Slug,
		Ranking: b.Ranking,
		Image:   FileView{URL: b.Image.URL},
		IsSaved: isSaved,
		Tags:    make([]TagRef, 0, len(b.Tags)),
	}
	for _, t := range b.Tags {
		item.Tags = append(item.Tags, TagRef{ID: t.ID, Label: t.Label})
	}
	if b.Author != nil {
		item.Author = &AuthorRef{ID: b.Author.ID, Name: b.Author.Name}
	}
	if b.Editorial != nil {
		item.Editorial = &EditorialRef{ID: b.Editorial.ID, Name: b.Editorial.Name}
	}
	return item
}

func (d CreateBookDTO) ToModel(slug string, now time.Time) models.Book {
	return models.Book{
		Name:        d.Name,
		Slug:        slug,
		Synopsis:    d.Synopsis,
		AuthorID:    d.Author,
		EditorialID: d.Editorial,
		DateUpload:  now,
		DateUpdate:  now,
	}
}
