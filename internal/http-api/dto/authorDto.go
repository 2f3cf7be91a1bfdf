package dto

import (
	"time"

	"libris/internal/http-api/models"
)

type TableInfoDTO struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type FunFactDTO struct {
	Title string `json:"title" binding:"required"`
	Fact  string `json:"fact" binding:"required"`
}

// CreateAuthorDTO is the metadata part of the multipart payload. The
// table_info and fun_facts fields arrive as JSON-encoded strings and are
// decoded by the handler before the service sees them.
type CreateAuthorDTO struct {
	Name       string   `form:"name" binding:"required"`
	Biography  string   `form:"biography" binding:"required"`
	References []string `form:"references"`

	TableInfo []TableInfoDTO `form:"-"`
	FunFacts  []FunFactDTO   `form:"-"`
}

// UpdateAuthorDTO allows partial updates; nil means "leave unchanged". A
// non-nil TableInfo or FunFacts fully replaces the stored array.
type UpdateAuthorDTO struct {
	Name       *string  `form:"name"`
	Biography  *string  `form:"biography"`
	References []string `form:"references"`

	TableInfo []TableInfoDTO `form:"-"`
	FunFacts  []FunFactDTO   `form:"-"`
}

// AuthorListItem is the slim list projection.
type AuthorListItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	DateUpload time.Time `json:"date_upload"`
	DateUpdate time.Time `json:"date_update"`
}

func FromModelToAuthorListItem(a models.Author) AuthorListItem {
	return AuthorListItem{
		ID:         a.ID,
		Name:       a.Name,
		Slug:       a.Slug,
		DateUpload: a.DateUpload,
		DateUpdate: a.DateUpdate,
	}
}

func (d CreateAuthorDTO) ToModel(slug string, now time.Time) models.Author {
	a := models.Author{
		Name:       d.Name,
		Slug:       slug,
		Biography:  d.Biography,
		References: d.References,
		Status:     true,
		DateUpload: now,
		DateUpdate: now,
	}
	a.TableInfo = make([]models.TableInfo, 0, len(d.TableInfo))
	for _, item := range d.TableInfo {
		a.TableInfo = append(a.TableInfo, models.TableInfo{Key: item.Key, Value: item.Value})
	}
	a.FunFacts = make([]models.FunFact, 0, len(d.FunFacts))
	for _, fact := range d.FunFacts {
		a.FunFacts = append(a.FunFacts, models.FunFact{Title: fact.Title, Fact: fact.Fact})
	}
	return a
}
