package service

import (
	"context"

	"libris/internal/http-api/repository"
)

// EntityKind names a catalog entity that books may reference.
type EntityKind string

const (
	KindTag       EntityKind = "tag"
	KindAuthor    EntityKind = "author"
	KindEditorial EntityKind = "editorial"
)

// DependencyGuard decides the delete strategy for tags, authors and
// editorials: entities still referenced by at least one book are soft-deleted
// (status = false), unreferenced entities are removed entirely.
type DependencyGuard interface {
	HasDependents(ctx context.Context, kind EntityKind, id string) (bool, error)
}

type dependencyGuard struct {
	books repository.BookRepository
}

func NewDependencyGuard(books repository.BookRepository) DependencyGuard {
	return &dependencyGuard{books: books}
}

func (g *dependencyGuard) HasDependents(ctx context.Context, kind EntityKind, id string) (bool, error) {
	switch kind {
	case KindTag:
		return g.books.HasBookWithTag(ctx, id)
	case KindAuthor:
		return g.books.HasBookWithAuthor(ctx, id)
	case KindEditorial:
		return g.books.HasBookWithEditorial(ctx, id)
	}
	return false, nil
}
