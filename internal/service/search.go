package service

import (
	"context"
	"log/slog"

	"github.com/favouritebooks/favouritebooks-server/internal/search"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

// SearchService answers catalog searches and rebuilds the index from the
// store. Only published books are ever indexed, so results need no
// per-request visibility filtering.
type SearchService struct {
	store  store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(st store.Store, index *search.Index, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  st,
		index:  index,
		logger: logger,
	}
}

// Search runs a query against the published catalog.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	return s.index.Search(ctx, params)
}

// Reindex rebuilds the index from the published catalog. Runs at startup
// and after bulk status changes if the index looks stale.
func (s *SearchService) Reindex(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return err
	}

	// Authors are cached per batch; most pages repeat the same few.
	authors := map[string]string{}

	page := store.NewPage(1, 200)
	total := 0
	for {
		result, err := s.store.ListPublishedBooks(ctx, page)
		if err != nil {
			return err
		}

		docs := make([]*search.Document, 0, len(result.Items))
		for _, book := range result.Items {
			name, ok := authors[book.AuthorID]
			if !ok && book.AuthorID != "" {
				if author, err := s.store.GetUser(ctx, book.AuthorID); err == nil {
					name = author.Username
				}
				authors[book.AuthorID] = name
			}
			docs = append(docs, search.BookToDocument(book, name))
		}

		if err := s.index.IndexBooks(docs); err != nil {
			return err
		}
		total += len(docs)

		if !result.HasNext() {
			break
		}
		page.Number++
	}

	s.logger.Info("search reindex complete", "books", total)
	return nil
}
