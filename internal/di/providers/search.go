package providers

import (
	"context"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/favouritebooks/favouritebooks-server/internal/config"
	"github.com/favouritebooks/favouritebooks-server/internal/search"
	"github.com/favouritebooks/favouritebooks-server/internal/service"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	index, err := search.Open(cfg.SearchIndexPath(), log)
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewSearchService(storeHandle.Store, indexHandle.Index, log), nil
}

// TriggerSearchReindexIfNeeded rebuilds an empty index when the catalog
// has published books, which covers first boot and a deleted index
// directory. Runs after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	searchService := do.MustInvoke[*service.SearchService](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 {
		return
	}

	ctx := context.Background()
	books, err := storeHandle.ListPublishedBooks(ctx, store.NewPage(1, 1))
	if err != nil || books.TotalItems == 0 {
		return
	}

	log.Info("search index is empty but published books exist, reindexing",
		"book_count", books.TotalItems,
	)

	go func() {
		if err := searchService.Reindex(context.Background()); err != nil {
			log.Error("initial search reindex failed", "error", err)
			return
		}
		count, _ := indexHandle.DocumentCount()
		log.Info("initial search reindex completed", "documents", count)
	}()
}
