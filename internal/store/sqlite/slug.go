package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/favouritebooks/favouritebooks-server/internal/slug"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

// slugAttempts bounds the disambiguation loop. The UNIQUE constraint on the
// slug column is the backstop for races this loop cannot see.
const slugAttempts = 100

// resolveSlug derives a unique slug for source inside the given transaction.
// excludeID skips the entity's own row so re-saving with an unchanged title
// keeps the existing slug. Returns store.ErrEmptySlug when the source text
// normalizes to nothing.
func resolveSlug(ctx context.Context, tx *sql.Tx, table, source, excludeID string) (string, error) {
	base := slug.Make(source)
	if base == "" {
		return "", store.ErrEmptySlug
	}

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE slug = ? AND id != ?)`, table)

	for i := range slugAttempts {
		candidate := slug.WithSuffix(base, i)

		var taken int
		if err := tx.QueryRowContext(ctx, query, candidate, excludeID).Scan(&taken); err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if taken == 0 {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("could not resolve unique slug for %q after %d attempts", source, slugAttempts)
}
