package hierarchy

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vintermark/facet-engine/pkg/types"
)

const (
	// MaxDepth bounds how far below the root the traversal expands.
	MaxDepth = 10
	// MaxCategories bounds the total number of collected ids.
	MaxCategories = 1000
)

// Resolver expands one category id into itself plus all descendant ids.
type Resolver struct {
	catalog types.CatalogQuery
	logger  zerolog.Logger
}

func NewResolver(catalog types.CatalogQuery, logger zerolog.Logger) *Resolver {
	return &Resolver{catalog: catalog, logger: logger}
}

// Expand returns the deduplicated id set of the category and its descendants.
// When the category cannot be found or the fetch fails it degrades to a
// single-element set holding only the requested id, so one broken hierarchy
// never fails a whole aggregation.
func (r *Resolver) Expand(ctx context.Context, categoryId string) map[string]struct{} {
	collected := map[string]struct{}{categoryId: {}}

	tree, err := r.catalog.FetchCategoryTree(ctx, categoryId)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("categoryId", categoryId).
			Msg("category tree fetch failed, using category without hierarchy")
		return collected
	}
	if tree == nil {
		return collected
	}

	type entry struct {
		node  *types.CategoryNode
		depth int
	}
	queue := []entry{{node: tree, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.node == nil {
			continue
		}
		collected[current.node.Id] = struct{}{}
		// Both limits stop further expansion, collected ids are kept.
		if current.depth >= MaxDepth || len(collected) >= MaxCategories {
			continue
		}
		for _, child := range current.node.Children {
			if len(collected) >= MaxCategories {
				break
			}
			if child == nil {
				continue
			}
			if _, seen := collected[child.Id]; seen {
				continue
			}
			collected[child.Id] = struct{}{}
			queue = append(queue, entry{node: child, depth: current.depth + 1})
		}
	}
	return collected
}

// ExpandList is Expand with the result flattened for port calls.
func (r *Resolver) ExpandList(ctx context.Context, categoryId string) []string {
	set := r.Expand(ctx, categoryId)
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
