package types

import "context"

// CatalogQuery is the single port into the external catalog store. Every
// component receives it explicitly, there is no resolved-from-container
// instance anywhere. Cancellation and timeouts travel through the context,
// the engine adds no retry or timeout logic of its own.
type CatalogQuery interface {
	// FetchCategoryTree returns the category and its descendant tree, depth
	// bounded by the implementation. ErrNotFound when the id does not
	// resolve.
	FetchCategoryTree(ctx context.Context, categoryId string) (*CategoryNode, error)
	// ListItems returns all published items belonging to any of the given
	// categories, variant prices already calculated for the pricing context.
	ListItems(ctx context.Context, categoryIds []string, pricing PricingContext) ([]CatalogItem, error)
	// ListItemAttributes returns the attribute records for the given items.
	// Items without a record are simply absent from the result.
	ListItemAttributes(ctx context.Context, itemIds []ItemId) ([]ItemAttributes, error)
	// ListActiveTemplates returns the active templates among the given ids.
	ListActiveTemplates(ctx context.Context, templateIds []string) ([]AttributeTemplate, error)
}
