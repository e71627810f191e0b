package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vintermark/facet-engine/pkg/types"
)

// Memory is an in-memory catalog query port. The service binary loads it
// from fixture files and the test suites use it as the port double. All
// reads return copies or freshly built trees, callers never see shared
// mutable state.
type Memory struct {
	mu         sync.RWMutex
	names      map[string]string
	children   map[string][]string
	known      map[string]struct{}
	items      []types.CatalogItem
	attributes map[types.ItemId]types.ItemAttributes
	templates  map[string]types.AttributeTemplate
}

func NewMemory() *Memory {
	return &Memory{
		names:      map[string]string{},
		children:   map[string][]string{},
		known:      map[string]struct{}{},
		attributes: map[types.ItemId]types.ItemAttributes{},
		templates:  map[string]types.AttributeTemplate{},
	}
}

// AddCategory registers a category under an optional parent. A generated id
// is returned when none is given.
func (m *Memory) AddCategory(id, name, parentId string) string {
	if id == "" {
		id = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.known[id] = struct{}{}
	m.names[id] = name
	if parentId != "" {
		m.known[parentId] = struct{}{}
		m.children[parentId] = append(m.children[parentId], id)
	}
	return id
}

func (m *Memory) AddItem(item types.CatalogItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
}

func (m *Memory) SetItemAttributes(record types.ItemAttributes) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attributes[record.ItemId] = record
}

func (m *Memory) AddTemplate(template types.AttributeTemplate) {
	if template.Id == "" {
		template.Id = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[template.Id] = template
}

const treeDepthLimit = 10

func (m *Memory) FetchCategoryTree(ctx context.Context, categoryId string) (*types.CategoryNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.known[categoryId]; !ok {
		return nil, fmt.Errorf("category %q: %w", categoryId, types.ErrNotFound)
	}
	visited := map[string]struct{}{}
	return m.buildNode(categoryId, 0, visited), nil
}

// buildNode assembles the subtree depth-first. The visited set keeps cyclic
// fixture data from recursing forever.
func (m *Memory) buildNode(categoryId string, depth int, visited map[string]struct{}) *types.CategoryNode {
	node := &types.CategoryNode{Id: categoryId, Name: m.names[categoryId]}
	visited[categoryId] = struct{}{}
	if depth >= treeDepthLimit {
		return node
	}
	for _, childId := range m.children[categoryId] {
		if _, seen := visited[childId]; seen {
			continue
		}
		node.Children = append(node.Children, m.buildNode(childId, depth+1, visited))
	}
	return node
}

func (m *Memory) ListItems(ctx context.Context, categoryIds []string, _ types.PricingContext) ([]types.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scope := make(map[string]struct{}, len(categoryIds))
	for _, id := range categoryIds {
		scope[id] = struct{}{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]types.CatalogItem, 0, len(m.items))
	for _, item := range m.items {
		if item.Published && item.InCategories(scope) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (m *Memory) ListItemAttributes(ctx context.Context, itemIds []types.ItemId) ([]types.ItemAttributes, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]types.ItemAttributes, 0, len(itemIds))
	for _, id := range itemIds {
		if record, ok := m.attributes[id]; ok {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *Memory) ListActiveTemplates(ctx context.Context, templateIds []string) ([]types.AttributeTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	templates := make([]types.AttributeTemplate, 0, len(templateIds))
	for _, id := range templateIds {
		if template, ok := m.templates[id]; ok && template.Active {
			templates = append(templates, template)
		}
	}
	return templates, nil
}
