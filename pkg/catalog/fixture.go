package catalog

import (
	"fmt"
	"os"

	"github.com/vintermark/facet-engine/pkg/common/jsoncompat"
	"github.com/vintermark/facet-engine/pkg/types"
)

// Fixture is the on-disk shape the service binary loads at startup.
type Fixture struct {
	Categories []FixtureCategory         `json:"categories"`
	Items      []types.CatalogItem       `json:"items"`
	Attributes []types.ItemAttributes    `json:"attributes"`
	Templates  []types.AttributeTemplate `json:"templates"`
}

type FixtureCategory struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

// LoadFixture reads a fixture file into the in-memory catalog.
func (m *Memory) LoadFixture(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var fixture Fixture
	if err := jsoncompat.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("decode fixture %s: %w", path, err)
	}
	for _, category := range fixture.Categories {
		m.AddCategory(category.Id, category.Name, category.Parent)
	}
	for _, item := range fixture.Items {
		m.AddItem(item)
	}
	for _, record := range fixture.Attributes {
		m.SetItemAttributes(record)
	}
	for _, template := range fixture.Templates {
		m.AddTemplate(template)
	}
	return nil
}
