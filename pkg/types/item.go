package types

// Variant is one sellable variant of a catalog item with its price already
// calculated for the requested pricing context, in integer minor units.
// A calculated price of zero means "no price data", not free.
type Variant struct {
	Sku             string `json:"sku,omitempty"`
	CalculatedPrice int    `json:"calculatedPrice"`
}

// CatalogItem is a read-only snapshot supplied by the catalog query port.
type CatalogItem struct {
	Id         ItemId    `json:"id"`
	Sku        string    `json:"sku,omitempty"`
	Title      string    `json:"title,omitempty"`
	Categories []string  `json:"categories"`
	Published  bool      `json:"published"`
	Variants   []Variant `json:"variants"`
}

func (c *CatalogItem) InCategories(ids map[string]struct{}) bool {
	for _, categoryId := range c.Categories {
		if _, ok := ids[categoryId]; ok {
			return true
		}
	}
	return false
}

// PositivePrices returns the calculated prices of all variants that carry
// actual price data.
func (c *CatalogItem) PositivePrices() []int {
	prices := make([]int, 0, len(c.Variants))
	for _, v := range c.Variants {
		if v.CalculatedPrice > 0 {
			prices = append(prices, v.CalculatedPrice)
		}
	}
	return prices
}

// ItemAttributes is the per-item attribute record: one template reference and
// the raw attribute values keyed by attribute key.
type ItemAttributes struct {
	ItemId     ItemId                    `json:"itemId"`
	TemplateId string                    `json:"templateId"`
	Values     map[string]AttributeValue `json:"values"`
}

// Value returns the attribute value for key, or the none value when the item
// carries no data for it.
func (a *ItemAttributes) Value(key string) AttributeValue {
	if a.Values == nil {
		return AttributeValue{}
	}
	return a.Values[key]
}

func (a *ItemAttributes) HasValue(key string) bool {
	return !a.Value(key).IsZero()
}
