// Package catalog holds the read-only list of cable products that RFPs are matched against.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateSKU = errors.New("duplicate sku")
	ErrInvalidItem  = errors.New("invalid catalog item")
)

// Item is a single catalog product.
type Item struct {
	SKU         string `json:"sku" mapstructure:"sku"`
	Description string `json:"description" mapstructure:"description"`
	Voltage     string `json:"voltage" mapstructure:"voltage"`
	Material    string `json:"material" mapstructure:"material"`
	Insulation  string `json:"insulation" mapstructure:"insulation"`
	BasePrice   int64  `json:"basePrice" mapstructure:"basePrice"`
}

// Catalog is an ordered, immutable list of items. It is safe for concurrent use.
type Catalog struct {
	items []Item
	bySKU map[string]int
}

// New validates the items and builds a catalog preserving their order.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		bySKU: make(map[string]int, len(items)),
	}

	for idx, item := range items {
		item.SKU = strings.TrimSpace(item.SKU)
		if item.SKU == "" {
			return nil, fmt.Errorf("item #%d: %w: sku is required", idx, ErrInvalidItem)
		}
		if item.BasePrice <= 0 {
			return nil, fmt.Errorf("item %s: %w: base price must be positive", item.SKU, ErrInvalidItem)
		}
		if _, ok := c.bySKU[item.SKU]; ok {
			return nil, fmt.Errorf("item %s: %w", item.SKU, ErrDuplicateSKU)
		}

		c.bySKU[item.SKU] = len(c.items)
		c.items = append(c.items, item)
	}

	return c, nil
}

// Default returns the reference cable catalog.
func Default() *Catalog {
	c, err := New(defaultItems)
	if err != nil {
		panic(fmt.Sprintf("default catalog is invalid: %s", err))
	}
	return c
}

// Items returns a copy of the catalog items in catalog order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return []Item{}
	}
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// FindBySKU looks an item up by its exact SKU.
func (c *Catalog) FindBySKU(sku string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	idx, ok := c.bySKU[strings.TrimSpace(sku)]
	if !ok {
		return Item{}, false
	}
	return c.items[idx], true
}

// SKUs returns the identifiers in catalog order.
func (c *Catalog) SKUs() []string {
	skus := make([]string, 0, c.Len())
	for _, item := range c.Items() {
		skus = append(skus, item.SKU)
	}
	return skus
}

var defaultItems = []Item{
	{
		SKU:         "CAB-11KV-CU-XLPE",
		Description: "11kV Copper XLPE insulated industrial cable",
		Voltage:     "11kV",
		Material:    "Copper",
		Insulation:  "XLPE",
		BasePrice:   1200,
	},
	{
		SKU:         "CAB-6.6KV-AL-PVC",
		Description: "6.6kV Aluminium PVC cable",
		Voltage:     "6.6kV",
		Material:    "Aluminium",
		Insulation:  "PVC",
		BasePrice:   700,
	},
	{
		SKU:         "CAB-11KV-CU-PVC",
		Description: "11kV Copper PVC insulated cable",
		Voltage:     "11kV",
		Material:    "Copper",
		Insulation:  "PVC",
		BasePrice:   1000,
	},
	{
		SKU:         "CAB-33KV-CU-XLPE",
		Description: "33kV Copper XLPE insulated high voltage cable",
		Voltage:     "33kV",
		Material:    "Copper",
		Insulation:  "XLPE",
		BasePrice:   2500,
	},
	{
		SKU:         "CAB-6.6KV-CU-XLPE",
		Description: "6.6kV Copper XLPE insulated cable",
		Voltage:     "6.6kV",
		Material:    "Copper",
		Insulation:  "XLPE",
		BasePrice:   950,
	},
	{
		SKU:         "CAB-11KV-AL-XLPE",
		Description: "11kV Aluminium XLPE insulated cable",
		Voltage:     "11kV",
		Material:    "Aluminium",
		Insulation:  "XLPE",
		BasePrice:   850,
	},
	{
		SKU:         "CAB-22KV-CU-XLPE",
		Description: "22kV Copper XLPE insulated cable",
		Voltage:     "22kV",
		Material:    "Copper",
		Insulation:  "XLPE",
		BasePrice:   1800,
	},
	{
		SKU:         "CAB-LV-CU-PVC",
		Description: "Low voltage Copper PVC insulated cable",
		Voltage:     "LV",
		Material:    "Copper",
		Insulation:  "PVC",
		BasePrice:   450,
	},
}
