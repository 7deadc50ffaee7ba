// Package seed loads the sample catalog the store starts with.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/horizonte/storefront/internal/domain"
	"github.com/horizonte/storefront/internal/repository"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the decoded seed document.
type Catalog struct {
	Categories []domain.Category
	Products   []domain.Product
}

type document struct {
	Categories []categoryDoc `yaml:"categories"`
	Products   []productDoc  `yaml:"products"`
}

type categoryDoc struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Order int    `yaml:"order"`
}

type productDoc struct {
	ID            string     `yaml:"id"`
	Name          string     `yaml:"name"`
	Description   string     `yaml:"description"`
	Category      string     `yaml:"category"`
	BasePrice     float64    `yaml:"base_price"`
	Image         string     `yaml:"image"`
	Promotion     bool       `yaml:"promotion"`
	Featured      bool       `yaml:"featured"`
	Sizes         []string   `yaml:"sizes"`
	Toppings      []string   `yaml:"toppings"`
	ToppingGroups []groupDoc `yaml:"topping_groups"`
}

type groupDoc struct {
	ID            string    `yaml:"id"`
	Title         string    `yaml:"title"`
	Description   string    `yaml:"description"`
	MaxSelections int       `yaml:"max_selections"`
	Required      bool      `yaml:"required"`
	Items         []itemDoc `yaml:"items"`
}

type itemDoc struct {
	Name  string   `yaml:"name"`
	Price *float64 `yaml:"price"`
}

// Default returns the embedded sample catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog. Every product must reference a
// declared category and only use recognized size tiers.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	cat := &Catalog{
		Categories: make([]domain.Category, 0, len(doc.Categories)),
		Products:   make([]domain.Product, 0, len(doc.Products)),
	}

	known := make(map[string]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("category %q: id and name are required", c.ID)
		}
		if known[c.ID] {
			return nil, fmt.Errorf("category %q declared twice", c.ID)
		}
		known[c.ID] = true
		cat.Categories = append(cat.Categories, domain.Category{ID: c.ID, Name: c.Name, Order: c.Order})
	}

	seen := make(map[string]bool, len(doc.Products))
	for _, p := range doc.Products {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("product %q: id and name are required", p.ID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("product %q declared twice", p.ID)
		}
		seen[p.ID] = true
		if !known[p.Category] {
			return nil, fmt.Errorf("product %q: unknown category %q", p.ID, p.Category)
		}
		for _, s := range p.Sizes {
			if !domain.IsKnownSize(s) {
				return nil, fmt.Errorf("product %q: unknown size %q", p.ID, s)
			}
		}

		groups, err := encodeGroups(p.ToppingGroups)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", p.ID, err)
		}

		cat.Products = append(cat.Products, domain.Product{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			CategoryID:    p.Category,
			BasePrice:     decimal.NewFromFloat(p.BasePrice).Round(2),
			Image:         p.Image,
			IsPromotion:   p.Promotion,
			IsFeatured:    p.Featured,
			Sizes:         p.Sizes,
			Toppings:      p.Toppings,
			ToppingGroups: groups,
		})
	}

	return cat, nil
}

// encodeGroups serializes the YAML groups into the JSON form stored on
// products.
func encodeGroups(docs []groupDoc) (string, error) {
	if len(docs) == 0 {
		return "", nil
	}

	groups := make([]domain.ToppingGroup, 0, len(docs))
	for _, g := range docs {
		items := make([]domain.ToppingItem, 0, len(g.Items))
		for _, it := range g.Items {
			item := domain.ToppingItem{Name: it.Name}
			if it.Price != nil {
				price := decimal.NewFromFloat(*it.Price).Round(2)
				item.Price = &price
			}
			items = append(items, item)
		}
		groups = append(groups, domain.ToppingGroup{
			ID:            g.ID,
			Title:         g.Title,
			Description:   g.Description,
			MaxSelections: g.MaxSelections,
			Required:      g.Required,
			Items:         items,
		})
	}

	data, err := json.Marshal(groups)
	if err != nil {
		return "", fmt.Errorf("encode topping groups: %w", err)
	}
	return string(data), nil
}

// Apply writes the catalog into repo.
func Apply(ctx context.Context, repo repository.CatalogRepository, cat *Catalog) error {
	for i := range cat.Categories {
		if err := repo.CreateCategory(ctx, &cat.Categories[i]); err != nil {
			return fmt.Errorf("seed category %s: %w", cat.Categories[i].ID, err)
		}
	}
	for i := range cat.Products {
		if err := repo.CreateProduct(ctx, &cat.Products[i]); err != nil {
			return fmt.Errorf("seed product %s: %w", cat.Products[i].ID, err)
		}
	}
	return nil
}
