package repositories

import (
	"fmt"

	"omareats/internal/models"
)

// DefaultMenu is the restaurant's fixed menu, in display order.
var DefaultMenu = []models.Product{
	{
		ID:          "shawarma-wrap",
		Name:        "Shawarma Wrap",
		Price:       8.50,
		Image:       "/assets/product-shawarma.jpg",
		Description: "Verse wrap met gemarineerd vlees en groenten",
	},
	{
		ID:          "falafel-platter",
		Name:        "Falafel Schotel",
		Price:       12.99,
		Image:       "/assets/product-falafel.jpg",
		Description: "Krokante falafel met hummus en tahini",
	},
	{
		ID:          "mixed-grill",
		Name:        "Mixed Grill",
		Price:       18.99,
		Image:       "/assets/product-grill.jpg",
		Description: "Gegrilde kebabs met kip en lamsvlees",
	},
	{
		ID:          "greek-salad",
		Name:        "Griekse Salade",
		Price:       9.50,
		Image:       "/assets/product-salad.jpg",
		Description: "Verse salade met feta en olijven",
	},
	{
		ID:          "baklava",
		Name:        "Baklava",
		Price:       5.50,
		Image:       "/assets/product-baklava.jpg",
		Description: "Traditioneel zoet gebak met honing",
	},
	{
		ID:          "french-fries",
		Name:        "Friet",
		Price:       4.50,
		Image:       "/assets/product-fries.jpg",
		Description: "Knapperige gouden frietjes",
	},
}

// CatalogRepository is a read-only, in-memory implementation of ProductRepository.
// Products keep the order they were given in.
type CatalogRepository struct {
	products []models.Product
	index    map[string]int
}

// NewCatalogRepository creates a catalog from the given products.
// Later duplicates of an ID are ignored.
func NewCatalogRepository(products []models.Product) *CatalogRepository {
	r := &CatalogRepository{
		products: make([]models.Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, ok := r.index[p.ID]; ok {
			continue
		}
		r.index[p.ID] = len(r.products)
		r.products = append(r.products, p)
	}
	return r
}

// GetAll returns all products in catalog order.
func (r *CatalogRepository) GetAll() ([]models.Product, error) {
	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *CatalogRepository) GetByID(id string) (*models.Product, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
	}
	product := r.products[i]
	return &product, nil
}
