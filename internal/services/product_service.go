package services

import (
	"strings"

	"omareats/internal/models"
	"omareats/internal/repositories"
)

// ProductService handles business logic related to the menu.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// SearchProducts returns the products whose name or description contains
// query, case-insensitively, in catalog order. A blank or whitespace-only
// query matches everything; otherwise surrounding spaces are part of the match.
func (s *ProductService) SearchProducts(query string) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) == "" {
		return products, nil
	}
	q := strings.ToLower(query)

	matches := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}
