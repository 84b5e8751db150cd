package services_test

import (
	"fmt"
	"testing"

	"omareats/internal/models"
	"omareats/internal/repositories"
	"omareats/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: "shawarma-wrap", Name: "Shawarma Wrap", Price: 8.50},
		{ID: "baklava", Name: "Baklava", Price: 5.50},
	}
	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: "baklava", Name: "Baklava", Price: 5.50}

	mockRepo.On("GetByID", "baklava").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("baklava")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", "kebab").Return(nil, fmt.Errorf("product kebab: %w", repositories.ErrProductNotFound)).Once()
	product, err = service.GetProductByID("kebab")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_SearchProducts(t *testing.T) {
	service := services.NewProductService(repositories.NewCatalogRepository(repositories.DefaultMenu))

	ids := func(products []models.Product) []string {
		out := make([]string, 0, len(products))
		for _, p := range products {
			out = append(out, p.ID)
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"blank query returns the full menu", "", []string{"shawarma-wrap", "falafel-platter", "mixed-grill", "greek-salad", "baklava", "french-fries"}},
		{"matches names case-insensitively", "FALAFEL", []string{"falafel-platter"}},
		{"whitespace-only query returns the full menu", "   ", []string{"shawarma-wrap", "falafel-platter", "mixed-grill", "greek-salad", "baklava", "french-fries"}},
		{"surrounding whitespace is part of the query", " baklava ", []string{}},
		{"inner spaces match across words", "wrap met", []string{"shawarma-wrap"}},
		{"no match", "sushi", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := service.SearchProducts(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(products))
		})
	}
}

func TestProductService_SearchProductsMatchesDescription(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetAll").Return([]models.Product{
		{ID: "a", Name: "Wrap", Description: "Met knoflooksaus"},
		{ID: "b", Name: "Salade", Description: "Fris en licht"},
	}, nil).Once()

	products, err := service.SearchProducts("knoflook")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "a", products[0].ID)
}

func TestProductService_SearchProductsRepositoryError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetAll").Return(nil, fmt.Errorf("catalog unavailable")).Once()

	_, err := service.SearchProducts("wrap")
	assert.ErrorContains(t, err, "catalog unavailable")
}
