package models_test

import (
	"encoding/json"
	"testing"

	"omareats/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_EmptyTotals(t *testing.T) {
	var cart models.Cart

	assert.Equal(t, 0, cart.ItemCount())
	assert.True(t, cart.Total().Equal(decimal.Zero))
	assert.Equal(t, "0.00", cart.Total().StringFixed(2))
}

func TestCart_TotalsForOneLine(t *testing.T) {
	cart := models.Cart{
		{ID: "shawarma-wrap", Name: "Shawarma Wrap", Price: 8.50, Quantity: 2},
	}

	assert.Equal(t, 2, cart.ItemCount())
	assert.Equal(t, "17.00", cart.Total().StringFixed(2))
}

func TestCart_TotalHasNoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 drifts in float64; the decimal total must not.
	cart := models.Cart{
		{ID: "a", Price: 0.1, Quantity: 1},
		{ID: "b", Price: 0.2, Quantity: 1},
		{ID: "c", Price: 12.99, Quantity: 3},
	}

	assert.Equal(t, "39.27", cart.Total().StringFixed(2))
	assert.Equal(t, 39.27, cart.Total().InexactFloat64())
}

func TestCart_Find(t *testing.T) {
	cart := models.Cart{{ID: "baklava", Quantity: 1}, {ID: "french-fries", Quantity: 2}}

	assert.Equal(t, 1, cart.Find("french-fries"))
	assert.Equal(t, -1, cart.Find("mixed-grill"))
}

func TestCart_CloneIsIndependent(t *testing.T) {
	cart := models.Cart{{ID: "baklava", Quantity: 1}}
	clone := cart.Clone()
	clone[0].Quantity = 5

	assert.Equal(t, 1, cart[0].Quantity)
}

func TestCartLine_JSONShape(t *testing.T) {
	line := models.NewCartLine(models.Product{
		ID: "baklava", Name: "Baklava", Price: 5.50, Image: "/assets/product-baklava.jpg",
	})

	raw, err := json.Marshal(line)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"baklava","name":"Baklava","price":5.5,"image":"/assets/product-baklava.jpg","quantity":1}`, string(raw))
}
