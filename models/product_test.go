package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullProductMap() map[string]any {
	return map[string]any{
		"id":           "prod-001",
		"name":         "Microfiber Cleaning Kit",
		"description":  "12-piece kit",
		"product_type": "physical",
		"status":       "active",
		"category":     map[string]any{"id": "cat-1", "name": "Cleaning"},
		"subcategories": []any{
			map[string]any{"id": "sub-1", "name": "Supplies"},
		},
		"tags":                []any{"cleaning", "kit"},
		"price":               100.0,
		"discount_price":      80.0,
		"currency":            "USD",
		"sku":                 "MFK-12",
		"stock_quantity":      25,
		"is_unlimited":        false,
		"images":              []any{"https://cdn.prbal.app/p1.jpg"},
		"specifications":      map[string]any{"pieces": 12.0},
		"provider":            "prov-9",
		"variants":            []any{},
		"is_featured":         true,
		"is_digital_delivery": false,
		"min_order_quantity":  1,
		"max_order_quantity":  10,
		"rating":              4.5,
		"review_count":        12,
		"sales_count":         40,
		"created_at":          "2026-07-01T00:00:00Z",
		"updated_at":          "2026-07-15T00:00:00Z",
	}
}

func TestProductFromMap_full(t *testing.T) {
	p, err := ProductFromMap(fullProductMap())
	require.NoError(t, err)

	assert.Equal(t, "prod-001", p.ID)
	assert.Equal(t, ProductTypePhysical, p.Type)
	assert.Equal(t, ProductStatusActive, p.Status)
	assert.Equal(t, []string{"cleaning", "kit"}, p.Tags)
	require.NotNil(t, p.StockQuantity)
	assert.Equal(t, 25, *p.StockQuantity)
	assert.True(t, p.IsFeatured)
}

func TestProduct_roundTrip(t *testing.T) {
	first, err := ProductFromMap(fullProductMap())
	require.NoError(t, err)
	second, err := ProductFromMap(first.ToMap())
	require.NoError(t, err)
	require.Equal(t, first, second)

	minimal, err := ProductFromMap(map[string]any{"id": "prod-min", "name": "Thing"})
	require.NoError(t, err)
	again, err := ProductFromMap(minimal.ToMap())
	require.NoError(t, err)
	require.Equal(t, minimal, again)

	m := minimal.ToMap()
	for _, key := range []string{"discount_price", "sku", "stock_quantity", "provider", "category"} {
		_, present := m[key]
		assert.False(t, present, key)
	}
}

func TestProduct_discountLogic(t *testing.T) {
	discount := decimal.NewFromInt(80)
	p := Product{Price: decimal.NewFromInt(100), DiscountPrice: &discount}

	assert.True(t, p.HasDiscount())
	assert.Equal(t, 20.0, p.DiscountPercentage())
	assert.Equal(t, "80", p.EffectivePrice().String())

	p.DiscountPrice = nil
	assert.False(t, p.HasDiscount())
	assert.Equal(t, 0.0, p.DiscountPercentage())
	assert.Equal(t, "100", p.EffectivePrice().String())

	// A "discount" above list price is ignored.
	higher := decimal.NewFromInt(120)
	p.DiscountPrice = &higher
	assert.False(t, p.HasDiscount())
	assert.Equal(t, "100", p.EffectivePrice().String())
}

func TestProduct_stockLogic(t *testing.T) {
	qty := 3
	zero := 0

	tests := []struct {
		name      string
		product   Product
		inStock   bool
		available bool
		badge     string
	}{
		{"unlimited", Product{Status: ProductStatusActive, IsUnlimited: true}, true, true, "In Stock"},
		{"low stock", Product{Status: ProductStatusActive, StockQuantity: &qty}, true, true, "Low Stock"},
		{"zero stock", Product{Status: ProductStatusActive, StockQuantity: &zero}, false, false, "Out of Stock"},
		{"nil stock", Product{Status: ProductStatusActive}, false, false, "Out of Stock"},
		{"inactive with stock", Product{Status: ProductStatusInactive, StockQuantity: &qty}, true, false, "Low Stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inStock, tt.product.IsInStock())
			assert.Equal(t, tt.available, tt.product.IsAvailable())
			assert.Equal(t, tt.badge, tt.product.StockStatusText())
		})
	}
}

func TestParseProductEnums(t *testing.T) {
	assert.Equal(t, ProductTypeServiceAddon, ParseProductType("service_addon"))
	assert.Equal(t, ProductTypePhysical, ParseProductType("hologram"))
	assert.Equal(t, ProductStatusOutOfStock, ParseProductStatus("OUT_OF_STOCK"))
	assert.Equal(t, ProductStatusDraft, ParseProductStatus(""))
	assert.Equal(t, ProductStatusDraft, ParseProductStatus("zombie"))
}

func TestProductListResponse_analytics(t *testing.T) {
	mk := func(id string, status string, price float64, rating float64, sales int, featured bool, stock any) map[string]any {
		m := map[string]any{
			"id": id, "name": "P " + id, "status": status, "price": price,
			"rating": rating, "sales_count": sales, "is_featured": featured,
			"product_type": "physical", "currency": "USD",
			"created_at": "2026-07-01T00:00:00Z", "updated_at": "2026-07-01T00:00:00Z",
		}
		if stock == "unlimited" {
			m["is_unlimited"] = true
		} else if q, ok := stock.(int); ok {
			m["stock_quantity"] = q
		}
		return m
	}

	resp := ProductListResponseFromMap(map[string]any{
		"count": 3,
		"results": []any{
			mk("p1", "active", 100, 4.0, 10, true, "unlimited"),
			mk("p2", "active", 50, 5.0, 5, false, 2),
			mk("p3", "inactive", 30, 0, 0, false, 0),
		},
	})

	a := resp.Analytics()
	assert.Equal(t, 3, a.TotalProducts)
	assert.Equal(t, 2, a.Active)
	assert.Equal(t, 1, a.OutOfStock)
	assert.Equal(t, 1, a.Featured)
	assert.Equal(t, 15, a.TotalSales)
	assert.InDelta(t, 4.5, a.AverageRating, 1e-9)
	assert.Equal(t, "60.00", a.AveragePrice.StringFixed(2))
}

func TestProductListResponse_analyticsEmpty(t *testing.T) {
	a := (&ProductListResponse{Results: []Product{}}).Analytics()
	assert.Equal(t, 0, a.TotalProducts)
	assert.Equal(t, 0.0, a.AverageRating)
	assert.True(t, a.AveragePrice.IsZero())
}

func TestCreateProductRequest_validate(t *testing.T) {
	req := CreateProductRequest{
		Name:             "Cleaning Kit",
		Type:             "physical",
		Price:            10,
		Currency:         "USD",
		MinOrderQuantity: 1,
	}
	require.NoError(t, ValidateRequest(&req))

	req.Type = "imaginary"
	require.Error(t, ValidateRequest(&req))

	req.Type = "digital"
	req.Price = 0
	require.Error(t, ValidateRequest(&req))
}
