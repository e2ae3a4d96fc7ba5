package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductType distinguishes what kind of item a provider sells.
type ProductType string

const (
	ProductTypePhysical     ProductType = "physical"
	ProductTypeDigital      ProductType = "digital"
	ProductTypeServiceAddon ProductType = "service_addon"
)

// ParseProductType maps a wire string to a type; unknown input degrades
// to physical with a warning.
func ParseProductType(s string) ProductType {
	switch ProductType(normalizeEnum(s)) {
	case ProductTypePhysical:
		return ProductTypePhysical
	case ProductTypeDigital:
		return ProductTypeDigital
	case ProductTypeServiceAddon:
		return ProductTypeServiceAddon
	default:
		log.Warn("unknown product type, defaulting to physical", zap.String("value", s))
		return ProductTypePhysical
	}
}

func (t ProductType) Value() string { return string(t) }

func (t ProductType) DisplayText() string {
	switch t {
	case ProductTypeDigital:
		return "Digital"
	case ProductTypeServiceAddon:
		return "Service Add-on"
	default:
		return "Physical"
	}
}

// ProductStatus is the catalog lifecycle state of a product.
type ProductStatus string

const (
	ProductStatusDraft        ProductStatus = "draft"
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusOutOfStock   ProductStatus = "out_of_stock"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// ParseProductStatus maps a wire string to a status; unknown input
// degrades to draft with a warning.
func ParseProductStatus(s string) ProductStatus {
	switch ProductStatus(normalizeEnum(s)) {
	case ProductStatusDraft:
		return ProductStatusDraft
	case ProductStatusActive:
		return ProductStatusActive
	case ProductStatusInactive:
		return ProductStatusInactive
	case ProductStatusOutOfStock:
		return ProductStatusOutOfStock
	case ProductStatusDiscontinued:
		return ProductStatusDiscontinued
	default:
		log.Warn("unknown product status, defaulting to draft", zap.String("value", s))
		return ProductStatusDraft
	}
}

func (s ProductStatus) Value() string { return string(s) }

func (s ProductStatus) DisplayText() string {
	switch s {
	case ProductStatusActive:
		return "Active"
	case ProductStatusInactive:
		return "Inactive"
	case ProductStatusOutOfStock:
		return "Out of Stock"
	case ProductStatusDiscontinued:
		return "Discontinued"
	default:
		return "Draft"
	}
}

func (s ProductStatus) Color() string {
	switch s {
	case ProductStatusActive:
		return "#4CAF50"
	case ProductStatusInactive:
		return "#9E9E9E"
	case ProductStatusOutOfStock:
		return "#FF9800"
	case ProductStatusDiscontinued:
		return "#F44336"
	default:
		return "#607D8B"
	}
}

// Product is a catalog item sold by a provider.
type Product struct {
	ID                string
	Name              string
	Description       string
	Type              ProductType
	Status            ProductStatus
	Category          map[string]any
	Subcategories     []map[string]any
	Tags              []string
	Price             decimal.Decimal
	DiscountPrice     *decimal.Decimal
	Currency          string
	SKU               *string
	StockQuantity     *int
	IsUnlimited       bool
	Images            []string
	Specifications    map[string]any
	Provider          *string
	Variants          []map[string]any
	IsFeatured        bool
	IsDigitalDelivery bool
	MinOrderQuantity  int
	MaxOrderQuantity  int
	Rating            float64
	ReviewCount       int
	SalesCount        int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProductFromMap parses a product from a decoded wire payload.
func ProductFromMap(m map[string]any) (*Product, error) {
	id, err := reqString(m, "id")
	if err != nil {
		return nil, err
	}
	name, err := reqString(m, "name")
	if err != nil {
		return nil, err
	}
	return &Product{
		ID:                id,
		Name:              name,
		Description:       optString(m, "description"),
		Type:              ParseProductType(optString(m, "product_type")),
		Status:            ParseProductStatus(optString(m, "status")),
		Category:          optMap(m, "category"),
		Subcategories:     optMapSlice(m, "subcategories"),
		Tags:              optStringSlice(m, "tags"),
		Price:             optDecimal(m, "price"),
		DiscountPrice:     optDecimalPtr(m, "discount_price"),
		Currency:          optString(m, "currency"),
		SKU:               optStringPtr(m, "sku"),
		StockQuantity:     optIntPtr(m, "stock_quantity"),
		IsUnlimited:       optBool(m, "is_unlimited", false),
		Images:            optStringSlice(m, "images"),
		Specifications:    optMap(m, "specifications"),
		Provider:          optStringPtr(m, "provider"),
		Variants:          optMapSlice(m, "variants"),
		IsFeatured:        optBool(m, "is_featured", false),
		IsDigitalDelivery: optBool(m, "is_digital_delivery", false),
		MinOrderQuantity:  optInt(m, "min_order_quantity", 1),
		MaxOrderQuantity:  optInt(m, "max_order_quantity", 0),
		Rating:            optFloat(m, "rating", 0),
		ReviewCount:       optInt(m, "review_count", 0),
		SalesCount:        optInt(m, "sales_count", 0),
		CreatedAt:         optTime(m, "created_at"),
		UpdatedAt:         optTime(m, "updated_at"),
	}, nil
}

// ToMap serializes the product to its sparse wire shape.
func (p *Product) ToMap() map[string]any {
	subcategories := make([]any, 0, len(p.Subcategories))
	for _, sc := range p.Subcategories {
		subcategories = append(subcategories, sc)
	}
	variants := make([]any, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, v)
	}
	m := map[string]any{
		"id":                  p.ID,
		"name":                p.Name,
		"description":         p.Description,
		"product_type":        p.Type.Value(),
		"status":              p.Status.Value(),
		"subcategories":       subcategories,
		"tags":                toAnySlice(p.Tags),
		"price":               p.Price.InexactFloat64(),
		"currency":            p.Currency,
		"is_unlimited":        p.IsUnlimited,
		"images":              toAnySlice(p.Images),
		"variants":            variants,
		"is_featured":         p.IsFeatured,
		"is_digital_delivery": p.IsDigitalDelivery,
		"min_order_quantity":  p.MinOrderQuantity,
		"max_order_quantity":  p.MaxOrderQuantity,
		"rating":              p.Rating,
		"review_count":        p.ReviewCount,
		"sales_count":         p.SalesCount,
		"created_at":          formatWireTime(p.CreatedAt),
		"updated_at":          formatWireTime(p.UpdatedAt),
	}
	putMap(m, "category", p.Category)
	putMap(m, "specifications", p.Specifications)
	putDecimalPtr(m, "discount_price", p.DiscountPrice)
	putStringPtr(m, "sku", p.SKU)
	putIntPtr(m, "stock_quantity", p.StockQuantity)
	putStringPtr(m, "provider", p.Provider)
	return m
}

func (p *Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ProductFromMap(raw)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// HasDiscount reports whether a discount price is set below the list price.
func (p *Product) HasDiscount() bool {
	return p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price)
}

// EffectivePrice is the price a buyer actually pays.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.HasDiscount() {
		return *p.DiscountPrice
	}
	return p.Price
}

// DiscountPercentage is the discount as a percentage of list price,
// 0 when there is no discount or no list price.
func (p *Product) DiscountPercentage() float64 {
	if !p.HasDiscount() || p.Price.IsZero() {
		return 0
	}
	return p.Price.Sub(*p.DiscountPrice).
		Div(p.Price).
		Mul(decimal.NewFromInt(100)).
		InexactFloat64()
}

// IsInStock reports whether the product can currently be ordered.
func (p *Product) IsInStock() bool {
	if p.IsUnlimited {
		return true
	}
	return p.StockQuantity != nil && *p.StockQuantity > 0
}

// IsAvailable reports whether the product is purchasable right now.
func (p *Product) IsAvailable() bool {
	return p.Status == ProductStatusActive && p.IsInStock()
}

// StockStatusText is the stock badge label for the catalog UI.
func (p *Product) StockStatusText() string {
	switch {
	case p.IsUnlimited:
		return "In Stock"
	case p.StockQuantity == nil || *p.StockQuantity <= 0:
		return "Out of Stock"
	case *p.StockQuantity <= 5:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

// StockStatusColor is the cosmetic tag matching StockStatusText.
func (p *Product) StockStatusColor() string {
	switch p.StockStatusText() {
	case "Out of Stock":
		return "#F44336"
	case "Low Stock":
		return "#FF9800"
	default:
		return "#4CAF50"
	}
}

// FormattedPrice renders the effective price for display.
func (p *Product) FormattedPrice() string {
	return FormatCurrencyAmount(p.EffectivePrice(), p.Currency)
}

// CreateProductRequest is the payload for listing a new product.
type CreateProductRequest struct {
	Name              string         `json:"name" validate:"required,min=2,max=200"`
	Description       string         `json:"description"`
	Type              string         `json:"product_type" validate:"required,oneof=physical digital service_addon"`
	Category          map[string]any `json:"category,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	Price             float64        `json:"price" validate:"required,gt=0"`
	DiscountPrice     *float64       `json:"discount_price,omitempty" validate:"omitempty,gt=0"`
	Currency          string         `json:"currency" validate:"required,len=3"`
	SKU               *string        `json:"sku,omitempty"`
	StockQuantity     *int           `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	IsUnlimited       bool           `json:"is_unlimited"`
	Images            []string       `json:"images,omitempty"`
	Specifications    map[string]any `json:"specifications,omitempty"`
	IsDigitalDelivery bool           `json:"is_digital_delivery"`
	MinOrderQuantity  int            `json:"min_order_quantity" validate:"gte=0"`
	MaxOrderQuantity  int            `json:"max_order_quantity" validate:"gte=0"`
}

func (r *CreateProductRequest) ToMap() map[string]any {
	m := map[string]any{
		"name":                r.Name,
		"description":         r.Description,
		"product_type":        r.Type,
		"tags":                toAnySlice(r.Tags),
		"price":               r.Price,
		"currency":            r.Currency,
		"is_unlimited":        r.IsUnlimited,
		"images":              toAnySlice(r.Images),
		"is_digital_delivery": r.IsDigitalDelivery,
		"min_order_quantity":  r.MinOrderQuantity,
		"max_order_quantity":  r.MaxOrderQuantity,
	}
	putMap(m, "category", r.Category)
	putMap(m, "specifications", r.Specifications)
	putFloatPtr(m, "discount_price", r.DiscountPrice)
	putStringPtr(m, "sku", r.SKU)
	putIntPtr(m, "stock_quantity", r.StockQuantity)
	return m
}

// ProductListResponse is the standard pagination envelope for products.
type ProductListResponse struct {
	Count    int
	Next     *string
	Previous *string
	Results  []Product
}

func ProductListResponseFromMap(m map[string]any) *ProductListResponse {
	resp := &ProductListResponse{
		Count:    optInt(m, "count", 0),
		Next:     optStringPtr(m, "next"),
		Previous: optStringPtr(m, "previous"),
		Results:  []Product{},
	}
	for _, item := range optMapSlice(m, "results") {
		p, err := ProductFromMap(item)
		if err != nil {
			log.Warn("skipping malformed product in list", zap.Error(err))
			continue
		}
		resp.Results = append(resp.Results, *p)
	}
	return resp
}

func (r *ProductListResponse) ToMap() map[string]any {
	results := make([]any, 0, len(r.Results))
	for i := range r.Results {
		results = append(results, r.Results[i].ToMap())
	}
	m := map[string]any{
		"count":   r.Count,
		"results": results,
	}
	putStringPtr(m, "next", r.Next)
	putStringPtr(m, "previous", r.Previous)
	return m
}

func (r *ProductListResponse) HasNext() bool     { return hasCursor(r.Next) }
func (r *ProductListResponse) HasPrevious() bool { return hasCursor(r.Previous) }

// ProductAnalytics summarizes a page of products for the provider dashboard.
type ProductAnalytics struct {
	TotalProducts int
	Active        int
	OutOfStock    int
	Featured      int
	TotalSales    int
	AverageRating float64 // across rated products only, 0.0 when none
	AveragePrice  decimal.Decimal
}

// Analytics folds the page into catalog-level aggregates.
func (r *ProductListResponse) Analytics() ProductAnalytics {
	a := ProductAnalytics{TotalProducts: len(r.Results)}
	if a.TotalProducts == 0 {
		return a
	}
	var ratingSum float64
	var rated int
	var priceSum decimal.Decimal
	for i := range r.Results {
		p := &r.Results[i]
		if p.Status == ProductStatusActive {
			a.Active++
		}
		if !p.IsInStock() {
			a.OutOfStock++
		}
		if p.IsFeatured {
			a.Featured++
		}
		a.TotalSales += p.SalesCount
		if p.Rating > 0 {
			ratingSum += p.Rating
			rated++
		}
		priceSum = priceSum.Add(p.EffectivePrice())
	}
	if rated > 0 {
		a.AverageRating = ratingSum / float64(rated)
	}
	a.AveragePrice = priceSum.Div(decimal.NewFromInt(int64(a.TotalProducts))).Round(2)
	return a
}
