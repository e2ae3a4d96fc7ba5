package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ServiceCategory is a node in the service taxonomy.
type ServiceCategory struct {
	ID          string
	Name        string
	Description string
	Icon        *string
	SortOrder   int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ServiceCategoryFromMap(m map[string]any) (*ServiceCategory, error) {
	id, err := reqString(m, "id")
	if err != nil {
		return nil, err
	}
	name, err := reqString(m, "name")
	if err != nil {
		return nil, err
	}
	return &ServiceCategory{
		ID:          id,
		Name:        name,
		Description: optString(m, "description"),
		Icon:        optStringPtr(m, "icon"),
		SortOrder:   optInt(m, "sort_order", 0),
		IsActive:    optBool(m, "is_active", true),
		CreatedAt:   optTime(m, "created_at"),
		UpdatedAt:   optTime(m, "updated_at"),
	}, nil
}

func (c *ServiceCategory) ToMap() map[string]any {
	m := map[string]any{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
		"sort_order":  c.SortOrder,
		"is_active":   c.IsActive,
		"created_at":  formatWireTime(c.CreatedAt),
		"updated_at":  formatWireTime(c.UpdatedAt),
	}
	putStringPtr(m, "icon", c.Icon)
	return m
}

func (c *ServiceCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}

func (c *ServiceCategory) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ServiceCategoryFromMap(raw)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// Service is a provider's offered service listing.
//
// Category and Provider stay loosely typed embedded maps: the backend
// inlines varying projections of those objects depending on the endpoint,
// so the client reads just the display fields it needs through getters.
type Service struct {
	ID            string
	Name          string
	Description   string
	Category      map[string]any
	Subcategories []map[string]any
	Provider      map[string]any
	HourlyRate    decimal.Decimal
	Currency      string
	Location      string
	Latitude      *float64
	Longitude     *float64
	Tags          []string
	Images        []string
	Status        string
	IsFeatured    bool
	Rating        float64
	ReviewCount   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ServiceFromMap(m map[string]any) (*Service, error) {
	id, err := reqString(m, "id")
	if err != nil {
		return nil, err
	}
	name, err := reqString(m, "name")
	if err != nil {
		return nil, err
	}
	return &Service{
		ID:            id,
		Name:          name,
		Description:   optString(m, "description"),
		Category:      optMap(m, "category"),
		Subcategories: optMapSlice(m, "subcategories"),
		Provider:      optMap(m, "provider"),
		HourlyRate:    optDecimal(m, "hourly_rate"),
		Currency:      optString(m, "currency"),
		Location:      optString(m, "location"),
		Latitude:      optFloatPtr(m, "latitude"),
		Longitude:     optFloatPtr(m, "longitude"),
		Tags:          optStringSlice(m, "tags"),
		Images:        optStringSlice(m, "images"),
		Status:        optString(m, "status"),
		IsFeatured:    optBool(m, "is_featured", false),
		Rating:        optFloat(m, "rating", 0),
		ReviewCount:   optInt(m, "review_count", 0),
		CreatedAt:     optTime(m, "created_at"),
		UpdatedAt:     optTime(m, "updated_at"),
	}, nil
}

func (s *Service) ToMap() map[string]any {
	subcategories := make([]any, 0, len(s.Subcategories))
	for _, sc := range s.Subcategories {
		subcategories = append(subcategories, sc)
	}
	m := map[string]any{
		"id":            s.ID,
		"name":          s.Name,
		"description":   s.Description,
		"subcategories": subcategories,
		"hourly_rate":   s.HourlyRate.InexactFloat64(),
		"currency":      s.Currency,
		"location":      s.Location,
		"tags":          toAnySlice(s.Tags),
		"images":        toAnySlice(s.Images),
		"status":        s.Status,
		"is_featured":   s.IsFeatured,
		"rating":        s.Rating,
		"review_count":  s.ReviewCount,
		"created_at":    formatWireTime(s.CreatedAt),
		"updated_at":    formatWireTime(s.UpdatedAt),
	}
	putMap(m, "category", s.Category)
	putMap(m, "provider", s.Provider)
	putFloatPtr(m, "latitude", s.Latitude)
	putFloatPtr(m, "longitude", s.Longitude)
	return m
}

func (s *Service) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

func (s *Service) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ServiceFromMap(raw)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// CategoryName reads the display name out of the embedded category.
func (s *Service) CategoryName() string {
	if s.Category == nil {
		return ""
	}
	return optString(s.Category, "name")
}

// ProviderName reads the display name out of the embedded provider.
func (s *Service) ProviderName() string {
	if s.Provider == nil {
		return ""
	}
	if name := optString(s.Provider, "name"); name != "" {
		return name
	}
	return optString(s.Provider, "username")
}

// FormattedRate renders the hourly rate, e.g. "$25.00/hr".
func (s *Service) FormattedRate() string {
	return FormatCurrencyAmount(s.HourlyRate, s.Currency) + "/hr"
}

// ServiceRequest is a customer's open request for a service, which
// providers bid on.
type ServiceRequest struct {
	ID            string
	Title         string
	Description   string
	Category      map[string]any
	Customer      map[string]any
	BudgetMin     decimal.Decimal
	BudgetMax     decimal.Decimal
	Currency      string
	Urgency       string
	Status        string
	RequestedDate *string // "2006-01-02"
	Location      string
	Latitude      *float64
	Longitude     *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ServiceRequestFromMap(m map[string]any) (*ServiceRequest, error) {
	id, err := reqString(m, "id")
	if err != nil {
		return nil, err
	}
	title, err := reqString(m, "title")
	if err != nil {
		return nil, err
	}
	return &ServiceRequest{
		ID:            id,
		Title:         title,
		Description:   optString(m, "description"),
		Category:      optMap(m, "category"),
		Customer:      optMap(m, "customer"),
		BudgetMin:     optDecimal(m, "budget_min"),
		BudgetMax:     optDecimal(m, "budget_max"),
		Currency:      optString(m, "currency"),
		Urgency:       optString(m, "urgency"),
		Status:        optString(m, "status"),
		RequestedDate: optStringPtr(m, "requested_date"),
		Location:      optString(m, "location"),
		Latitude:      optFloatPtr(m, "latitude"),
		Longitude:     optFloatPtr(m, "longitude"),
		CreatedAt:     optTime(m, "created_at"),
		UpdatedAt:     optTime(m, "updated_at"),
	}, nil
}

func (r *ServiceRequest) ToMap() map[string]any {
	m := map[string]any{
		"id":          r.ID,
		"title":       r.Title,
		"description": r.Description,
		"budget_min":  r.BudgetMin.InexactFloat64(),
		"budget_max":  r.BudgetMax.InexactFloat64(),
		"currency":    r.Currency,
		"urgency":     r.Urgency,
		"status":      r.Status,
		"location":    r.Location,
		"created_at":  formatWireTime(r.CreatedAt),
		"updated_at":  formatWireTime(r.UpdatedAt),
	}
	putMap(m, "category", r.Category)
	putMap(m, "customer", r.Customer)
	putStringPtr(m, "requested_date", r.RequestedDate)
	putFloatPtr(m, "latitude", r.Latitude)
	putFloatPtr(m, "longitude", r.Longitude)
	return m
}

func (r *ServiceRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

func (r *ServiceRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ServiceRequestFromMap(raw)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// CategoryName reads the display name out of the embedded category.
func (r *ServiceRequest) CategoryName() string {
	if r.Category == nil {
		return ""
	}
	return optString(r.Category, "name")
}

// CustomerName reads the display name out of the embedded customer.
func (r *ServiceRequest) CustomerName() string {
	if r.Customer == nil {
		return ""
	}
	if name := optString(r.Customer, "name"); name != "" {
		return name
	}
	return optString(r.Customer, "username")
}

// BudgetText renders the budget range, e.g. "$50.00 – $100.00".
func (r *ServiceRequest) BudgetText() string {
	return FormatCurrencyAmount(r.BudgetMin, r.Currency) + " – " +
		FormatCurrencyAmount(r.BudgetMax, r.Currency)
}

// ServiceListResponse is the standard pagination envelope for services.
type ServiceListResponse struct {
	Count    int
	Next     *string
	Previous *string
	Results  []Service
}

func ServiceListResponseFromMap(m map[string]any) *ServiceListResponse {
	resp := &ServiceListResponse{
		Count:    optInt(m, "count", 0),
		Next:     optStringPtr(m, "next"),
		Previous: optStringPtr(m, "previous"),
		Results:  []Service{},
	}
	for _, item := range optMapSlice(m, "results") {
		s, err := ServiceFromMap(item)
		if err != nil {
			log.Warn("skipping malformed service in list", zap.Error(err))
			continue
		}
		resp.Results = append(resp.Results, *s)
	}
	return resp
}

func (r *ServiceListResponse) HasNext() bool     { return hasCursor(r.Next) }
func (r *ServiceListResponse) HasPrevious() bool { return hasCursor(r.Previous) }
