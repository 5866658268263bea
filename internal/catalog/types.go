// Package catalog exposes typed product queries on top of the marketing API
// client. It owns the canonical read model for products; persisted copies
// belong to the storage layer.
package catalog

import (
	"regexp"
	"time"
)

// Availability is the stock state reported by the best offer.
type Availability string

const (
	AvailabilityInStock    Availability = "in_stock"
	AvailabilityOutOfStock Availability = "out_of_stock"
	AvailabilityPreOrder   Availability = "pre_order"
	AvailabilityUnknown    Availability = "unknown"
)

var eanPattern = regexp.MustCompile(`^\d{13}$`)

// ValidEAN reports whether code is a marketplace-unique 13-digit code.
func ValidEAN(code string) bool {
	return eanPattern.MatchString(code)
}

// Product is the canonical catalog record.
type Product struct {
	EAN           string         `json:"ean"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Brand         string         `json:"brand,omitempty"`
	Price         float64        `json:"price"`
	DiscountPrice float64        `json:"discount_price,omitempty"`
	DiscountPct   float64        `json:"discount_pct,omitempty"`
	Availability  Availability   `json:"availability"`
	Rating        *RatingSummary `json:"rating,omitempty"`
	ImageURL      string         `json:"image_url,omitempty"`
	Gallery       []MediaItem    `json:"gallery,omitempty"`
	Specs         []SpecGroup    `json:"specs,omitempty"`
	Categories    []Category     `json:"categories,omitempty"`
	URL           string         `json:"url"`
}

// Offer is the best offer for a product.
type Offer struct {
	Price               float64      `json:"price"`
	StrikethroughPrice  float64      `json:"strikethrough_price,omitempty"`
	Availability        Availability `json:"availability"`
	DeliveryDescription string       `json:"delivery_description,omitempty"`
	Seller              string       `json:"seller,omitempty"`
}

// MediaItem is one gallery entry. HighResURL is only populated when the
// secondary source found a high-resolution variant.
type MediaItem struct {
	URL        string `json:"url"`
	HighResURL string `json:"high_res_url,omitempty"`
	MimeType   string `json:"mime_type,omitempty"`
}

type RatingSummary struct {
	Average      float64     `json:"average"`
	Count        int         `json:"count"`
	Distribution map[int]int `json:"distribution,omitempty"`
}

type SpecGroup struct {
	Title   string      `json:"title"`
	Entries []SpecEntry `json:"entries"`
}

type SpecEntry struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// SortKey orders search results.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortRating    SortKey = "rating"
	SortPopular   SortKey = "popularity"
)

// SearchFilters narrow a full-text search.
type SearchFilters struct {
	CategoryID  string
	MinPrice    float64
	MaxPrice    float64
	MinRating   float64
	Brands      []string
	InStockOnly bool
	Sort        SortKey
}

// SearchPage is one page of search results with pagination totals.
type SearchPage struct {
	Items      []Product `json:"items"`
	TotalCount int       `json:"total_count"`
	TotalPages int       `json:"total_pages"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// AffiliateLink is a derived value, regenerated on every request and never
// cached beyond a single call.
type AffiliateLink struct {
	OriginalURL string    `json:"original_url"`
	URL         string    `json:"url"`
	PartnerID   string    `json:"partner_id"`
	GeneratedAt time.Time `json:"generated_at"`
}
