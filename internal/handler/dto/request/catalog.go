package request

import (
	"strings"

	"productpraat/internal/catalog"
)

type SearchProductsRequest struct {
	Query      string  `form:"q" binding:"required"`
	Page       int     `form:"page" binding:"omitempty,min=1"`
	PageSize   int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	CategoryID string  `form:"category_id"`
	MinPrice   float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice   float64 `form:"max_price" binding:"omitempty,min=0"`
	MinRating  float64 `form:"min_rating" binding:"omitempty,min=0,max=5"`
	Brands     string  `form:"brands"`
	InStock    bool    `form:"in_stock"`
	Sort       string  `form:"sort" binding:"omitempty,oneof=relevance price_asc price_desc rating popularity"`
}

func (r *SearchProductsRequest) ToFilters() catalog.SearchFilters {
	filters := catalog.SearchFilters{
		CategoryID:  r.CategoryID,
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
		MinRating:   r.MinRating,
		InStockOnly: r.InStock,
		Sort:        catalog.SortKey(r.Sort),
	}
	if r.Brands != "" {
		filters.Brands = strings.Split(r.Brands, ",")
	}
	return filters
}
