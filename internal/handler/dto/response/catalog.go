package response

import (
	"productpraat/internal/catalog"
	"productpraat/internal/storage"
)

type ProductResponse struct {
	EAN           string              `json:"ean"`
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	Brand         string              `json:"brand,omitempty"`
	Price         float64             `json:"price"`
	DiscountPrice float64             `json:"discount_price,omitempty"`
	DiscountPct   float64             `json:"discount_pct,omitempty"`
	Availability  string              `json:"availability"`
	Rating        *RatingResponse     `json:"rating,omitempty"`
	ImageURL      string              `json:"image_url,omitempty"`
	Gallery       []MediaItemResponse `json:"gallery,omitempty"`
	Specs         []SpecGroupResponse `json:"specs,omitempty"`
	Categories    []CategoryResponse  `json:"categories,omitempty"`
	URL           string              `json:"url"`
}

type RatingResponse struct {
	Average      float64     `json:"average"`
	Count        int         `json:"count"`
	Distribution map[int]int `json:"distribution,omitempty"`
}

type MediaItemResponse struct {
	URL        string `json:"url"`
	HighResURL string `json:"high_res_url,omitempty"`
	MimeType   string `json:"mime_type,omitempty"`
}

type SpecGroupResponse struct {
	Title   string              `json:"title"`
	Entries []SpecEntryResponse `json:"entries"`
}

type SpecEntryResponse struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

type SearchResponse struct {
	Items      []*ProductResponse `json:"items"`
	TotalCount int                `json:"total_count"`
	TotalPages int                `json:"total_pages"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}

func FromProduct(p *catalog.Product) *ProductResponse {
	resp := &ProductResponse{
		EAN:           p.EAN,
		Title:         p.Title,
		Description:   p.Description,
		Brand:         p.Brand,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		DiscountPct:   p.DiscountPct,
		Availability:  string(p.Availability),
		ImageURL:      p.ImageURL,
		Gallery:       fromMediaItems(p.Gallery),
		URL:           p.URL,
	}
	if p.Rating != nil {
		resp.Rating = &RatingResponse{
			Average:      p.Rating.Average,
			Count:        p.Rating.Count,
			Distribution: p.Rating.Distribution,
		}
	}
	for _, group := range p.Specs {
		entries := make([]SpecEntryResponse, len(group.Entries))
		for i, entry := range group.Entries {
			entries[i] = SpecEntryResponse{Name: entry.Name, Values: entry.Values}
		}
		resp.Specs = append(resp.Specs, SpecGroupResponse{Title: group.Title, Entries: entries})
	}
	resp.Categories = FromCategories(p.Categories)
	return resp
}

func FromSearchPage(page *catalog.SearchPage) *SearchResponse {
	items := make([]*ProductResponse, len(page.Items))
	for i := range page.Items {
		items[i] = FromProduct(&page.Items[i])
	}
	return &SearchResponse{
		Items:      items,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
}

func FromProducts(products []catalog.Product) []*ProductResponse {
	items := make([]*ProductResponse, len(products))
	for i := range products {
		items[i] = FromProduct(&products[i])
	}
	return items
}

func FromCategories(categories []catalog.Category) []CategoryResponse {
	if len(categories) == 0 {
		return nil
	}
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = CategoryResponse{ID: c.ID, Name: c.Name, ParentID: c.ParentID}
	}
	return res
}

func fromMediaItems(items []catalog.MediaItem) []MediaItemResponse {
	if len(items) == 0 {
		return nil
	}
	res := make([]MediaItemResponse, len(items))
	for i, item := range items {
		res[i] = MediaItemResponse{URL: item.URL, HighResURL: item.HighResURL, MimeType: item.MimeType}
	}
	return res
}

type DealResponse struct {
	EAN           string  `json:"ean"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	DiscountPrice float64 `json:"discount_price"`
	DiscountPct   float64 `json:"discount_pct"`
	ImageURL      string  `json:"image_url,omitempty"`
	URL           string  `json:"url"`
	StartedAt     int64   `json:"started_at"`
}

func FromDeal(deal storage.DealRecord, product storage.ProductRecord) *DealResponse {
	return &DealResponse{
		EAN:           deal.EAN,
		Title:         product.Title,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		DiscountPct:   deal.DiscountPct,
		ImageURL:      product.ImageURL,
		URL:           product.URL,
		StartedAt:     deal.StartedAt.Unix(),
	}
}
