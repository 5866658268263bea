package catalog

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"productpraat/internal/bol"
	"productpraat/internal/pkg/config"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPageSize bounds search pages when the caller does not ask for one.
	DefaultPageSize = 24
	// MaxPageSize is the hard cap accepted by the upstream search endpoint.
	MaxPageSize = 100
)

// Service is a typed facade over the marketing API client. Lookups that can
// legitimately be absent resolve to nil/empty instead of failing; every other
// error propagates the client's structured error unchanged.
type Service struct {
	client  *bol.Client
	country string
	logger  *slog.Logger
}

func NewService(client *bol.Client, cfg config.BolConfig, logger *slog.Logger) *Service {
	country := cfg.CountryCode
	if country == "" {
		country = "NL"
	}
	return &Service{client: client, country: country, logger: logger}
}

// Search runs a full-text product search with filters and pagination.
func (s *Service) Search(ctx context.Context, term string, filters SearchFilters, page, pageSize int) (*SearchPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	query := s.baseQuery()
	query.Set("search-term", term)
	query.Set("page", strconv.Itoa(page))
	query.Set("page-size", strconv.Itoa(pageSize))
	query.Set("include-image", "true")
	query.Set("include-offer", "true")
	query.Set("include-rating", "true")
	applyFilters(query, filters)

	result, err := bol.Get[searchResponse](ctx, s.client, "/products/search", bol.Options{Query: query})
	if err != nil {
		return nil, err
	}

	items := make([]Product, 0, len(result.Data.Results))
	for _, r := range result.Data.Results {
		items = append(items, r.toProduct())
	}
	total := result.Data.TotalResults
	return &SearchPage{
		Items:      items,
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// ProductByEAN looks a product up by its 13-digit code. A 404 resolves to
// (nil, nil): absence is not an error here.
func (s *Service) ProductByEAN(ctx context.Context, ean string) (*Product, error) {
	query := s.baseQuery()
	query.Set("include-image", "true")
	query.Set("include-offer", "true")
	query.Set("include-rating", "true")
	query.Set("include-specifications", "true")

	result, err := bol.Get[productResponse](ctx, s.client, "/products/"+ean, bol.Options{Query: query})
	if err != nil {
		if bol.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	p := result.Data.toProduct()
	return &p, nil
}

// BestOffer returns the best offer for a product, nil when none exists.
func (s *Service) BestOffer(ctx context.Context, ean string) (*Offer, error) {
	result, err := bol.Get[offerResponse](ctx, s.client, "/products/"+ean+"/offers/best", bol.Options{Query: s.baseQuery()})
	if err != nil {
		if bol.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	offer := result.Data.toOffer()
	return &offer, nil
}

// Media lists the product gallery. A 404 resolves to an empty list.
func (s *Service) Media(ctx context.Context, ean string) ([]MediaItem, error) {
	result, err := bol.Get[mediaResponse](ctx, s.client, "/products/"+ean+"/media", bol.Options{Query: s.baseQuery()})
	if err != nil {
		if bol.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	items := make([]MediaItem, 0, len(result.Data.Media))
	for _, m := range result.Data.Media {
		items = append(items, MediaItem{URL: m.URL, MimeType: m.MimeType})
	}
	return items, nil
}

// Rating returns the rating summary, nil when the product has none.
func (s *Service) Rating(ctx context.Context, ean string) (*RatingSummary, error) {
	result, err := bol.Get[ratingResponse](ctx, s.client, "/products/"+ean+"/ratings", bol.Options{Query: s.baseQuery()})
	if err != nil {
		if bol.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	summary := result.Data.toSummary()
	return &summary, nil
}

// Specifications lists grouped key/value specs. A 404 resolves to empty.
func (s *Service) Specifications(ctx context.Context, ean string) ([]SpecGroup, error) {
	result, err := bol.Get[specificationsResponse](ctx, s.client, "/products/"+ean+"/specifications", bol.Options{Query: s.baseQuery()})
	if err != nil {
		if bol.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toSpecGroups(result.Data.Groups), nil
}

// ProductCategories lists the category assignments of one product.
func (s *Service) ProductCategories(ctx context.Context, ean string) ([]Category, error) {
	result, err := bol.Get[categoriesResponse](ctx, s.client, "/products/"+ean+"/categories", bol.Options{Query: s.baseQuery()})
	if err != nil {
		if bol.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toCategories(result.Data.Categories), nil
}

// Categories traverses the category tree, optionally scoped by parent.
func (s *Service) Categories(ctx context.Context, parentID string) ([]Category, error) {
	query := s.baseQuery()
	if parentID != "" {
		query.Set("category-id", parentID)
	}
	result, err := bol.Get[categoriesResponse](ctx, s.client, "/categories", bol.Options{Query: query})
	if err != nil {
		if bol.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toCategories(result.Data.Categories), nil
}

// PopularProducts lists the popular products of one category.
func (s *Service) PopularProducts(ctx context.Context, categoryID string, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	query := s.baseQuery()
	query.Set("page-size", strconv.Itoa(limit))
	query.Set("include-image", "true")
	query.Set("include-offer", "true")
	query.Set("include-rating", "true")

	result, err := bol.Get[popularResponse](ctx, s.client, "/categories/"+categoryID+"/popular-products", bol.Options{Query: query})
	if err != nil {
		if bol.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	items := make([]Product, 0, len(result.Data.Products))
	for _, r := range result.Data.Products {
		items = append(items, r.toProduct())
	}
	return items, nil
}

// CompleteProduct assembles the full record: the base product first, then a
// concurrent fan-out of the four dependent lookups. A missing base product
// short-circuits to nil without issuing the other calls.
func (s *Service) CompleteProduct(ctx context.Context, ean string) (*Product, error) {
	product, err := s.ProductByEAN(ctx, ean)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	var (
		gallery    []MediaItem
		rating     *RatingSummary
		categories []Category
		specs      []SpecGroup
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var gerr error
		gallery, gerr = s.Media(gctx, ean)
		return gerr
	})
	g.Go(func() error {
		var gerr error
		rating, gerr = s.Rating(gctx, ean)
		return gerr
	})
	g.Go(func() error {
		var gerr error
		categories, gerr = s.ProductCategories(gctx, ean)
		return gerr
	})
	g.Go(func() error {
		var gerr error
		specs, gerr = s.Specifications(gctx, ean)
		return gerr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(gallery) > 0 {
		product.Gallery = gallery
	}
	if rating != nil {
		product.Rating = rating
	}
	if len(categories) > 0 {
		product.Categories = categories
	}
	if len(specs) > 0 {
		product.Specs = specs
	}
	return product, nil
}

// ClearCache drops every cached upstream response.
func (s *Service) ClearCache() {
	s.client.ClearCache()
}

// IsConfigured reports whether the underlying client has credentials.
func (s *Service) IsConfigured() bool {
	return s.client.IsConfigured()
}

func (s *Service) baseQuery() url.Values {
	query := url.Values{}
	query.Set("country-code", s.country)
	return query
}

func applyFilters(query url.Values, filters SearchFilters) {
	if filters.CategoryID != "" {
		query.Set("category-id", filters.CategoryID)
	}
	if filters.MinPrice > 0 {
		query.Set("min-price", formatAmount(filters.MinPrice))
	}
	if filters.MaxPrice > 0 {
		query.Set("max-price", formatAmount(filters.MaxPrice))
	}
	if filters.MinRating > 0 {
		query.Set("min-rating", formatAmount(filters.MinRating))
	}
	if len(filters.Brands) > 0 {
		query.Set("brands", strings.Join(filters.Brands, ","))
	}
	if filters.InStockOnly {
		query.Set("in-stock", "true")
	}
	if filters.Sort != "" && filters.Sort != SortRelevance {
		query.Set("sort", string(filters.Sort))
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ----------------------------------------------------------------------------
// Wire shapes of the marketing catalog API.
// ----------------------------------------------------------------------------

type searchResponse struct {
	TotalResults int               `json:"totalResults"`
	Results      []productResponse `json:"results"`
}

type popularResponse struct {
	Products []productResponse `json:"products"`
}

type productResponse struct {
	EAN                 string              `json:"ean"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	Brand               string              `json:"brand"`
	URL                 string              `json:"url"`
	Image               *imageResponse      `json:"image"`
	Offer               *offerResponse      `json:"offer"`
	Rating              float64             `json:"rating"`
	RatingCount         int                 `json:"ratingCount"`
	SpecificationGroups []specGroupResponse `json:"specificationGroups"`
}

type offerResponse struct {
	Price               float64 `json:"price"`
	StrikethroughPrice  float64 `json:"strikethroughPrice"`
	Availability        string  `json:"availability"`
	DeliveryDescription string  `json:"deliveryDescription"`
	Seller              string  `json:"seller"`
}

type imageResponse struct {
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
}

type mediaResponse struct {
	Media []imageResponse `json:"media"`
}

type ratingResponse struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
	Ratings       []struct {
		Rating int `json:"rating"`
		Count  int `json:"count"`
	} `json:"ratings"`
}

type specificationsResponse struct {
	Groups []specGroupResponse `json:"specificationGroups"`
}

type specGroupResponse struct {
	Title          string `json:"title"`
	Specifications []struct {
		Name   string   `json:"name"`
		Values []string `json:"values"`
	} `json:"specifications"`
}

type categoriesResponse struct {
	Categories []categoryResponse `json:"categories"`
}

type categoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId"`
}

func (r productResponse) toProduct() Product {
	p := Product{
		EAN:          r.EAN,
		Title:        r.Title,
		Description:  r.Description,
		Brand:        r.Brand,
		URL:          r.URL,
		Availability: AvailabilityUnknown,
	}
	if r.Image != nil {
		p.ImageURL = r.Image.URL
	}
	if r.Offer != nil {
		offer := r.Offer.toOffer()
		p.Availability = offer.Availability
		if offer.StrikethroughPrice > offer.Price && offer.StrikethroughPrice > 0 {
			p.Price = offer.StrikethroughPrice
			p.DiscountPrice = offer.Price
			p.DiscountPct = DiscountPercentage(offer.StrikethroughPrice, offer.Price)
		} else {
			p.Price = offer.Price
		}
	}
	if r.Rating > 0 {
		p.Rating = &RatingSummary{Average: r.Rating, Count: r.RatingCount}
	}
	if len(r.SpecificationGroups) > 0 {
		p.Specs = toSpecGroups(r.SpecificationGroups)
	}
	return p
}

func (r offerResponse) toOffer() Offer {
	return Offer{
		Price:               r.Price,
		StrikethroughPrice:  r.StrikethroughPrice,
		Availability:        parseAvailability(r.Availability),
		DeliveryDescription: r.DeliveryDescription,
		Seller:              r.Seller,
	}
}

func (r ratingResponse) toSummary() RatingSummary {
	summary := RatingSummary{Average: r.AverageRating, Count: r.TotalRatings}
	if len(r.Ratings) > 0 {
		summary.Distribution = make(map[int]int, len(r.Ratings))
		for _, entry := range r.Ratings {
			summary.Distribution[entry.Rating] = entry.Count
		}
	}
	return summary
}

func toSpecGroups(groups []specGroupResponse) []SpecGroup {
	out := make([]SpecGroup, 0, len(groups))
	for _, g := range groups {
		group := SpecGroup{Title: g.Title, Entries: make([]SpecEntry, 0, len(g.Specifications))}
		for _, s := range g.Specifications {
			group.Entries = append(group.Entries, SpecEntry{Name: s.Name, Values: s.Values})
		}
		out = append(out, group)
	}
	return out
}

func toCategories(categories []categoryResponse) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, Category{ID: c.ID, Name: c.Name, ParentID: c.ParentID})
	}
	return out
}

func parseAvailability(v string) Availability {
	switch strings.ToLower(v) {
	case "in_stock", "instock", "available":
		return AvailabilityInStock
	case "out_of_stock", "outofstock", "unavailable":
		return AvailabilityOutOfStock
	case "pre_order", "preorder":
		return AvailabilityPreOrder
	default:
		return AvailabilityUnknown
	}
}

// DiscountPercentage derives the discount from the original and reduced
// price. Always recomputed, never trusted from a stored flag.
func DiscountPercentage(original, reduced float64) float64 {
	if original <= 0 || reduced <= 0 || reduced >= original {
		return 0
	}
	return (original - reduced) / original * 100
}
