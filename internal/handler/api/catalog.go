package api

import (
	"net/http"
	"strconv"

	"productpraat/internal/bol"
	"productpraat/internal/catalog"
	reqdto "productpraat/internal/handler/dto/request"
	resdto "productpraat/internal/handler/dto/response"
	"productpraat/internal/handler/httperr"
	"productpraat/internal/sourcing"
	"productpraat/internal/storage"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog  *catalog.Service
	sources  *sourcing.Orchestrator
	products storage.ProductStore
	deals    storage.DealStore
}

func NewCatalogHandler(svc *catalog.Service, sources *sourcing.Orchestrator, products storage.ProductStore, deals storage.DealStore) *CatalogHandler {
	return &CatalogHandler{catalog: svc, sources: sources, products: products, deals: deals}
}

// @Summary Search products
// @Description Full-text product search against the marketplace catalog
// @Tags catalog
// @Produce json
// @Param q query string true "Search term"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 24, max 100)"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param min_rating query number false "Minimum rating (0-5)"
// @Param category_id query string false "Category filter"
// @Param brands query string false "Comma-separated brand filter"
// @Param in_stock query bool false "Only in-stock products"
// @Param sort query string false "Sort key"
// @Success 200 {object} resdto.SearchResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /products/search [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	var req reqdto.SearchProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	page, err := h.catalog.Search(c.Request.Context(), req.Query, req.ToFilters(), req.Page, req.PageSize)
	if err != nil {
		abortUpstream(c, err, "Search failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSearchPage(page))
}

// @Summary Get product
// @Description Get a product by EAN
// @Tags catalog
// @Produce json
// @Param ean path string true "Product EAN (13 digits)"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{ean} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	ean := c.Param("ean")
	if !catalog.ValidEAN(ean) {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidEAN, "Invalid EAN", nil)
		return
	}
	product, err := h.catalog.ProductByEAN(c.Request.Context(), ean)
	if err != nil {
		abortUpstream(c, err, "Product lookup failed")
		return
	}
	if product == nil {
		httperr.AbortWithError(c, http.StatusNotFound, errProductNotFound, "Product not found", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProduct(product))
}

// @Summary Get complete product
// @Description Get a product with offer, media, rating, specs and categories
// @Tags catalog
// @Produce json
// @Param ean path string true "Product EAN (13 digits)"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{ean}/complete [get]
func (h *CatalogHandler) GetComplete(c *gin.Context) {
	ean := c.Param("ean")
	if !catalog.ValidEAN(ean) {
		httperr.AbortWithError(c, http.StatusBadRequest, errInvalidEAN, "Invalid EAN", nil)
		return
	}
	product, err := h.catalog.CompleteProduct(c.Request.Context(), ean)
	if err != nil {
		abortUpstream(c, err, "Product lookup failed")
		return
	}
	if product == nil {
		httperr.AbortWithError(c, http.StatusNotFound, errProductNotFound, "Product not found", nil)
		return
	}
	// The secondary source can augment the gallery with high-res variants
	// the formal API does not expose. The primary lookup inside is served
	// from the response cache.
	if media := h.sources.ProductMedia(c.Request.Context(), ean, product.URL); len(media.Items) > 0 {
		product.Gallery = media.Items
	}
	c.JSON(http.StatusOK, resdto.FromProduct(product))
}

// @Summary Popular products
// @Description List popular products, optionally scoped to a category
// @Tags catalog
// @Produce json
// @Param category_id query string false "Category filter"
// @Param limit query int false "Max items (default 24)"
// @Success 200 {object} map[string][]resdto.ProductResponse
// @Failure 502 {object} map[string]string
// @Router /products/popular [get]
func (h *CatalogHandler) Popular(c *gin.Context) {
	limit := catalog.DefaultPageSize
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil && iv > 0 {
			limit = iv
		}
	}
	products, err := h.catalog.PopularProducts(c.Request.Context(), c.Query("category_id"), limit)
	if err != nil {
		abortUpstream(c, err, "Popular products lookup failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resdto.FromProducts(products)})
}

// @Summary List categories
// @Description List categories, optionally under a parent
// @Tags catalog
// @Produce json
// @Param parent_id query string false "Parent category"
// @Success 200 {object} map[string][]resdto.CategoryResponse
// @Failure 502 {object} map[string]string
// @Router /categories [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context(), c.Query("parent_id"))
	if err != nil {
		abortUpstream(c, err, "Category lookup failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resdto.FromCategories(categories)})
}

// @Summary Active deals
// @Description List stored products whose discount currently qualifies as a deal
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string][]resdto.DealResponse
// @Failure 500 {object} map[string]string
// @Router /deals [get]
func (h *CatalogHandler) Deals(c *gin.Context) {
	deals, err := h.deals.ActiveDeals(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load deals", nil)
		return
	}

	eans := make([]string, len(deals))
	for i, deal := range deals {
		eans[i] = deal.EAN
	}
	products, err := h.products.ByEANs(c.Request.Context(), eans)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load deal products", nil)
		return
	}
	byEAN := make(map[string]storage.ProductRecord, len(products))
	for _, product := range products {
		byEAN[product.EAN] = product
	}

	items := make([]*resdto.DealResponse, 0, len(deals))
	for _, deal := range deals {
		product, ok := byEAN[deal.EAN]
		if !ok {
			continue
		}
		items = append(items, resdto.FromDeal(deal, product))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// abortUpstream maps marketplace client errors onto HTTP statuses: caller
// mistakes surface as 400, everything else as a bad gateway.
func abortUpstream(c *gin.Context, err error, msg string) {
	status := http.StatusBadGateway
	if bol.IsKind(err, bol.KindClient) {
		status = http.StatusBadRequest
	}
	httperr.AbortWithError(c, status, err, msg, nil)
}
