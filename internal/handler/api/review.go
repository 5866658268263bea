package api

import (
	"net/http"

	"productpraat/internal/catalog"
	resdto "productpraat/internal/handler/dto/response"
	"productpraat/internal/handler/httperr"
	"productpraat/internal/review"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	catalog   *catalog.Service
	generator *review.Generator
}

func NewReviewHandler(svc *catalog.Service, generator *review.Generator) *ReviewHandler {
	return &ReviewHandler{catalog: svc, generator: generator}
}

// @Summary Generate product review
// @Description Generate an editorial review for a product from its catalog data
// @Tags review
// @Produce json
// @Param ean path string true "Product EAN (13 digits)"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /products/{ean}/review [get]
func (h *ReviewHandler) Generate(c *gin.Context) {
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
	rev, err := h.generator.ProductReview(c.Request.Context(), *product)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Review generation failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReview(rev))
}
