package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	reqdto "productpraat/internal/handler/dto/request"
	resdto "productpraat/internal/handler/dto/response"
	"productpraat/internal/handler/httperr"
	"productpraat/internal/sourcing"
	"productpraat/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const clickInsertTimeout = 5 * time.Second

type AffiliateHandler struct {
	orchestrator *sourcing.Orchestrator
	clicks       storage.ClickStore
	logger       *slog.Logger
}

func NewAffiliateHandler(orchestrator *sourcing.Orchestrator, clicks storage.ClickStore, logger *slog.Logger) *AffiliateHandler {
	return &AffiliateHandler{
		orchestrator: orchestrator,
		clicks:       clicks,
		logger:       logger.With(slog.String("component", "affiliate")),
	}
}

// @Summary Generate affiliate link
// @Description Build a commissionable deeplink for a product URL
// @Tags affiliate
// @Produce json
// @Param url query string true "Product URL"
// @Param name query string false "Product name"
// @Success 200 {object} resdto.AffiliateLinkResponse
// @Failure 400 {object} map[string]string
// @Router /affiliate/link [get]
func (h *AffiliateHandler) Link(c *gin.Context) {
	var req reqdto.AffiliateLinkRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result := h.orchestrator.Deeplink(c.Request.Context(), req.URL, req.Name)
	c.JSON(http.StatusOK, resdto.FromDeeplink(&result))
}

// @Summary Record affiliate click
// @Description Record a click event; accepted immediately, persisted asynchronously
// @Tags affiliate
// @Accept json
// @Param request body reqdto.ClickRequest true "Click event"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string
// @Router /affiliate/click [post]
func (h *AffiliateHandler) Click(c *gin.Context) {
	var req reqdto.ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	record := storage.ClickRecord{
		ID:        uuid.New(),
		EAN:       req.EAN,
		ArticleID: req.ArticleID,
		Referrer:  req.Referrer,
		ClickedAt: time.Now(),
	}

	// The click is accepted regardless of storage outcome; the insert runs
	// detached from the request so a slow database never blocks redirects.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), clickInsertTimeout)
		defer cancel()
		if err := h.clicks.Insert(ctx, record); err != nil {
			h.logger.Warn("failed to persist affiliate click",
				slog.String("ean", record.EAN), slog.String("error", err.Error()))
		}
	}()

	c.Status(http.StatusAccepted)
}
