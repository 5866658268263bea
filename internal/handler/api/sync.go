package api

import (
	"net/http"
	"strconv"

	reqdto "productpraat/internal/handler/dto/request"
	resdto "productpraat/internal/handler/dto/response"
	"productpraat/internal/handler/httperr"
	"productpraat/internal/storage"
	"productpraat/internal/syncer"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SyncHandler struct {
	engine *syncer.Engine
	jobs   storage.JobStore
}

func NewSyncHandler(engine *syncer.Engine, jobs storage.JobStore) *SyncHandler {
	return &SyncHandler{engine: engine, jobs: jobs}
}

// @Summary Trigger sync job
// @Description Run a reconciliation job of the given type synchronously
// @Tags sync
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param type path string true "Job type" Enums(search-sync, popular-products, price-update, deal-detection, rating-update)
// @Param request body reqdto.TriggerSyncRequest false "Job parameters"
// @Success 200 {object} resdto.SyncJobResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /sync/{type} [post]
func (h *SyncHandler) Trigger(c *gin.Context) {
	var req reqdto.TriggerSyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}

	var job storage.SyncJobRecord
	switch storage.JobType(c.Param("type")) {
	case storage.JobSearchSync:
		if req.Term == "" {
			httperr.AbortWithError(c, http.StatusBadRequest, errUnknownJobType, "search-sync requires a term", nil)
			return
		}
		job = h.engine.SyncFromSearch(c.Request.Context(), req.Term)
	case storage.JobPopularProducts:
		job = h.engine.SyncPopularProducts(c.Request.Context(), req.CategoryID)
	case storage.JobPriceUpdate:
		job = h.engine.UpdatePricesAndStock(c.Request.Context())
	case storage.JobDealDetection:
		job = h.engine.DetectDeals(c.Request.Context())
	case storage.JobRatingUpdate:
		job = h.engine.UpdateRatings(c.Request.Context())
	default:
		httperr.AbortWithError(c, http.StatusBadRequest, errUnknownJobType, "Unknown job type", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSyncJob(&job))
}

// @Summary Get sync job
// @Description Get a sync job record by ID
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} resdto.SyncJobResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sync/jobs/{id} [get]
func (h *SyncHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	job, err := h.jobs.ByID(c.Request.Context(), id)
	if err != nil {
		if storage.IsKind(err, storage.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load job", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSyncJob(job))
}

// @Summary List sync jobs
// @Description List recent sync jobs, newest first
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Success 200 {object} map[string][]resdto.SyncJobResponse
// @Failure 500 {object} map[string]string
// @Router /sync/jobs [get]
func (h *SyncHandler) ListJobs(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil && iv > 0 {
			limit = iv
		}
	}
	jobs, err := h.jobs.Recent(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list jobs", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": resdto.FromSyncJobs(jobs)})
}
