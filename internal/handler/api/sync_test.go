//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"productpraat/internal/catalog"
	"productpraat/internal/handler/api"
	resdto "productpraat/internal/handler/dto/response"
	"productpraat/internal/handler/middleware"
	"productpraat/internal/pkg/clock"
	"productpraat/internal/pkg/config"
	"productpraat/internal/pkg/jwt"
	"productpraat/internal/storage"
	"productpraat/internal/syncer"
	commonhttp "productpraat/tests/common/httptest"
	storagemock "productpraat/tests/mock/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type noopCatalog struct{}

func (noopCatalog) Search(context.Context, string, catalog.SearchFilters, int, int) (*catalog.SearchPage, error) {
	return &catalog.SearchPage{}, nil
}
func (noopCatalog) PopularProducts(context.Context, string, int) ([]catalog.Product, error) {
	return nil, nil
}
func (noopCatalog) BestOffer(context.Context, string) (*catalog.Offer, error) { return nil, nil }
func (noopCatalog) Rating(context.Context, string) (*catalog.RatingSummary, error) {
	return nil, nil
}

type SyncHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockProducts *storagemock.MockProductStore
	mockDeals    *storagemock.MockDealStore
	mockJobs     *storagemock.MockJobStore
	adminToken   string
}

func (s *SyncHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockProducts = storagemock.NewMockProductStore(s.mockCtrl)
	s.mockDeals = storagemock.NewMockDealStore(s.mockCtrl)
	s.mockJobs = storagemock.NewMockJobStore(s.mockCtrl)

	engine := syncer.NewEngine(
		noopCatalog{}, s.mockProducts, s.mockDeals, s.mockJobs,
		config.SyncConfig{BatchLimit: 50, DealThresholdPct: 15},
		clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		testLogger(),
	)
	handler := api.NewSyncHandler(engine, s.mockJobs)

	tokens := jwt.NewService("test-secret-key", time.Hour)
	token, err := tokens.GenerateToken(uuid.New(), middleware.RoleAdmin)
	s.Require().NoError(err)
	s.adminToken = token

	authMiddleware := middleware.NewAuthMiddleware(tokens)
	sync := s.router.Group("/sync")
	sync.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	sync.POST("/:type", handler.Trigger)
	sync.GET("/jobs", handler.ListJobs)
	sync.GET("/jobs/:id", handler.GetJob)
}

func (s *SyncHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSyncHandlerSuite(t *testing.T) {
	suite.Run(t, new(SyncHandlerTestSuite))
}

func (s *SyncHandlerTestSuite) TestTrigger_RequiresToken() {
	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/sync/deal-detection", nil, "")

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *SyncHandlerTestSuite) TestTrigger_RejectsNonAdminRole() {
	tokens := jwt.NewService("test-secret-key", time.Hour)
	viewerToken, err := tokens.GenerateToken(uuid.New(), "viewer")
	s.Require().NoError(err)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/sync/deal-detection", nil, viewerToken)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *SyncHandlerTestSuite) TestTrigger_UnknownType() {
	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/sync/everything", nil, s.adminToken)

	commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Unknown job type")
}

func (s *SyncHandlerTestSuite) TestTrigger_SearchSyncRequiresTerm() {
	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/sync/search-sync",
		map[string]any{}, s.adminToken)

	commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "search-sync requires a term")
}

func (s *SyncHandlerTestSuite) TestTrigger_DealDetection() {
	s.mockJobs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockJobs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	s.mockProducts.EXPECT().List(gomock.Any(), gomock.Any()).Return([]storage.ProductRecord{
		{EAN: "1111111111111", DiscountPct: 25},
	}, nil)
	s.mockDeals.EXPECT().ActiveDeals(gomock.Any()).Return(nil, nil)
	s.mockDeals.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Return(nil)
	s.mockDeals.EXPECT().DeactivateExcept(gomock.Any(), []string{"1111111111111"}, gomock.Any()).Return(0, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/sync/deal-detection", nil, s.adminToken)

	var resp resdto.SyncJobResponse
	commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal("deal-detection", resp.Type)
	s.Equal("completed", resp.Status)
	s.Equal(1, resp.ItemsProcessed)
}

func (s *SyncHandlerTestSuite) TestGetJob_NotFound() {
	id := uuid.New()
	s.mockJobs.EXPECT().ByID(gomock.Any(), id).
		Return(nil, storage.WrapRepoErr("sync job not found", nil, storage.KindNotFound))

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/sync/jobs/"+id.String(), nil, s.adminToken)

	commonhttp.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Not found")
}

func (s *SyncHandlerTestSuite) TestListJobs() {
	completed := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	s.mockJobs.EXPECT().Recent(gomock.Any(), 20).Return([]storage.SyncJobRecord{
		{
			ID:             uuid.New(),
			Type:           storage.JobPriceUpdate,
			Status:         storage.JobCompleted,
			StartedAt:      completed.Add(-time.Minute),
			CompletedAt:    &completed,
			ItemsProcessed: 10,
		},
	}, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/sync/jobs", nil, s.adminToken)

	var resp struct {
		Jobs []*resdto.SyncJobResponse `json:"jobs"`
	}
	commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Require().Len(resp.Jobs, 1)
	s.Equal("price-update", resp.Jobs[0].Type)
	s.Equal(10, resp.Jobs[0].ItemsProcessed)
}
