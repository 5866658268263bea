//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"productpraat/internal/handler/api"
	resdto "productpraat/internal/handler/dto/response"
	"productpraat/internal/storage"
	commonhttp "productpraat/tests/common/httptest"
	storagemock "productpraat/tests/mock/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CatalogHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockProducts *storagemock.MockProductStore
	mockDeals    *storagemock.MockDealStore
}

func (s *CatalogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockProducts = storagemock.NewMockProductStore(s.mockCtrl)
	s.mockDeals = storagemock.NewMockDealStore(s.mockCtrl)

	handler := api.NewCatalogHandler(nil, nil, s.mockProducts, s.mockDeals)

	s.router.GET("/products/:ean", handler.Get)
	s.router.GET("/deals", handler.Deals)
}

func (s *CatalogHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) TestGet_InvalidEAN() {
	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/products/not-an-ean", nil, "")

	commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid EAN")
}

func (s *CatalogHandlerTestSuite) TestDeals_JoinsProductData() {
	started := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	s.mockDeals.EXPECT().ActiveDeals(gomock.Any()).Return([]storage.DealRecord{
		{EAN: "1111111111111", DiscountPct: 20, Active: true, StartedAt: started},
		{EAN: "9999999999999", DiscountPct: 30, Active: true, StartedAt: started},
	}, nil)
	s.mockProducts.EXPECT().ByEANs(gomock.Any(), []string{"1111111111111", "9999999999999"}).
		Return([]storage.ProductRecord{
			{EAN: "1111111111111", Title: "Philips Hue", Price: 100, DiscountPrice: 80, URL: "https://www.bol.com/nl/p/1111111111111"},
		}, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/deals", nil, "")

	var resp struct {
		Items []*resdto.DealResponse `json:"items"`
	}
	commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	// the deal without a stored product is dropped
	s.Require().Len(resp.Items, 1)
	s.Equal("Philips Hue", resp.Items[0].Title)
	s.Equal(20.0, resp.Items[0].DiscountPct)
	s.Equal(started.Unix(), resp.Items[0].StartedAt)
}

func (s *CatalogHandlerTestSuite) TestDeals_StoreFailure() {
	s.mockDeals.EXPECT().ActiveDeals(gomock.Any()).
		Return(nil, storage.WrapRepoErr("failed to list active deals", nil))

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/deals", nil, "")

	commonhttp.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "Failed to load deals")
}
