package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrmvv/partsource/models"
	"github.com/scrmvv/partsource/service"
)

type stubSearch struct {
	resp *models.SearchResponse
	err  error
	got  models.SearchRequest
}

func (s *stubSearch) Search(_ context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	s.got = req
	return s.resp, s.err
}

func newRouter(stub *stubSearch) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewSearchController(stub, zerolog.Nop()).Register(r)
	return r
}

func doGet(t *testing.T, r *gin.Engine, target string) (*httptest.ResponseRecorder, models.SearchResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)

	var body models.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSearchEndpoint_PassesNormalizedRequest(t *testing.T) {
	stub := &stubSearch{resp: models.NewSearchResponse(2)}
	r := newRouter(stub)

	w, _ := doGet(t, r, "/api/search?q=%20steel%20bolt%20&qty=2&sort=lead_time")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "steel bolt", stub.got.Query)
	assert.Equal(t, 2, stub.got.Qty)
	assert.Equal(t, models.SortByLeadTime, stub.got.Sort)
}

func TestSearchEndpoint_DefaultsAndClamps(t *testing.T) {
	cases := []struct {
		name    string
		target  string
		wantQty int
	}{
		{"qty omitted", "/api/search?q=bolt", 1},
		{"qty zero", "/api/search?q=bolt&qty=0", 1},
		{"qty negative", "/api/search?q=bolt&qty=-5", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubSearch{resp: models.NewSearchResponse(1)}
			r := newRouter(stub)

			doGet(t, r, tc.target)

			assert.Equal(t, tc.wantQty, stub.got.Qty)
		})
	}
}

func TestSearchEndpoint_UnknownSortFallsBackToPrice(t *testing.T) {
	stub := &stubSearch{resp: models.NewSearchResponse(1)}
	r := newRouter(stub)

	doGet(t, r, "/api/search?q=bolt&sort=weight")

	assert.Equal(t, models.SortByPrice, stub.got.Sort)
}

func TestSearchEndpoint_EmptyQuery(t *testing.T) {
	stub := &stubSearch{err: service.ErrEmptyQuery}
	r := newRouter(stub)

	w, body := doGet(t, r, "/api/search?q=")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "empty query", *body.Error)
	assert.Nil(t, body.Product)
	assert.Nil(t, body.Totals)
	assert.Empty(t, body.Allocation)
	assert.Empty(t, body.Offers)
	assert.Equal(t, 1, body.RequestedQty)
}

func TestSearchEndpoint_NoResults(t *testing.T) {
	stub := &stubSearch{err: service.ErrNoResults}
	r := newRouter(stub)

	w, body := doGet(t, r, "/api/search?q=unobtainium")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "nothing found", *body.Error)
}

func TestSearchEndpoint_StoreFailureIsGeneric(t *testing.T) {
	stub := &stubSearch{err: service.ErrSearchFailed}
	r := newRouter(stub)

	w, body := doGet(t, r, "/api/search?q=bolt")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "search failed", *body.Error)
}

func TestSearchEndpoint_InvalidQtyParam(t *testing.T) {
	stub := &stubSearch{resp: models.NewSearchResponse(1)}
	r := newRouter(stub)

	w, body := doGet(t, r, "/api/search?q=bolt&qty=lots")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "invalid query parameters", *body.Error)
}

func TestSearchEndpoint_SuccessPayloadPassthrough(t *testing.T) {
	resp := models.NewSearchResponse(3)
	resp.DistinctProducts = 1
	resp.Product = &models.ProductRef{SKU: "BLT-1", Name: "Bolt"}
	resp.Totals = &models.TotalsView{TotalNoVat: 3, TotalWithVat: 3.6, AllocatedQty: 3}
	resp.Remaining = 0
	stub := &stubSearch{resp: resp}
	r := newRouter(stub)

	w, body := doGet(t, r, "/api/search?q=blt-1&qty=3")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body.Error)
	require.NotNil(t, body.Product)
	assert.Equal(t, "BLT-1", body.Product.SKU)
	require.NotNil(t, body.Totals)
	assert.InDelta(t, 3.6, body.Totals.TotalWithVat, 1e-9)
	assert.Equal(t, 0, body.Remaining)
}
