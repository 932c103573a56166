package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/mraditya/chmatrix/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubMatrixService struct {
	err error
}

func (s *stubMatrixService) Table(sources, destinations []datastructure.Coordinate, withDistances bool) (
	[][]*float64, [][]*float64, []datastructure.Coordinate, []datastructure.Coordinate, error) {
	if s.err != nil {
		return nil, nil, nil, nil, s.err
	}
	durations := make([][]*float64, len(sources))
	for i := range durations {
		durations[i] = make([]*float64, len(destinations))
		for j := range durations[i] {
			d := 60.0
			durations[i][j] = &d
		}
	}
	return durations, nil, sources, destinations, nil
}

type stubRoutingService struct{}

func (s *stubRoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64) (float64, float64, string, error) {
	return 120.5, 1500.0, "encoded", nil
}

func newTestAPI(matrixErr error) *routingAPI {
	return New(&stubMatrixService{err: matrixErr}, &stubRoutingService{}, zap.NewNop())
}

func TestTableHandlerOK(t *testing.T) {
	api := newTestAPI(nil)

	body := `{"sources":[{"lat":-7.79,"lon":110.36}],"destinations":[{"lat":-7.78,"lon":110.35},{"lat":-7.77,"lon":110.34}]}`
	r := httptest.NewRequest(http.MethodPost, "/api/table", strings.NewReader(body))
	w := httptest.NewRecorder()

	api.table(w, r, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data tableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Durations, 1)
	require.Len(t, resp.Data.Durations[0], 2)
	assert.Equal(t, 60.0, *resp.Data.Durations[0][0])
	assert.Len(t, resp.Data.SnappedSources, 1)
	assert.Len(t, resp.Data.SnappedDestinations, 2)
}

func TestTableHandlerRejectsEmptySources(t *testing.T) {
	api := newTestAPI(nil)

	body := `{"sources":[],"destinations":[{"lat":-7.78,"lon":110.35}]}`
	r := httptest.NewRequest(http.MethodPost, "/api/table", strings.NewReader(body))
	w := httptest.NewRecorder()

	api.table(w, r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTableHandlerRejectsMalformedBody(t *testing.T) {
	api := newTestAPI(nil)

	r := httptest.NewRequest(http.MethodPost, "/api/table", strings.NewReader(`{"sources":`))
	w := httptest.NewRecorder()

	api.table(w, r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTableHandlerMapsNotFound(t *testing.T) {
	api := newTestAPI(util.WrapErrorf(nil, util.ErrNotFound, "no road segment nearby"))

	body := `{"sources":[{"lat":-7.79,"lon":110.36}],"destinations":[{"lat":-7.78,"lon":110.35}]}`
	r := httptest.NewRequest(http.MethodPost, "/api/table", strings.NewReader(body))
	w := httptest.NewRecorder()

	api.table(w, r, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShortestPathHandlerOK(t *testing.T) {
	api := newTestAPI(nil)

	r := httptest.NewRequest(http.MethodGet,
		"/api/computeRoutes?origin_lat=-7.79&origin_lon=110.36&destination_lat=-7.78&destination_lon=110.35", nil)
	w := httptest.NewRecorder()

	api.shortestPath(w, r, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data shortestPathResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 120.5, resp.Data.Eta)
	assert.Equal(t, 1500.0, resp.Data.Dist)
	assert.Equal(t, "encoded", resp.Data.Path)
}

func TestShortestPathHandlerMissingParams(t *testing.T) {
	api := newTestAPI(nil)

	r := httptest.NewRequest(http.MethodGet, "/api/computeRoutes?origin_lat=-7.79", nil)
	w := httptest.NewRecorder()

	api.shortestPath(w, r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
