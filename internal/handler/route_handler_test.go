package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/provider"
	"github.com/saferoute/saferoute-backend-go/internal/safety"
	"github.com/saferoute/saferoute-backend-go/internal/service"
	"github.com/saferoute/saferoute-backend-go/pkg/response"
)

type stubRouting struct {
	candidates []models.RouteCandidate
	err        error
}

func (s *stubRouting) GetRoutes(context.Context, float64, float64, float64, float64) ([]models.RouteCandidate, error) {
	return s.candidates, s.err
}

type stubSignal struct {
	name  string
	def   float64
	score float64
}

func (s *stubSignal) Name() string { return s.name }

func (s *stubSignal) DefaultScore() float64 { return s.def }
func (s *stubSignal) Score(context.Context, [][]float64) (float64, error) {
	return s.score, nil
}

func routeTestRouter(routing service.RoutingProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	evaluator := safety.NewEvaluator(
		&stubSignal{name: "traffic", def: 75, score: 80},
		&stubSignal{name: "cctv", def: 50, score: 60},
		&stubSignal{name: "crowd", def: 50, score: 70},
		time.Second, logger,
	)
	h := NewRouteHandler(service.NewRouteService(routing, evaluator, logger))

	router := gin.New()
	router.POST("/api/v1/route", h.SafestRoute)
	return router
}

func postRoute(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRouteHandler_SafestRoute(t *testing.T) {
	routing := &stubRouting{candidates: []models.RouteCandidate{{
		Geometry: models.Geometry{
			Type:        "LineString",
			Coordinates: [][]float64{{127.0, 37.5}, {127.01, 37.51}},
		},
		DistanceMeters: 1500,
		DurationSecs:   1080,
	}}}

	w := postRoute(t, routeTestRouter(routing),
		`{"start_lon": 127.0, "start_lat": 37.5, "end_lon": 127.01, "end_lat": 37.51}`)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 0, envelope.Code)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "safest", data["route_type"])
	assert.Equal(t, 71.0, data["safety_score"])
	assert.Equal(t, 1.5, data["distance"])
	assert.Equal(t, 18.0, data["duration"])
}

func TestRouteHandler_InvalidBody(t *testing.T) {
	w := postRoute(t, routeTestRouter(&stubRouting{}), `{"start_lon": "not a number"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouteHandler_NoRoute(t *testing.T) {
	w := postRoute(t, routeTestRouter(&stubRouting{err: provider.ErrNoRoute}),
		`{"start_lon": 127.0, "start_lat": 37.5, "end_lon": 127.01, "end_lat": 37.51}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No routes found")
}

func TestRouteHandler_RoutingDown(t *testing.T) {
	w := postRoute(t, routeTestRouter(&stubRouting{err: provider.ErrRouteUnavailable}),
		`{"start_lon": 127.0, "start_lat": 37.5, "end_lon": 127.01, "end_lat": 37.51}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
