package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smart-traffic-server/routing"
	"smart-traffic-server/services"
	"smart-traffic-server/signal"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always returns the same index and coin value.
type fixedSource struct{ n int }

func (f fixedSource) Intn(n int) int   { return f.n % n }
func (f fixedSource) Float64() float64 { return 0.9 }

type fakeSpeed struct {
	speed services.TrafficSpeed
	err   error
}

func (f fakeSpeed) CurrentSpeed(ctx context.Context, lat, lon float64) (services.TrafficSpeed, error) {
	return f.speed, f.err
}

type fakeNearby struct {
	body json.RawMessage
	err  error
}

func (f fakeNearby) NearbyTraffic(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	return f.body, f.err
}

func newRouter(src signal.RandSource, speed SpeedProvider, nearby NearbyTrafficProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	graph := routing.DefaultRoadGraph()
	NewSignalHandler(signal.NewReporter(rand.New(rand.NewSource(1))), src).RegisterRoutes(r)
	NewRoutingHandler(graph).RegisterRoutes(r)
	NewTrafficHandler(speed, nearby, 28.6139, 77.2090).RegisterRoutes(r)
	NewHealthHandler(graph).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestOptimizeSignalNormal(t *testing.T) {
	r := newRouter(fixedSource{}, fakeSpeed{}, fakeNearby{})

	w, out := do(t, r, http.MethodPost, "/api/optimize-signal",
		`{"traffic":{"North":80,"South":20,"East":50,"West":10}}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "North", out["green_signal"])
	assert.Equal(t, false, out["is_emergency"])
	assert.Nil(t, out["emergency_direction"])
	assert.Equal(t, "Normal priority", out["message"])
}

func TestOptimizeSignalExplicitEmergency(t *testing.T) {
	r := newRouter(fixedSource{}, fakeSpeed{}, fakeNearby{})

	w, out := do(t, r, http.MethodPost, "/api/optimize-signal",
		`{"traffic":{"North":80,"South":20},"emergency_directions":["south"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "South", out["green_signal"])
	assert.Equal(t, true, out["is_emergency"])
	assert.Equal(t, "South", out["emergency_direction"])
	assert.Equal(t, "South has emergency vehicle", out["message"])
}

func TestOptimizeSignalRandomEmergency(t *testing.T) {
	// sorted keys: East, North, South, West; index 3 is West
	r := newRouter(fixedSource{n: 3}, fakeSpeed{}, fakeNearby{})

	w, out := do(t, r, http.MethodPost, "/api/optimize-signal",
		`{"traffic":{"North":80,"South":20,"East":50,"West":10},"emergency_mode":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "West", out["green_signal"])
	assert.Equal(t, true, out["is_emergency"])
	assert.Equal(t, "West", out["emergency_direction"])
}

func TestOptimizeSignalBadInput(t *testing.T) {
	r := newRouter(fixedSource{}, fakeSpeed{}, fakeNearby{})

	for _, body := range []string{
		`{"traffic":{}}`,
		`{"traffic":{"North":-3}}`,
		`{}`,
		`{"traffic":{"North":"many"}}`,
		`not json`,
	} {
		w, out := do(t, r, http.MethodPost, "/api/optimize-signal", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.NotEmpty(t, out["error"], body)
	}
}

func TestSignalStatus(t *testing.T) {
	r := newRouter(fixedSource{}, fakeSpeed{}, fakeNearby{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/signal-status", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var status map[string]signal.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.Len(t, status, 4)

	greens := 0
	for _, s := range status {
		if s.Signal == signal.Green {
			greens++
		}
		assert.GreaterOrEqual(t, s.Vehicles, signal.MinVehicles)
		assert.LessOrEqual(t, s.Vehicles, signal.MaxVehicles)
	}
	assert.Equal(t, 1, greens)
}

func TestCongestionForecast(t *testing.T) {
	r := newRouter(fixedSource{}, fakeSpeed{}, fakeNearby{})

	w, _ := do(t, r, http.MethodPost, "/api/congestion-forecast", `{"north":30,"south":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var forecast []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &forecast))
	require.Len(t, forecast, 6)

	// 30*0.6 + 8*0.4 = 21.2, 5*0.6 + 6*0.4 = 5.4, history only for east and west
	first := forecast[0]
	assert.Equal(t, "5m", first["time"])
	assert.Equal(t, float64(21), first["north"])
	assert.Equal(t, float64(5), first["south"])
	assert.Equal(t, float64(1), first["east"])
	assert.Equal(t, float64(1), first["west"])
	assert.Equal(t, "north", first["maxCongestionDirection"])
	assert.NotContains(t, first, "predicted")
	assert.Equal(t, "30m", forecast[5]["time"])
}

func TestCongestionForecastBadBody(t *testing.T) {
	r := newRouter(fixedSource{}, fakeSpeed{}, fakeNearby{})

	w, _ := do(t, r, http.MethodPost, "/api/congestion-forecast", `{"north":"lots"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoute(t *testing.T) {
	r := newRouter(fixedSource{}, fakeSpeed{}, fakeNearby{})

	w, out := do(t, r, http.MethodGet, "/api/route?from=A&to=D", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"A", "B", "C", "D"}, out["path"])
	assert.Equal(t, float64(4), out["totalCost"])

	w, out = do(t, r, http.MethodGet, "/api/route?from=D&to=A", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, out["path"])
	assert.Nil(t, out["totalCost"])

	w, out = do(t, r, http.MethodGet, "/api/route?from=A", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing from or to", out["error"])
}

func TestGeoRoute(t *testing.T) {
	r := newRouter(fixedSource{}, fakeSpeed{}, fakeNearby{})

	w, out := do(t, r, http.MethodGet, "/api/geo-route?source=28.61,77.20&destination=28.70,77.10", "")
	require.Equal(t, http.StatusOK, w.Code)
	route := out["route"].([]interface{})
	require.Len(t, route, 2)
	assert.Equal(t, 28.61, route[0].(map[string]interface{})["lat"])
	assert.Greater(t, out["distanceM"].(float64), 0.0)

	w, _ = do(t, r, http.MethodGet, "/api/geo-route?source=28.61,77.20", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/geo-route?source=abc&destination=28.70,77.10", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrafficSpeed(t *testing.T) {
	r := newRouter(fixedSource{}, fakeSpeed{speed: services.TrafficSpeed{CurrentSpeed: 18, FreeFlowSpeed: 40, Confidence: 1}}, fakeNearby{})

	w, out := do(t, r, http.MethodGet, "/api/traffic-speed", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(18), out["currentSpeed"])
	assert.Equal(t, float64(40), out["freeFlowSpeed"])
}

func TestUpstreamErrorsAreEchoed(t *testing.T) {
	upstream := fmt.Errorf("%w: tomtom returned status 403", services.ErrUpstream)
	r := newRouter(fixedSource{}, fakeSpeed{err: upstream}, fakeNearby{err: upstream})

	for _, path := range []string{"/api/traffic-speed", "/api/live-traffic"} {
		w, out := do(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Contains(t, out["error"], "403", path)
	}
}

func TestLiveTraffic(t *testing.T) {
	r := newRouter(fixedSource{}, fakeSpeed{}, fakeNearby{body: json.RawMessage(`{"suggestedLocations":[]}`)})

	w, out := do(t, r, http.MethodGet, "/api/live-traffic", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, out["suggestedLocations"])
}

func TestHealth(t *testing.T) {
	r := newRouter(fixedSource{}, fakeSpeed{}, fakeNearby{})

	w, out := do(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", out["status"])
	assert.Equal(t, float64(4), out["graphNodes"])
}
