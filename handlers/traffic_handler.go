package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"smart-traffic-server/services"

	"github.com/gin-gonic/gin"
)

type SpeedProvider interface {
	CurrentSpeed(ctx context.Context, lat, lon float64) (services.TrafficSpeed, error)
}

type NearbyTrafficProvider interface {
	NearbyTraffic(ctx context.Context, lat, lon float64) (json.RawMessage, error)
}

// TrafficHandler proxies the third-party feeds for a fixed monitoring point.
type TrafficHandler struct {
	speed  SpeedProvider
	nearby NearbyTrafficProvider
	lat    float64
	lon    float64
}

func NewTrafficHandler(speed SpeedProvider, nearby NearbyTrafficProvider, lat, lon float64) *TrafficHandler {
	return &TrafficHandler{
		speed:  speed,
		nearby: nearby,
		lat:    lat,
		lon:    lon,
	}
}

func (h *TrafficHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/api/traffic-speed", h.TrafficSpeed)
	router.GET("/api/live-traffic", h.LiveTraffic)
}

func (h *TrafficHandler) TrafficSpeed(c *gin.Context) {
	speed, err := h.speed.CurrentSpeed(c.Request.Context(), h.lat, h.lon)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, speed)
}

func (h *TrafficHandler) LiveTraffic(c *gin.Context) {
	body, err := h.nearby.NearbyTraffic(c.Request.Context(), h.lat, h.lon)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}
