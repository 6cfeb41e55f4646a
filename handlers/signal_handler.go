package handlers

import (
	"log"
	"net/http"
	"sort"

	"smart-traffic-server/models"
	"smart-traffic-server/signal"
	"smart-traffic-server/utils"

	"github.com/gin-gonic/gin"
)

type SignalHandler struct {
	reporter *signal.Reporter
	rand     signal.RandSource
}

// NewSignalHandler takes the source used for random emergency picks and forecast
// noise; it must be safe for concurrent use.
func NewSignalHandler(reporter *signal.Reporter, rand signal.RandSource) *SignalHandler {
	return &SignalHandler{
		reporter: reporter,
		rand:     rand,
	}
}

func (h *SignalHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/api/optimize-signal", h.OptimizeSignal)
	router.GET("/api/signal-status", h.SignalStatus)
	router.POST("/api/congestion-forecast", h.CongestionForecast)
}

func (h *SignalHandler) OptimizeSignal(c *gin.Context) {
	log.Println("=== Received optimize-signal request ===")

	var req models.OptimizeSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("ERROR: Failed to parse request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot := signal.TrafficSnapshot(req.Traffic)

	var emergency signal.EmergencySet
	switch {
	case len(req.EmergencyDirections) > 0:
		emergency = signal.NewEmergencySet()
		for _, d := range utils.ParseDirections(req.EmergencyDirections) {
			emergency[resolveDirection(snapshot, d)] = struct{}{}
		}
	case req.EmergencyMode:
		picked := signal.PickEmergency(h.rand, snapshot)
		log.Printf("Emergency mode on, randomly flagged direction: %s", picked)
		emergency = signal.NewEmergencySet(picked)
	}

	decision, err := signal.Select(snapshot, emergency)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.OptimizeSignalResponse{
		GreenSignal: decision.GreenDirection,
		IsEmergency: decision.IsEmergency,
		Message:     decision.Message(),
	}
	if decision.EmergencyDirection != "" {
		resp.EmergencyDirection = &decision.EmergencyDirection
	}

	log.Printf("Green signal: %s (emergency=%t)", resp.GreenSignal, resp.IsEmergency)
	c.JSON(http.StatusOK, resp)
}

func (h *SignalHandler) SignalStatus(c *gin.Context) {
	status, err := h.reporter.Report()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// CongestionForecast takes the live counts as the whole body, {"north":30,...}.
func (h *SignalHandler) CongestionForecast(c *gin.Context) {
	var live map[string]int
	if err := c.ShouldBindJSON(&live); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := signal.Forecast(live, signal.DefaultHistory(), h.rand)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// resolveDirection maps a requested label onto the snapshot's own spelling
// ("north" matches a "North" key). Unmatched labels are returned as given.
func resolveDirection(snapshot signal.TrafficSnapshot, direction string) string {
	if _, ok := snapshot[direction]; ok {
		return direction
	}
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if utils.ParseDirection(k) == direction {
			return k
		}
	}
	return direction
}
