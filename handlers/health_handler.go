package handlers

import (
	"log"
	"net/http"
	"time"

	"smart-traffic-server/middleware"
	"smart-traffic-server/models"
	"smart-traffic-server/routing"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/mem"
)

type HealthHandler struct {
	started time.Time
	graph   *routing.Graph
}

func NewHealthHandler(graph *routing.Graph) *HealthHandler {
	return &HealthHandler{
		started: time.Now(),
		graph:   graph,
	}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	resp := models.HealthResponse{
		Status:     "healthy",
		UptimeSec:  time.Since(h.started).Seconds(),
		GraphNodes: len(h.graph.Edges),
		RequestID:  middleware.GetRequestID(c),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		resp.MemUsedPercent = &vm.UsedPercent
	} else {
		log.Printf("Warning: could not read memory stats: %v", err)
	}

	c.JSON(http.StatusOK, resp)
}
