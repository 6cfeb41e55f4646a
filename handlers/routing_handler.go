package handlers

import (
	"log"
	"net/http"

	"smart-traffic-server/routing"

	"github.com/gin-gonic/gin"
)

type RoutingHandler struct {
	graph *routing.Graph
}

func NewRoutingHandler(graph *routing.Graph) *RoutingHandler {
	return &RoutingHandler{
		graph: graph,
	}
}

func (h *RoutingHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/api/route", h.ShortestRoute)
	router.GET("/api/geo-route", h.GeoRoute)
}

func (h *RoutingHandler) ShortestRoute(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing from or to"})
		return
	}

	result := h.graph.ShortestPath(from, to)
	if result.Reachable() {
		log.Printf("Route %s -> %s: %v (cost %d)", from, to, result.Path, *result.TotalCost)
	} else {
		log.Printf("Route %s -> %s: unreachable", from, to)
	}
	c.JSON(http.StatusOK, result)
}

func (h *RoutingHandler) GeoRoute(c *gin.Context) {
	source := c.Query("source")
	destination := c.Query("destination")
	if source == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing source or destination"})
		return
	}

	src, err := routing.ParseCoordinate(source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dst, err := routing.ParseCoordinate(destination)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, routing.PrepareGeoResponse(src, dst))
}
