package handlers

import (
	"errors"
	"log"
	"net/http"

	"smart-traffic-server/signal"

	"github.com/gin-gonic/gin"
)

// respondError echoes err as {"error": ...}; bad input is a 400, the rest 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, signal.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(status, gin.H{"error": err.Error()})
}
