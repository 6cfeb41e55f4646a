package main

import (
	"log"
	"math/rand"
	"time"

	"smart-traffic-server/handlers"
	"smart-traffic-server/middleware"
	"smart-traffic-server/routing"
	"smart-traffic-server/services"
	"smart-traffic-server/signal"
	"smart-traffic-server/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// loadRoadGraph builds the road network once; handlers share it read-only.
func loadRoadGraph(path string) (*routing.Graph, error) {
	if path == "" {
		log.Println("No ROAD_GRAPH_FILE set, using built-in demo road graph")
		return routing.DefaultRoadGraph(), nil
	}
	return routing.LoadGraph(path)
}

func setupRouter(cfg Config, graph *routing.Graph) *gin.Engine {
	// RequestID does the access logging
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"*"}
	r.Use(cors.New(config))
	r.Use(middleware.RequestID())

	seed := time.Now().UnixNano()
	reporter := signal.NewReporter(
		rand.New(rand.NewSource(seed)),
		utils.ParseDirections(cfg.SignalDirections)...,
	)
	picker := signal.NewLockedSource(rand.New(rand.NewSource(seed + 1)))

	tomtom := services.NewTomTomService(cfg.TomTomBaseURL, cfg.TomTomAPIKey, cfg.UpstreamTimeout)
	mapmyindia := services.NewMapmyIndiaService(
		cfg.MapmyIndiaTokenURL,
		cfg.MapmyIndiaSearchURL,
		cfg.MapmyIndiaClientID,
		cfg.MapmyIndiaClientSecret,
		cfg.UpstreamTimeout,
	)

	handlers.NewSignalHandler(reporter, picker).RegisterRoutes(r)
	handlers.NewRoutingHandler(graph).RegisterRoutes(r)
	handlers.NewTrafficHandler(tomtom, mapmyindia, cfg.TrafficLat, cfg.TrafficLon).RegisterRoutes(r)
	handlers.NewHealthHandler(graph).RegisterRoutes(r)

	return r
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default environment variables")
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	log.Println("Loading road graph...")
	graph, err := loadRoadGraph(cfg.RoadGraphFile)
	if err != nil {
		log.Fatalf("Failed to load road graph: %v", err)
	}
	log.Printf("Road graph ready: %d nodes, %d edges", len(graph.Edges), graph.EdgeCount())

	if cfg.TomTomAPIKey == "" {
		log.Println("Warning: TOMTOM_API_KEY not set, /api/traffic-speed will return errors")
	}
	if cfg.MapmyIndiaClientID == "" || cfg.MapmyIndiaClientSecret == "" {
		log.Println("Warning: MapmyIndia credentials not set, /api/live-traffic will return errors")
	}

	r := setupRouter(cfg, graph)

	log.Printf("Traffic Server starting on %s", cfg.ListenAddr)

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
