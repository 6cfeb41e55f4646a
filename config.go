package main

import (
	"fmt"
	"time"

	"github.com/vrischmann/envconfig"
)

type Config struct {
	ListenAddr    string `envconfig:"LISTEN_ADDR,default=:5000"`
	GinMode       string `envconfig:"GIN_MODE,optional"`
	RoadGraphFile string `envconfig:"ROAD_GRAPH_FILE,optional"`

	// Monitoring point for the third-party feeds, central Delhi by default
	TrafficLat float64 `envconfig:"TRAFFIC_LAT,default=28.6139"`
	TrafficLon float64 `envconfig:"TRAFFIC_LON,default=77.2090"`

	SignalDirections []string `envconfig:"SIGNAL_DIRECTIONS,optional"`

	TomTomAPIKey  string `envconfig:"TOMTOM_API_KEY,optional"`
	TomTomBaseURL string `envconfig:"TOMTOM_BASE_URL,optional"`

	MapmyIndiaClientID     string `envconfig:"MAPMYINDIA_CLIENT_ID,optional"`
	MapmyIndiaClientSecret string `envconfig:"MAPMYINDIA_CLIENT_SECRET,optional"`
	MapmyIndiaTokenURL     string `envconfig:"MAPMYINDIA_TOKEN_URL,optional"`
	MapmyIndiaSearchURL    string `envconfig:"MAPMYINDIA_SEARCH_URL,optional"`

	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT,default=10s"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Init(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
