package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/levigross/grequests"
)

const DefaultTomTomBaseURL = "https://api.tomtom.com"

// TomTom flow segment response structures
type tomTomFlowResponse struct {
	FlowSegmentData struct {
		CurrentSpeed  float64 `json:"currentSpeed"`
		FreeFlowSpeed float64 `json:"freeFlowSpeed"`
		Confidence    float64 `json:"confidence"`
	} `json:"flowSegmentData"`
}

type TrafficSpeed struct {
	CurrentSpeed  float64 `json:"currentSpeed"`  // km/h
	FreeFlowSpeed float64 `json:"freeFlowSpeed"` // km/h
	Confidence    float64 `json:"confidence"`
}

type TomTomService struct {
	baseURL string
	apiKey  string
	timeout time.Duration
}

func NewTomTomService(baseURL, apiKey string, timeout time.Duration) *TomTomService {
	if baseURL == "" {
		baseURL = DefaultTomTomBaseURL
	}
	return &TomTomService{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
	}
}

// CurrentSpeed fetches real-time flow data for the road segment closest to the point.
func (ts *TomTomService) CurrentSpeed(ctx context.Context, lat, lon float64) (TrafficSpeed, error) {
	if ts.apiKey == "" {
		return TrafficSpeed{}, fmt.Errorf("tomtom: %w", ErrMissingCredentials)
	}

	requestURL := ts.baseURL + "/traffic/services/4/flowSegmentData/absolute/10/json"
	log.Printf("TomTom Request: %s point=%.4f,%.4f", requestURL, lat, lon)

	resp, err := grequests.Get(requestURL, &grequests.RequestOptions{
		Params: map[string]string{
			"point": fmt.Sprintf("%.4f,%.4f", lat, lon),
			"key":   ts.apiKey,
		},
		RequestTimeout: ts.timeout,
		Context:        ctx,
	})
	if err != nil {
		return TrafficSpeed{}, fmt.Errorf("%w: tomtom request: %v", ErrUpstream, err)
	}
	defer resp.Close()

	if !resp.Ok {
		return TrafficSpeed{}, fmt.Errorf("%w: tomtom returned status %d", ErrUpstream, resp.StatusCode)
	}

	var flow tomTomFlowResponse
	if err := resp.JSON(&flow); err != nil {
		return TrafficSpeed{}, fmt.Errorf("%w: failed to parse tomtom response: %v", ErrUpstream, err)
	}

	return TrafficSpeed{
		CurrentSpeed:  flow.FlowSegmentData.CurrentSpeed,
		FreeFlowSpeed: flow.FlowSegmentData.FreeFlowSpeed,
		Confidence:    flow.FlowSegmentData.Confidence,
	}, nil
}
