package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/levigross/grequests"
)

const (
	DefaultMapmyIndiaTokenURL  = "https://outpost.mapmyindia.com/api/security/oauth/token"
	DefaultMapmyIndiaSearchURL = "https://atlas.mapmyindia.com/api/places/nearby/json"
)

type mapmyIndiaToken struct {
	AccessToken string `json:"access_token"`
}

// MapmyIndiaService looks up traffic points of interest around a location.
// Every lookup performs a fresh client-credentials token exchange.
type MapmyIndiaService struct {
	tokenURL     string
	searchURL    string
	clientID     string
	clientSecret string
	timeout      time.Duration
}

func NewMapmyIndiaService(tokenURL, searchURL, clientID, clientSecret string, timeout time.Duration) *MapmyIndiaService {
	if tokenURL == "" {
		tokenURL = DefaultMapmyIndiaTokenURL
	}
	if searchURL == "" {
		searchURL = DefaultMapmyIndiaSearchURL
	}
	return &MapmyIndiaService{
		tokenURL:     tokenURL,
		searchURL:    searchURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		timeout:      timeout,
	}
}

func (ms *MapmyIndiaService) AccessToken(ctx context.Context) (string, error) {
	if ms.clientID == "" || ms.clientSecret == "" {
		return "", fmt.Errorf("mapmyindia: %w", ErrMissingCredentials)
	}

	resp, err := grequests.Post(ms.tokenURL, &grequests.RequestOptions{
		Data: map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     ms.clientID,
			"client_secret": ms.clientSecret,
		},
		RequestTimeout: ms.timeout,
		Context:        ctx,
	})
	if err != nil {
		return "", fmt.Errorf("%w: mapmyindia token request: %v", ErrUpstream, err)
	}
	defer resp.Close()

	if !resp.Ok {
		return "", fmt.Errorf("%w: mapmyindia token endpoint returned status %d", ErrUpstream, resp.StatusCode)
	}

	var token mapmyIndiaToken
	if err := resp.JSON(&token); err != nil {
		return "", fmt.Errorf("%w: failed to parse mapmyindia token: %v", ErrUpstream, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: mapmyindia returned an empty access token", ErrUpstream)
	}
	return token.AccessToken, nil
}

// NearbyTraffic returns the raw nearby-search document for "traffic" around the point.
func (ms *MapmyIndiaService) NearbyTraffic(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	token, err := ms.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("MapmyIndia Request: %s refLocation=%.4f,%.4f", ms.searchURL, lat, lon)

	resp, err := grequests.Get(ms.searchURL, &grequests.RequestOptions{
		Params: map[string]string{
			"keywords":    "traffic",
			"refLocation": fmt.Sprintf("%.4f,%.4f", lat, lon),
		},
		Headers:        map[string]string{"Authorization": "Bearer " + token},
		RequestTimeout: ms.timeout,
		Context:        ctx,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: mapmyindia search request: %v", ErrUpstream, err)
	}
	defer resp.Close()

	if !resp.Ok {
		return nil, fmt.Errorf("%w: mapmyindia search returned status %d", ErrUpstream, resp.StatusCode)
	}

	var body json.RawMessage
	if err := resp.JSON(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to parse mapmyindia response: %v", ErrUpstream, err)
	}
	return body, nil
}
