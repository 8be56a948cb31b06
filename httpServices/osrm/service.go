package httpServices

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the public OSRM demo server, the same instance the
// booking form talks to. Override with OSRM_BASE_URL for self-hosted routers.
const DefaultBaseURL = "https://router.project-osrm.org"

var ErrNoRoute = errors.New("osrm: no route found")

// OSRMClient requests driving routes between two coordinate pairs.
type OSRMClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *OSRMClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OSRMClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// DrivingDistanceKm returns the driving distance in kilometers between
// (fromLat, fromLng) and (toLat, toLng). Any transport, decoding, or
// no-route condition surfaces as an error; callers decide how to degrade.
func (c *OSRMClient) DrivingDistanceKm(fromLat, fromLng, toLat, toLng float64) (float64, error) {
	// OSRM wants lng,lat ordering.
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.baseURL, fromLng, fromLat, toLng, toLat)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.New("OSRM API returned non-OK status: " + resp.Status)
	}

	var apiResp routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return 0, err
	}

	if len(apiResp.Routes) == 0 {
		return 0, ErrNoRoute
	}

	return apiResp.Routes[0].Distance / 1000, nil
}
