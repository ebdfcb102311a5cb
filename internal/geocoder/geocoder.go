package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"devcamper/internal/domain"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Location is one geocoding match.
type Location struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	Street           string
	City             string
	State            string
	Zipcode          string
	Country          string
}

// Geocoder resolves a free-form address or postal code to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]Location, error)
}

// MapQuest talks to the MapQuest geocoding API.
type MapQuest struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewMapQuest builds a client whose transport retries up to retryMax times.
func NewMapQuest(baseURL, apiKey string, retryMax int, log zerolog.Logger) *MapQuest {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = retryMax
	retryClient.Logger = leveledLogger{log: log.With().Str("module", "geocoder").Logger()}
	retryClient.HTTPClient = &http.Client{Timeout: 10 * time.Second}

	return &MapQuest{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: retryClient.StandardClient(),
	}
}

type mapQuestResponse struct {
	Info struct {
		StatusCode int      `json:"statuscode"`
		Messages   []string `json:"messages"`
	} `json:"info"`
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			AdminArea5 string `json:"adminArea5"`
			AdminArea3 string `json:"adminArea3"`
			AdminArea1 string `json:"adminArea1"`
			PostalCode string `json:"postalCode"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

func (m *MapQuest) Geocode(ctx context.Context, address string) ([]Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, domain.NewValidationError("Please add an address")
	}

	q := url.Values{}
	q.Set("key", m.APIKey)
	q.Set("location", address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode %q: unexpected status %d", address, resp.StatusCode)
	}

	var body mapQuestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geocode %q: decode response: %w", address, err)
	}
	if body.Info.StatusCode != 0 {
		return nil, fmt.Errorf("geocode %q: provider status %d %v", address, body.Info.StatusCode, body.Info.Messages)
	}

	out := []Location{}
	for _, r := range body.Results {
		for _, l := range r.Locations {
			loc := Location{
				Latitude:  l.LatLng.Lat,
				Longitude: l.LatLng.Lng,
				Street:    l.Street,
				City:      l.AdminArea5,
				State:     l.AdminArea3,
				Zipcode:   l.PostalCode,
				Country:   l.AdminArea1,
			}
			loc.FormattedAddress = formatAddress(loc)
			out = append(out, loc)
		}
	}
	if len(out) == 0 {
		return nil, domain.NewStatusError(http.StatusNotFound, "Could not geocode %s", address)
	}
	return out, nil
}

func formatAddress(l Location) string {
	parts := []string{}
	for _, p := range []string{l.Street, l.City, strings.TrimSpace(l.State + " " + l.Zipcode), l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// leveledLogger routes retryablehttp diagnostics into zerolog.
type leveledLogger struct {
	log zerolog.Logger
}

func (l leveledLogger) Error(msg string, kv ...any) { l.event(l.log.Error(), msg, kv) }
func (l leveledLogger) Warn(msg string, kv ...any)  { l.event(l.log.Warn(), msg, kv) }
func (l leveledLogger) Info(msg string, kv ...any)  { l.event(l.log.Debug(), msg, kv) }
func (l leveledLogger) Debug(msg string, kv ...any) { l.event(l.log.Trace(), msg, kv) }

func (l leveledLogger) event(e *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		if key == "url" {
			// the URL carries the API key
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	e.Msg(msg)
}
