// Package geocoder resolves street addresses to coordinates.
package geocoder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// posPath locates "lon lat" of the best match in a Yandex geocoder response.
const posPath = "response.GeoObjectCollection.featureMember.0.GeoObject.Point.pos"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder looks up coordinates for an address. A nil result with a nil
// error means the address could not be resolved.
type Geocoder interface {
	Geocode(ctx context.Context, city, address string) (*Coordinates, error)
}

// YandexClient calls the Yandex HTTP geocoder.
type YandexClient struct {
	apiKey     string
	baseURL    string
	lang       string
	httpClient *http.Client
	logger     *logrus.Entry
}

// NewYandexClient creates a client. With an empty apiKey every lookup returns nil.
func NewYandexClient(apiKey, baseURL, lang string, timeout time.Duration, logger *logrus.Logger) *YandexClient {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &YandexClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		lang:    lang,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.WithField("component", "geocoder"),
	}
}

// Geocode queries "<city>, <address>".
func (c *YandexClient) Geocode(ctx context.Context, city, address string) (*Coordinates, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("geocode", fmt.Sprintf("%s, %s", city, address))
	params.Set("format", "json")
	if c.lang != "" {
		params.Set("lang", c.lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocoder request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read geocoder response: %w", err)
	}

	coords, err := parsePosition(body)
	if err != nil {
		return nil, err
	}
	if coords == nil {
		c.logger.WithField("address", address).Debug("Address not found")
	}
	return coords, nil
}

func parsePosition(body []byte) (*Coordinates, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("geocoder returned invalid JSON")
	}

	pos := gjson.GetBytes(body, posPath)
	if !pos.Exists() {
		return nil, nil
	}

	fields := strings.Fields(pos.String())
	if len(fields) != 2 {
		return nil, fmt.Errorf("unexpected position %q", pos.String())
	}
	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude: %w", err)
	}
	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
