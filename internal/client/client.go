package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kwarner/weathercli/internal/models"
)

var (
	// ErrTimeout covers requests that exceed the configured timeout.
	ErrTimeout = errors.New("network timeout")
	// ErrNetwork covers transport failures other than timeouts.
	ErrNetwork = errors.New("network error")
	// ErrService covers non-2xx responses from the weather API.
	ErrService = errors.New("weather service error")
	// ErrMalformedResponse covers undecodable bodies and missing fields.
	ErrMalformedResponse = errors.New("malformed response")
)

// DefaultBaseURL is Open-Meteo's forecast endpoint; current-weather fields are
// requested via the current_weather query flag. No authentication required.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// DefaultTimeout bounds the single request attempt.
const DefaultTimeout = 10 * time.Second

// OpenMeteoClient issues one synchronous current-weather request per call.
// No retries: a failed attempt surfaces immediately.
type OpenMeteoClient struct {
	baseURL       string
	timeout       time.Duration
	client        *http.Client
	limiter       *rate.Limiter
	logger        *zap.Logger
	correlationID string
}

// Option adjusts client construction.
type Option func(*OpenMeteoClient)

// WithBaseURL overrides the API endpoint, primarily for tests.
func WithBaseURL(u string) Option {
	return func(c *OpenMeteoClient) { c.baseURL = u }
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *OpenMeteoClient) { c.timeout = d }
}

// WithLimiter replaces the outbound pacing limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *OpenMeteoClient) { c.limiter = l }
}

// New builds a client. The limiter admits one request immediately and paces
// repeated fetches (interactive sessions) at 1/s against the free API.
func New(logger *zap.Logger, opts ...Option) *OpenMeteoClient {
	c := &OpenMeteoClient{
		baseURL:       DefaultBaseURL,
		timeout:       DefaultTimeout,
		limiter:       rate.NewLimiter(rate.Limit(1), 1),
		logger:        logger,
		correlationID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// apiResponse matches the envelope Open-Meteo returns for current_weather=true.
// Pointer fields let the parser distinguish absent from zero.
type apiResponse struct {
	CurrentWeather *currentWeather `json:"current_weather"`
	Units          *models.Units   `json:"current_weather_units"`
}

type currentWeather struct {
	Temperature   *float64 `json:"temperature"`
	Windspeed     *float64 `json:"windspeed"`
	WindDirection *int     `json:"winddirection"`
	WeatherCode   *int     `json:"weathercode"`
	Time          *string  `json:"time"`
}

// FetchCurrent performs the single weather request for loc and parses the
// current-weather object out of the response.
func (c *OpenMeteoClient) FetchCurrent(ctx context.Context, loc models.Location) (models.Report, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.Report{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	start := time.Now()
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(reqCtx, loc)
	if err != nil {
		return models.Report{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return models.Report{}, fmt.Errorf("%w after %s: %v", ErrTimeout, c.timeout, err)
		}
		return models.Report{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("weather api response",
		zap.String("correlation_id", c.correlationID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Report{}, fmt.Errorf("%w: HTTP %d", ErrService, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Report{}, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	reading, units, err := parseResponse(body)
	if err != nil {
		return models.Report{}, err
	}
	return models.Report{Location: loc, Reading: reading, Units: units}, nil
}

func (c *OpenMeteoClient) buildRequest(ctx context.Context, loc models.Location) (*http.Request, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	params.Set("current_weather", "true")
	params.Set("timezone", "auto")
	base.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correlation-ID", c.correlationID)

	c.logger.Debug("weather api request",
		zap.String("correlation_id", c.correlationID),
		zap.String("url", base.String()))
	return req, nil
}

// parseResponse decodes the body and requires every current-weather field to
// be present; the units object is optional and defaults when absent.
func parseResponse(body []byte) (models.Reading, models.Units, error) {
	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return models.Reading{}, models.Units{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	cw := apiResp.CurrentWeather
	if cw == nil {
		return models.Reading{}, models.Units{}, fmt.Errorf("%w: missing current_weather object", ErrMalformedResponse)
	}

	missing := ""
	switch {
	case cw.Temperature == nil:
		missing = "temperature"
	case cw.Windspeed == nil:
		missing = "windspeed"
	case cw.WindDirection == nil:
		missing = "winddirection"
	case cw.WeatherCode == nil:
		missing = "weathercode"
	case cw.Time == nil:
		missing = "time"
	}
	if missing != "" {
		return models.Reading{}, models.Units{}, fmt.Errorf("%w: missing field %q", ErrMalformedResponse, missing)
	}

	reading := models.Reading{
		Temperature:   *cw.Temperature,
		Windspeed:     *cw.Windspeed,
		WindDirection: *cw.WindDirection,
		WeatherCode:   *cw.WeatherCode,
		Time:          *cw.Time,
	}
	units := models.DefaultUnits()
	if apiResp.Units != nil {
		units = *apiResp.Units
	}
	return reading, units, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
