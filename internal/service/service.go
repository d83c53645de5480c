package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kwarner/weathercli/internal/cities"
	"github.com/kwarner/weathercli/internal/models"
	"github.com/kwarner/weathercli/internal/validation"
)

// DefaultCoordName labels explicit-coordinate lookups without a --name.
const DefaultCoordName = "Custom Location"

// Fetcher is the single upstream call the service depends on.
type Fetcher interface {
	FetchCurrent(ctx context.Context, loc models.Location) (models.Report, error)
}

// WeatherService resolves user input to a Location and fetches its current
// weather. Resolution never touches the network; the fetch is one synchronous
// request.
type WeatherService struct {
	table  *cities.Table
	client Fetcher
	logger *zap.Logger
}

// New creates a WeatherService over the static city table and a weather client.
func New(table *cities.Table, client Fetcher, logger *zap.Logger) *WeatherService {
	return &WeatherService{table: table, client: client, logger: logger}
}

// ByCity resolves a city name against the static table, case-insensitively.
func (s *WeatherService) ByCity(name string) (models.Location, error) {
	cleaned, err := validation.CityName(name)
	if err != nil {
		return models.Location{}, err
	}
	return s.table.Lookup(cleaned)
}

// ByCoords resolves explicit coordinates, validating ranges first. An empty
// name defaults to DefaultCoordName.
func (s *WeatherService) ByCoords(lat, lon float64, name string) (models.Location, error) {
	if err := validation.Coordinates(lat, lon); err != nil {
		return models.Location{}, err
	}
	if name == "" {
		name = DefaultCoordName
	}
	return models.Location{Latitude: lat, Longitude: lon, Name: name}, nil
}

// Fetch performs the single current-weather request for a resolved location.
func (s *WeatherService) Fetch(ctx context.Context, loc models.Location) (models.Report, error) {
	start := time.Now()
	report, err := s.client.FetchCurrent(ctx, loc)
	if err != nil {
		return models.Report{}, fmt.Errorf("fetch weather for %s: %w", loc.Name, err)
	}
	s.logger.Debug("weather fetched",
		zap.String("location", loc.Name),
		zap.Duration("duration", time.Since(start)))
	return report, nil
}

// Cities exposes the static table for listing.
func (s *WeatherService) Cities() *cities.Table {
	return s.table
}
