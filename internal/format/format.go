// Package format renders a weather report as verbose text, compact text or JSON.
package format

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kwarner/weathercli/internal/models"
)

// Mode selects the output shape.
type Mode int

const (
	// Verbose is the default multi-line human-readable block.
	Verbose Mode = iota
	// Compact is a single machine-parseable line.
	Compact
	// JSON prints the structured reading and units verbatim.
	JSON
)

// Render produces the display string for a report in the given mode.
func Render(r models.Report, mode Mode) (string, error) {
	switch mode {
	case Compact:
		return renderCompact(r), nil
	case JSON:
		return renderJSON(r)
	default:
		return renderVerbose(r), nil
	}
}

func renderVerbose(r models.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌤️  Current Weather for %s\n", r.Location.Name)
	fmt.Fprintf(&b, "📍 Coordinates: %s, %s\n", num(r.Location.Latitude), num(r.Location.Longitude))
	fmt.Fprintf(&b, "🌡️  Temperature: %s%s\n", num(r.Reading.Temperature), r.Units.Temperature)
	fmt.Fprintf(&b, "🌤️  Condition: %s\n", Describe(r.Reading.WeatherCode))
	fmt.Fprintf(&b, "💨 Wind: %s %s from %d%s\n", num(r.Reading.Windspeed), r.Units.Windspeed, r.Reading.WindDirection, r.Units.WindDirection)
	fmt.Fprintf(&b, "🕐 Time: %s", r.Reading.Time)
	return b.String()
}

func renderCompact(r models.Report) string {
	return fmt.Sprintf("%s: %s°C, %s, Wind: %skm/h",
		r.Location.Name,
		num(r.Reading.Temperature),
		Describe(r.Reading.WeatherCode),
		num(r.Reading.Windspeed))
}

// jsonReport is the machine output: the raw reading plus unit metadata, no
// condition translation applied.
type jsonReport struct {
	CurrentWeather models.Reading `json:"current_weather"`
	Units          models.Units   `json:"current_weather_units"`
}

func renderJSON(r models.Report) (string, error) {
	out, err := json.MarshalIndent(jsonReport{
		CurrentWeather: r.Reading,
		Units:          r.Units,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return string(out), nil
}

// num formats a float with the fewest digits that round-trip, so 18.0 prints
// as "18" and 12.5 as "12.5".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
