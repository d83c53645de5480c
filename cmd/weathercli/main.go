package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kwarner/weathercli/internal/cities"
	"github.com/kwarner/weathercli/internal/client"
	"github.com/kwarner/weathercli/internal/format"
	"github.com/kwarner/weathercli/internal/interactive"
	"github.com/kwarner/weathercli/internal/models"
	"github.com/kwarner/weathercli/internal/observability"
	"github.com/kwarner/weathercli/internal/service"
)

// ErrUsage marks bad or conflicting command-line input.
var ErrUsage = errors.New("usage error")

const usageText = `Usage: weathercli [options]

Get current weather information using the Open-Meteo API.

Options:
  --city, -c NAME          Get weather for a city by name
  --coords, -C LAT LON     Get weather for specific coordinates
  --name, -n LABEL         Custom name for the location (with --coords)
  --list-cities, -l        List all available cities
  --compact, -q            Show compact output (useful for scripting)
  --json, -j               Output raw JSON data
  --help, -h               Show this help

With no arguments the tool enters interactive mode.

Examples:
  weathercli --city London
  weathercli --coords 40.7128 -74.0060 --name "New York"
  weathercli --city Tokyo --compact
  weathercli --list-cities`

// options is the parsed CLI surface. Exactly one of city/hasCoords may be set
// outside list/help/interactive.
type options struct {
	city       string
	hasCoords  bool
	lat, lon   float64
	name       string
	listCities bool
	compact    bool
	jsonOut    bool
	help       bool
}

// parseArgs scans os.Args-style tokens by hand: --coords consumes the two
// following tokens, which lets a negative longitude through where the flag
// package would reject it.
func parseArgs(args []string) (*options, error) {
	opts := &options{}
	i := 0
	next := func(flag string) (string, error) {
		i++
		if i >= len(args) {
			return "", fmt.Errorf("%w: %s requires a value", ErrUsage, flag)
		}
		return args[i], nil
	}

	for ; i < len(args); i++ {
		arg := args[i]
		flag, inline, hasInline := strings.Cut(arg, "=")

		value := func() (string, error) {
			if hasInline {
				return inline, nil
			}
			return next(flag)
		}

		switch flag {
		case "--city", "-c":
			v, err := value()
			if err != nil {
				return nil, err
			}
			opts.city = v
		case "--coords", "-C":
			if hasInline {
				return nil, fmt.Errorf("%w: --coords takes two values: LAT LON", ErrUsage)
			}
			latStr, err := next(flag)
			if err != nil {
				return nil, err
			}
			lonStr, err := next(flag)
			if err != nil {
				return nil, fmt.Errorf("%w: --coords takes two values: LAT LON", ErrUsage)
			}
			opts.lat, err = strconv.ParseFloat(latStr, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid latitude %q", ErrUsage, latStr)
			}
			opts.lon, err = strconv.ParseFloat(lonStr, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid longitude %q", ErrUsage, lonStr)
			}
			opts.hasCoords = true
		case "--name", "-n":
			v, err := value()
			if err != nil {
				return nil, err
			}
			opts.name = v
		case "--list-cities", "-l":
			opts.listCities = true
		case "--compact", "-q":
			opts.compact = true
		case "--json", "-j":
			opts.jsonOut = true
		case "--help", "-h":
			opts.help = true
		default:
			return nil, fmt.Errorf("%w: unknown option %q", ErrUsage, arg)
		}
	}

	if opts.help || opts.listCities {
		return opts, nil
	}
	if opts.city != "" && opts.hasCoords {
		return nil, fmt.Errorf("%w: --city and --coords are mutually exclusive", ErrUsage)
	}
	if opts.city == "" && !opts.hasCoords {
		return nil, fmt.Errorf("%w: one of --city or --coords is required", ErrUsage)
	}
	if opts.compact && opts.jsonOut {
		return nil, fmt.Errorf("%w: --compact and --json are mutually exclusive", ErrUsage)
	}
	return opts, nil
}

func (o *options) mode() format.Mode {
	switch {
	case o.jsonOut:
		return format.JSON
	case o.compact:
		return format.Compact
	default:
		return format.Verbose
	}
}

func listCities(w io.Writer, table *cities.Table) {
	fmt.Fprintln(w, "Available cities:")
	for _, e := range table.All() {
		fmt.Fprintf(w, "  %-15s (%7.4f, %8.4f)\n", e.Name, e.Latitude, e.Longitude)
	}
}

// run is the full invocation: parse, resolve, fetch, format. Returns the
// process exit code; on failure exactly one error line goes to errOut.
func run(args []string, out, errOut io.Writer) int {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(errOut, "❌ logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	table, err := cities.Load()
	if err != nil {
		fmt.Fprintf(errOut, "❌ %v\n", err)
		return 1
	}

	svc := service.New(table, client.New(logger), logger)
	ctx := context.Background()

	if len(args) == 0 {
		session := interactive.New(svc, os.Stdin, out)
		if err := session.Run(ctx); err != nil {
			fmt.Fprintf(errOut, "❌ %v\n", err)
			return 1
		}
		return 0
	}

	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(errOut, "❌ %v\n", err)
		fmt.Fprintln(errOut, "Run 'weathercli --help' for usage.")
		return 2
	}

	if opts.help {
		fmt.Fprintln(out, usageText)
		return 0
	}
	if opts.listCities {
		listCities(out, table)
		return 0
	}

	loc, err := resolve(svc, opts)
	if err != nil {
		fmt.Fprintf(errOut, "❌ %v\n", err)
		return 1
	}

	report, err := svc.Fetch(ctx, loc)
	if err != nil {
		logger.Debug("fetch failed", zap.Error(err))
		fmt.Fprintf(errOut, "❌ %v\n", err)
		return 1
	}

	rendered, err := format.Render(report, opts.mode())
	if err != nil {
		fmt.Fprintf(errOut, "❌ %v\n", err)
		return 1
	}
	fmt.Fprintln(out, rendered)
	return 0
}

func resolve(svc *service.WeatherService, opts *options) (models.Location, error) {
	if opts.city != "" {
		return svc.ByCity(opts.city)
	}
	return svc.ByCoords(opts.lat, opts.lon, opts.name)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
