// Package interactive implements the menu-driven mode used when the tool is
// started without arguments. Input handling is a small explicit state machine;
// all I/O is synchronous line-at-a-time.
package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kwarner/weathercli/internal/format"
	"github.com/kwarner/weathercli/internal/models"
	"github.com/kwarner/weathercli/internal/service"
)

type state int

const (
	stateMainMenu state = iota
	stateAwaitingCity
	stateAwaitingCoords
	stateDone
)

// Session drives one interactive run. It loops on the main menu until the
// user selects exit or input ends.
type Session struct {
	svc   *service.WeatherService
	in    *bufio.Scanner
	out   io.Writer
	state state
}

// New builds a session reading menu input from in and writing to out.
func New(svc *service.WeatherService, in io.Reader, out io.Writer) *Session {
	return &Session{
		svc:   svc,
		in:    bufio.NewScanner(in),
		out:   out,
		state: stateMainMenu,
	}
}

// Run executes the state machine until Done. EOF on input ends the session
// cleanly.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "🌍 Weather App using Open-Meteo API")
	for s.state != stateDone {
		switch s.state {
		case stateMainMenu:
			s.mainMenu()
		case stateAwaitingCity:
			s.cityInput(ctx)
		case stateAwaitingCoords:
			s.coordInput(ctx)
		}
	}
	return nil
}

func (s *Session) mainMenu() {
	fmt.Fprintln(s.out, "\nChoose option:")
	fmt.Fprintln(s.out, "1. Get weather by city")
	fmt.Fprintln(s.out, "2. Get weather by coordinates")
	fmt.Fprintln(s.out, "3. List cities")
	fmt.Fprintln(s.out, "4. Exit")
	choice, ok := s.prompt("Enter choice (1-4): ")
	if !ok {
		s.state = stateDone
		return
	}

	switch strings.TrimSpace(choice) {
	case "1":
		s.state = stateAwaitingCity
	case "2":
		s.state = stateAwaitingCoords
	case "3":
		s.listCities()
	case "4":
		fmt.Fprintln(s.out, "👋 Goodbye!")
		s.state = stateDone
	default:
		fmt.Fprintln(s.out, "❌ Invalid choice. Please enter 1, 2, 3 or 4.")
	}
}

func (s *Session) cityInput(ctx context.Context) {
	s.state = stateMainMenu
	name, ok := s.prompt("Enter city name: ")
	if !ok {
		s.state = stateDone
		return
	}

	loc, err := s.svc.ByCity(name)
	if err != nil {
		fmt.Fprintf(s.out, "❌ %v\n", err)
		return
	}
	s.fetchAndPrint(ctx, loc)
}

func (s *Session) coordInput(ctx context.Context) {
	s.state = stateMainMenu

	latStr, ok := s.prompt("Enter latitude: ")
	if !ok {
		s.state = stateDone
		return
	}
	lonStr, ok := s.prompt("Enter longitude: ")
	if !ok {
		s.state = stateDone
		return
	}
	name, ok := s.prompt("Enter location name (optional): ")
	if !ok {
		s.state = stateDone
		return
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		fmt.Fprintln(s.out, "❌ Please enter valid numbers for coordinates")
		return
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		fmt.Fprintln(s.out, "❌ Please enter valid numbers for coordinates")
		return
	}

	loc, err := s.svc.ByCoords(lat, lon, strings.TrimSpace(name))
	if err != nil {
		fmt.Fprintf(s.out, "❌ %v\n", err)
		return
	}
	s.fetchAndPrint(ctx, loc)
}

func (s *Session) fetchAndPrint(ctx context.Context, loc models.Location) {
	report, err := s.svc.Fetch(ctx, loc)
	if err != nil {
		fmt.Fprintf(s.out, "❌ %v\n", err)
		return
	}
	out, err := format.Render(report, format.Verbose)
	if err != nil {
		fmt.Fprintf(s.out, "❌ %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "\n"+out)
}

func (s *Session) listCities() {
	fmt.Fprintln(s.out, "Available cities:")
	for _, e := range s.svc.Cities().All() {
		fmt.Fprintf(s.out, "  %-15s (%7.4f, %8.4f)\n", e.Name, e.Latitude, e.Longitude)
	}
}

// prompt writes the prompt and reads one line. ok is false at EOF.
func (s *Session) prompt(p string) (string, bool) {
	fmt.Fprint(s.out, p)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}
