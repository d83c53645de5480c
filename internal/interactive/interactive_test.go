package interactive

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kwarner/weathercli/internal/cities"
	"github.com/kwarner/weathercli/internal/models"
	"github.com/kwarner/weathercli/internal/service"
)

type fakeFetcher struct {
	calls int
	err   error
}

func (f *fakeFetcher) FetchCurrent(ctx context.Context, loc models.Location) (models.Report, error) {
	f.calls++
	if f.err != nil {
		return models.Report{}, f.err
	}
	return models.Report{
		Location: loc,
		Reading:  models.Reading{Temperature: 18, Windspeed: 12, WindDirection: 230, WeatherCode: 3, Time: "2025-07-05T14:30"},
		Units:    models.DefaultUnits(),
	}, nil
}

func runSession(t *testing.T, input string) (string, *fakeFetcher) {
	t.Helper()
	table, err := cities.Load()
	if err != nil {
		t.Fatalf("cities.Load() unexpected error: %v", err)
	}
	fetcher := &fakeFetcher{}
	svc := service.New(table, fetcher, zap.NewNop())

	var out strings.Builder
	s := New(svc, strings.NewReader(input), &out)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	return out.String(), fetcher
}

func TestRun_ExitImmediately(t *testing.T) {
	out, fetcher := runSession(t, "4\n")
	if !strings.Contains(out, "Goodbye") {
		t.Errorf("expected goodbye message, got:\n%s", out)
	}
	if fetcher.calls != 0 {
		t.Errorf("exit made %d network calls, want 0", fetcher.calls)
	}
}

func TestRun_EOFEndsSession(t *testing.T) {
	out, _ := runSession(t, "")
	if !strings.Contains(out, "Choose option") {
		t.Errorf("expected menu before EOF, got:\n%s", out)
	}
}

func TestRun_InvalidChoiceReprompts(t *testing.T) {
	out, _ := runSession(t, "9\nbanana\n4\n")
	if got := strings.Count(out, "Invalid choice"); got != 2 {
		t.Errorf("invalid-choice message shown %d times, want 2:\n%s", got, out)
	}
	if got := strings.Count(out, "Enter choice"); got != 3 {
		t.Errorf("menu shown %d times, want 3", got)
	}
}

func TestRun_WeatherByCity(t *testing.T) {
	out, fetcher := runSession(t, "1\nlondon\n4\n")
	if fetcher.calls != 1 {
		t.Fatalf("fetcher called %d times, want 1", fetcher.calls)
	}
	if !strings.Contains(out, "Current Weather for London") {
		t.Errorf("expected verbose report, got:\n%s", out)
	}
}

func TestRun_UnknownCityReturnsToMenu(t *testing.T) {
	out, fetcher := runSession(t, "1\natlantis\n4\n")
	if fetcher.calls != 0 {
		t.Errorf("unknown city made %d network calls, want 0", fetcher.calls)
	}
	if !strings.Contains(out, "city not found") {
		t.Errorf("expected city-not-found message, got:\n%s", out)
	}
	if !strings.Contains(out, "Goodbye") {
		t.Errorf("session should continue to exit choice, got:\n%s", out)
	}
}

func TestRun_WeatherByCoords(t *testing.T) {
	out, fetcher := runSession(t, "2\n40.7128\n-74.006\nHome\n4\n")
	if fetcher.calls != 1 {
		t.Fatalf("fetcher called %d times, want 1", fetcher.calls)
	}
	if !strings.Contains(out, "Current Weather for Home") {
		t.Errorf("expected report for Home, got:\n%s", out)
	}
}

func TestRun_CoordsDefaultName(t *testing.T) {
	out, _ := runSession(t, "2\n10\n20\n\n4\n")
	if !strings.Contains(out, "Current Weather for Custom Location") {
		t.Errorf("expected default location name, got:\n%s", out)
	}
}

func TestRun_InvalidCoordsNumber(t *testing.T) {
	out, fetcher := runSession(t, "2\nnorth\n20\nX\n4\n")
	if fetcher.calls != 0 {
		t.Errorf("bad coords made %d network calls, want 0", fetcher.calls)
	}
	if !strings.Contains(out, "valid numbers") {
		t.Errorf("expected number-format complaint, got:\n%s", out)
	}
}

func TestRun_OutOfRangeCoords(t *testing.T) {
	out, fetcher := runSession(t, "2\n200\n0\n\n4\n")
	if fetcher.calls != 0 {
		t.Errorf("out-of-range coords made %d network calls, want 0", fetcher.calls)
	}
	if !strings.Contains(out, "latitude out of range") {
		t.Errorf("expected range error, got:\n%s", out)
	}
}

func TestRun_ListCities(t *testing.T) {
	out, fetcher := runSession(t, "3\n4\n")
	if fetcher.calls != 0 {
		t.Errorf("listing made %d network calls, want 0", fetcher.calls)
	}
	for _, city := range []string{"london", "tokyo", "johannesburg"} {
		if !strings.Contains(out, city) {
			t.Errorf("city list missing %q:\n%s", city, out)
		}
	}
}

func TestRun_FetchErrorReturnsToMenu(t *testing.T) {
	table, err := cities.Load()
	if err != nil {
		t.Fatalf("cities.Load() unexpected error: %v", err)
	}
	fetcher := &fakeFetcher{err: errors.New("network timeout after 10s")}
	svc := service.New(table, fetcher, zap.NewNop())

	var out strings.Builder
	s := New(svc, strings.NewReader("1\nlondon\n4\n"), &out)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "timeout") {
		t.Errorf("expected fetch error to be printed, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Goodbye") {
		t.Errorf("fetch error should not end the session, got:\n%s", out.String())
	}
}
