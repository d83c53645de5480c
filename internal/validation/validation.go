package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrCityNameEmpty is returned when a city name is empty or whitespace-only after trim.
var ErrCityNameEmpty = errors.New("city name is required")

// ErrCityNameTooLong is returned when a city name exceeds the maximum length.
var ErrCityNameTooLong = errors.New("city name too long")

// ErrCityNameInvalidChars is returned when a city name contains disallowed characters.
var ErrCityNameInvalidChars = errors.New("city name contains invalid characters")

// ErrLatitudeOutOfRange is returned for latitudes outside [-90, 90].
var ErrLatitudeOutOfRange = errors.New("latitude out of range")

// ErrLongitudeOutOfRange is returned for longitudes outside [-180, 180].
var ErrLongitudeOutOfRange = errors.New("longitude out of range")

// MaxCityNameLength bounds user-supplied city names in runes.
const MaxCityNameLength = 100

// CityName trims the input and restricts it to letters (Unicode), digits,
// space, comma, hyphen and apostrophe. Returns the trimmed string; lookup
// normalization (lowercase) is left to the city table.
func CityName(input string) (string, error) {
	s := strings.TrimSpace(input)
	r := []rune(s)
	if len(r) == 0 {
		return "", ErrCityNameEmpty
	}
	if len(r) > MaxCityNameLength {
		return "", ErrCityNameTooLong
	}
	for _, c := range r {
		if !isAllowedNameRune(c) {
			return "", ErrCityNameInvalidChars
		}
	}
	return s, nil
}

// Coordinates checks that lat/lon fall in the valid geographic ranges. Runs
// before any network call so bad input never reaches the upstream API.
func Coordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: %v (must be between -90 and 90)", ErrLatitudeOutOfRange, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: %v (must be between -180 and 180)", ErrLongitudeOutOfRange, lon)
	}
	return nil
}

func isAllowedNameRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case ' ', ',', '-', '\'':
		return true
	}
	return false
}
