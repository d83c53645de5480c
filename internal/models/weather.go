package models

// Location is a resolved coordinate pair with a display name. Built once per
// run from the city table or explicit coordinates, never mutated after.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// Reading is one current-weather snapshot. JSON tags match the field names of
// Open-Meteo's current_weather object so JSON output round-trips losslessly.
type Reading struct {
	Temperature   float64 `json:"temperature"`
	Windspeed     float64 `json:"windspeed"`
	WindDirection int     `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	Time          string  `json:"time"`
}

// Units mirrors Open-Meteo's current_weather_units object.
type Units struct {
	Temperature   string `json:"temperature"`
	Windspeed     string `json:"windspeed"`
	WindDirection string `json:"winddirection"`
	WeatherCode   string `json:"weathercode"`
	Time          string `json:"time"`
}

// DefaultUnits returns the units Open-Meteo documents for current_weather,
// used when a response omits the units object.
func DefaultUnits() Units {
	return Units{
		Temperature:   "°C",
		Windspeed:     "km/h",
		WindDirection: "°",
		WeatherCode:   "wmo code",
		Time:          "iso8601",
	}
}

// Report pairs a reading with the location it was taken for.
type Report struct {
	Location Location
	Reading  Reading
	Units    Units
}
