// Package weather fetches and normalizes data from the remote weather
// provider. It insulates the rest of the application from the provider's
// wire shapes: callers only ever see the types defined here.
package weather

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ahmedebrahem0/weatherdash/internal/conf"
	"github.com/ahmedebrahem0/weatherdash/internal/errors"
	"github.com/ahmedebrahem0/weatherdash/internal/logging"
	"github.com/ahmedebrahem0/weatherdash/internal/observability"
)

// Package-level logger for the weather service
var (
	weatherLogger   *slog.Logger
	weatherLevelVar = new(slog.LevelVar) // Dynamic level control
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "weather.log")
	weatherLevelVar.Set(slog.LevelInfo)

	weatherLogger, closeLogger, err = logging.NewFileLogger(logFilePath, "weather", weatherLevelVar)
	if err != nil {
		log.Printf("Failed to initialize weather file logger at %s: %v. Falling back to disabled logger.", logFilePath, err)
		weatherLogger = logging.DiscardLogger("weather", weatherLevelVar)
		closeLogger = func() error { return nil }
	}
}

// MaxForecastDays is the largest forecast range a query may request.
const MaxForecastDays = conf.MaxForecastDays

// Condition is a free-text weather descriptor plus an icon reference.
type Condition struct {
	Text string
	Icon string
}

// Location describes the place a reading refers to, as resolved by the
// provider from the user's query string.
type Location struct {
	Name      string
	Region    string
	Country   string
	Latitude  float64
	Longitude float64
	LocalTime time.Time
}

// CurrentConditions is a snapshot of the weather at a location. It is
// replaced wholesale on each successful fetch, never partially mutated.
type CurrentConditions struct {
	Location    Location
	Observed    time.Time
	Temperature float64 // celsius
	FeelsLike   float64 // celsius
	Humidity    int     // percent
	WindSpeed   float64 // km/h
	WindDir     string  // compass point, e.g. "NW"
	Pressure    float64 // millibars
	UVIndex     float64
	Visibility  float64 // km
	CloudCover  int     // percent
	Condition   Condition
}

// ForecastDay aggregates one future day.
type ForecastDay struct {
	Date        time.Time
	MaxTemp     float64
	MinTemp     float64
	AvgHumidity int
	MaxWind     float64
	RainChance  int // percent
	UVIndex     float64
	Sunrise     string // provider-local clock time, e.g. "06:12 AM"
	Sunset      string
	Condition   Condition
}

// HourlySample is one hour of a historical day.
type HourlySample struct {
	Time        time.Time
	Temperature float64
	FeelsLike   float64
	Humidity    int
	WindSpeed   float64
	Condition   Condition
}

// HistoryDay is a past day with its chronological hourly samples.
type HistoryDay struct {
	Date  time.Time
	Hours []HourlySample
}

// Provider is the contract for a remote weather data provider. Each call
// performs at most one outbound request; retry policy belongs to the
// caller.
type Provider interface {
	// FetchCurrent returns current conditions for the location query.
	FetchCurrent(ctx context.Context, location string) (*CurrentConditions, error)
	// FetchForecast returns up to MaxForecastDays of daily forecast.
	// days == 0 is valid and yields an empty slice without a network call.
	FetchForecast(ctx context.Context, location string, days int) ([]ForecastDay, error)
	// FetchHistory returns hourly data for a past or present calendar
	// date. Future dates are rejected before any request is sent.
	FetchHistory(ctx context.Context, location string, date time.Time) ([]HistoryDay, error)
}

// NewProvider creates the provider selected by configuration.
func NewProvider(settings *conf.Settings, metrics *observability.WeatherMetrics) (Provider, error) {
	switch settings.Provider.Name {
	case "weatherapi":
		return NewWeatherAPIProvider(settings.Provider.WeatherAPI, metrics)
	default:
		return nil, errors.New(fmt.Errorf("invalid weather provider: %s", settings.Provider.Name)).
			Component("weather").
			Category(errors.CategoryConfiguration).
			Context("provider", settings.Provider.Name).
			Build()
	}
}
