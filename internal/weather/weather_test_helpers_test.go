package weather

import (
	"strconv"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"

	"github.com/ahmedebrahem0/weatherdash/internal/conf"
)

// createTestConfig creates provider settings pointing at the mocked API.
func createTestConfig(t *testing.T, opts ...func(*conf.WeatherAPISettings)) conf.WeatherAPISettings {
	t.Helper()

	cfg := conf.WeatherAPISettings{
		APIKey:   "test-api-key",
		Endpoint: "https://api.weatherapi.com/v1",
		Timeout:  10,
		CacheTTL: 0, // caching off unless a test opts in
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// createTestProvider creates a provider with mocked transport settings.
func createTestProvider(t *testing.T, opts ...func(*conf.WeatherAPISettings)) *WeatherAPIProvider {
	t.Helper()

	provider, err := NewWeatherAPIProvider(createTestConfig(t, opts...), nil)
	require.NoError(t, err)
	return provider
}

// setupHTTPMock activates httpmock and registers cleanup.
func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func registerResponder(t *testing.T, endpoint string, status int, body string) {
	t.Helper()
	httpmock.RegisterResponder("GET", "https://api.weatherapi.com/v1/"+endpoint,
		httpmock.NewStringResponder(status, body))
}

// cairoLocationJSON is the shared location block of WeatherAPI responses.
const cairoLocationJSON = `{
  "name": "Cairo",
  "region": "Al Qahirah",
  "country": "Egypt",
  "lat": 30.05,
  "lon": 31.25,
  "localtime": "2025-06-10 14:30"
}`

func currentSuccessResponse() string {
	return `{
  "location": ` + cairoLocationJSON + `,
  "current": {
    "last_updated_epoch": 1749557400,
    "temp_c": 35.2,
    "feelslike_c": 33.4,
    "humidity": 18,
    "wind_kph": 20.5,
    "wind_dir": "N",
    "pressure_mb": 1009.0,
    "uv": 9.0,
    "vis_km": 10.0,
    "cloud": 5,
    "condition": { "text": "Sunny", "icon": "//cdn.weatherapi.com/weather/64x64/day/113.png" }
  }
}`
}

func forecastSuccessResponse(days int) string {
	dates := []string{"2025-06-10", "2025-06-11", "2025-06-12", "2025-06-13", "2025-06-14", "2025-06-15", "2025-06-16"}
	body := `{"location": ` + cairoLocationJSON + `, "forecast": {"forecastday": [`
	for i := 0; i < days; i++ {
		if i > 0 {
			body += ","
		}
		body += `{
  "date": "` + dates[i] + `",
  "day": {
    "maxtemp_c": 36.1,
    "mintemp_c": 22.8,
    "avghumidity": 24.6,
    "maxwind_kph": 28.1,
    "daily_chance_of_rain": 10,
    "uv": 9.0,
    "condition": { "text": "Sunny", "icon": "//cdn.weatherapi.com/weather/64x64/day/113.png" }
  },
  "astro": { "sunrise": "04:54 AM", "sunset": "06:57 PM" },
  "hour": []
}`
	}
	return body + `]}}`
}

func historySuccessResponse() string {
	body := `{"location": ` + cairoLocationJSON + `, "forecast": {"forecastday": [{
  "date": "2025-06-09",
  "day": {},
  "astro": {},
  "hour": [`
	for h := 0; h < 24; h++ {
		if h > 0 {
			body += ","
		}
		// 2025-06-09T00:00:00Z plus h hours
		epoch := 1749427200 + h*3600
		body += `{
  "time_epoch": ` + strconv.Itoa(epoch) + `,
  "temp_c": 28.5,
  "feelslike_c": 27.9,
  "humidity": 30,
  "wind_kph": 15.0,
  "condition": { "text": "Clear", "icon": "//cdn.weatherapi.com/weather/64x64/night/113.png" }
}`
	}
	return body + `]}]}}`
}

func notFoundResponse() string {
	return `{"error": {"code": 1006, "message": "No matching location found."}}`
}

func quotaExceededResponse() string {
	return `{"error": {"code": 2007, "message": "API key has exceeded calls per month quota."}}`
}
