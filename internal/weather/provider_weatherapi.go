package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker"

	"github.com/ahmedebrahem0/weatherdash/internal/conf"
	"github.com/ahmedebrahem0/weatherdash/internal/errors"
	"github.com/ahmedebrahem0/weatherdash/internal/observability"
)

const (
	UserAgent = "WeatherDash https://github.com/ahmedebrahem0/weatherdash"

	endpointCurrent  = "current.json"
	endpointForecast = "forecast.json"
	endpointHistory  = "history.json"

	localTimeLayout = "2006-01-02 15:04"
	dateLayout      = "2006-01-02"
)

// WeatherAPI.com application error codes.
const (
	apiCodeNoLocation  = 1006
	apiCodeQuotaExceed = 2007
	apiCodeKeyDisabled = 2008
)

// WeatherAPIProvider implements Provider against api.weatherapi.com/v1.
type WeatherAPIProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache // nil when caching is disabled
	breaker    *gobreaker.CircuitBreaker
	metrics    *observability.WeatherMetrics
}

// NewWeatherAPIProvider creates a WeatherAPI.com provider from settings.
func NewWeatherAPIProvider(cfg conf.WeatherAPISettings, metrics *observability.WeatherMetrics) (*WeatherAPIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.Newf("WeatherAPI key not configured").
			Component("weather").
			Category(errors.CategoryConfiguration).
			Build()
	}

	var responseCache *gocache.Cache
	if cfg.CacheTTL > 0 {
		ttl := time.Duration(cfg.CacheTTL) * time.Second
		responseCache = gocache.New(ttl, 2*ttl)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	provider := &WeatherAPIProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		cache:   responseCache,
		breaker: breaker,
		metrics: metrics,
	}

	weatherLogger.Info("WeatherAPI provider initialized",
		"endpoint", cfg.Endpoint,
		"timeout_s", cfg.Timeout,
		"cache_ttl_s", cfg.CacheTTL,
	)

	return provider, nil
}

// Wire shapes. These mirror the provider's JSON and never leave this file.

type apiCondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type apiLocation struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	LocalTime string  `json:"localtime"`
}

type apiCurrent struct {
	LastUpdatedEpoch int64        `json:"last_updated_epoch"`
	TempC            float64      `json:"temp_c"`
	FeelsLikeC       float64      `json:"feelslike_c"`
	Humidity         int          `json:"humidity"`
	WindKph          float64      `json:"wind_kph"`
	WindDir          string       `json:"wind_dir"`
	PressureMb       float64      `json:"pressure_mb"`
	UV               float64      `json:"uv"`
	VisKm            float64      `json:"vis_km"`
	Cloud            int          `json:"cloud"`
	Condition        apiCondition `json:"condition"`
}

type apiHour struct {
	TimeEpoch  int64        `json:"time_epoch"`
	TempC      float64      `json:"temp_c"`
	FeelsLikeC float64      `json:"feelslike_c"`
	Humidity   int          `json:"humidity"`
	WindKph    float64      `json:"wind_kph"`
	Condition  apiCondition `json:"condition"`
}

type apiForecastDay struct {
	Date string `json:"date"`
	Day  struct {
		MaxTempC          float64      `json:"maxtemp_c"`
		MinTempC          float64      `json:"mintemp_c"`
		AvgHumidity       float64      `json:"avghumidity"`
		MaxWindKph        float64      `json:"maxwind_kph"`
		DailyChanceOfRain int          `json:"daily_chance_of_rain"`
		UV                float64      `json:"uv"`
		Condition         apiCondition `json:"condition"`
	} `json:"day"`
	Astro struct {
		Sunrise string `json:"sunrise"`
		Sunset  string `json:"sunset"`
	} `json:"astro"`
	Hour []apiHour `json:"hour"`
}

type currentResponse struct {
	Location apiLocation `json:"location"`
	Current  apiCurrent  `json:"current"`
}

type forecastResponse struct {
	Location apiLocation `json:"location"`
	Forecast struct {
		ForecastDay []apiForecastDay `json:"forecastday"`
	} `json:"forecast"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FetchCurrent implements the Provider interface for WeatherAPIProvider.
func (p *WeatherAPIProvider) FetchCurrent(ctx context.Context, location string) (*CurrentConditions, error) {
	params := url.Values{}
	params.Set("q", location)

	var resp currentResponse
	if err := p.doGet(ctx, endpointCurrent, params, &resp); err != nil {
		return nil, err
	}

	return normalizeCurrent(&resp)
}

// FetchForecast implements the Provider interface for WeatherAPIProvider.
func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, location string, days int) ([]ForecastDay, error) {
	if days < 0 || days > MaxForecastDays {
		return nil, errors.Newf("forecast days must be between 0 and %d, got %d", MaxForecastDays, days).
			Component("weather").
			Category(errors.CategoryValidation).
			Context("days", days).
			Build()
	}
	// A zero-day forecast is defined as empty, no round trip needed.
	if days == 0 {
		return []ForecastDay{}, nil
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("days", fmt.Sprintf("%d", days))

	var resp forecastResponse
	if err := p.doGet(ctx, endpointForecast, params, &resp); err != nil {
		return nil, err
	}

	return normalizeForecast(&resp)
}

// FetchHistory implements the Provider interface for WeatherAPIProvider.
func (p *WeatherAPIProvider) FetchHistory(ctx context.Context, location string, date time.Time) ([]HistoryDay, error) {
	// Compare calendar dates, not instants: today is a valid history date.
	if date.Format(dateLayout) > time.Now().Format(dateLayout) {
		return nil, errors.Newf("history date %s is in the future", date.Format(dateLayout)).
			Component("weather").
			Category(errors.CategoryValidation).
			Context("date", date.Format(dateLayout)).
			Build()
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("dt", date.Format(dateLayout))

	var resp forecastResponse
	if err := p.doGet(ctx, endpointHistory, params, &resp); err != nil {
		return nil, err
	}

	return normalizeHistory(&resp)
}

// doGet performs one GET against the provider, consulting the response
// cache first and routing the call through the circuit breaker.
func (p *WeatherAPIProvider) doGet(ctx context.Context, endpoint string, params url.Values, out any) error {
	cacheKey := endpoint + "?" + params.Encode()
	if p.cache != nil {
		if cached, found := p.cache.Get(cacheKey); found {
			weatherLogger.Debug("Weather response cache hit", "endpoint", endpoint, "key", cacheKey)
			return json.Unmarshal(cached.([]byte), out)
		}
	}

	start := time.Now()
	body, err := p.breaker.Execute(func() (any, error) {
		return p.fetchBody(ctx, endpoint, params)
	})
	p.metrics.RecordFetchDuration(endpoint, time.Since(start).Seconds())

	if err != nil {
		p.metrics.RecordFetch(endpoint, "error")
		p.metrics.RecordFetchError(endpoint, string(errors.CategoryOf(err)))
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return errors.Newf("weather provider temporarily unavailable: %w", err).
				Component("weather").
				Category(errors.CategoryNetwork).
				Context("endpoint", endpoint).
				Build()
		}
		return err
	}
	p.metrics.RecordFetch(endpoint, "success")

	raw := body.([]byte)
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Newf("error unmarshaling weather data: %w", err).
			Component("weather").
			Category(errors.CategoryMalformed).
			Context("endpoint", endpoint).
			Build()
	}

	if p.cache != nil {
		p.cache.Set(cacheKey, raw, gocache.DefaultExpiration)
	}
	return nil
}

// fetchBody performs the outbound request and maps failures onto error
// categories. Exactly one network call per invocation.
func (p *WeatherAPIProvider) fetchBody(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	params.Set("key", p.apiKey)
	requestURL := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, errors.Newf("error creating request: %w", err).
			Component("weather").
			Category(errors.CategoryNetwork).
			Context("endpoint", endpoint).
			Build()
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		weatherLogger.Error("Weather request failed", "endpoint", endpoint, "error", err)
		return nil, errors.Newf("error fetching weather data: %w", err).
			Component("weather").
			Category(errors.CategoryNetwork).
			Context("endpoint", endpoint).
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Newf("error reading response body: %w", err).
			Component("weather").
			Category(errors.CategoryNetwork).
			Context("endpoint", endpoint).
			Build()
	}

	if resp.StatusCode != http.StatusOK {
		return nil, p.mapErrorResponse(endpoint, resp.StatusCode, body)
	}

	return body, nil
}

// mapErrorResponse turns a non-200 provider response into a categorized
// error.
func (p *WeatherAPIProvider) mapErrorResponse(endpoint string, statusCode int, body []byte) error {
	var apiErr errorResponse
	code := 0
	message := ""
	if err := json.Unmarshal(body, &apiErr); err == nil {
		code = apiErr.Error.Code
		message = apiErr.Error.Message
	}

	weatherLogger.Warn("Weather provider error response",
		"endpoint", endpoint,
		"status_code", statusCode,
		"api_code", code,
		"message", message,
	)

	category := errors.CategoryGeneric
	switch {
	case code == apiCodeNoLocation || statusCode == http.StatusNotFound:
		category = errors.CategoryNotFound
	case code == apiCodeQuotaExceed || code == apiCodeKeyDisabled || statusCode == http.StatusTooManyRequests:
		category = errors.CategoryRateLimited
	}

	if message == "" {
		message = fmt.Sprintf("received non-200 response: %d", statusCode)
	}

	return errors.Newf("weather provider error: %s", message).
		Component("weather").
		Category(category).
		Context("endpoint", endpoint).
		Context("status_code", statusCode).
		Context("api_code", code).
		Build()
}

// Normalization. Missing mandatory fields surface as malformed-response
// errors so undefined data never reaches presentation.

func normalizeCurrent(resp *currentResponse) (*CurrentConditions, error) {
	if resp.Location.Name == "" || resp.Current.Condition.Text == "" {
		return nil, malformed("current response missing location or condition")
	}

	return &CurrentConditions{
		Location:    normalizeLocation(&resp.Location),
		Observed:    time.Unix(resp.Current.LastUpdatedEpoch, 0),
		Temperature: resp.Current.TempC,
		FeelsLike:   resp.Current.FeelsLikeC,
		Humidity:    resp.Current.Humidity,
		WindSpeed:   resp.Current.WindKph,
		WindDir:     resp.Current.WindDir,
		Pressure:    resp.Current.PressureMb,
		UVIndex:     resp.Current.UV,
		Visibility:  resp.Current.VisKm,
		CloudCover:  resp.Current.Cloud,
		Condition: Condition{
			Text: resp.Current.Condition.Text,
			Icon: resp.Current.Condition.Icon,
		},
	}, nil
}

func normalizeForecast(resp *forecastResponse) ([]ForecastDay, error) {
	if len(resp.Forecast.ForecastDay) == 0 {
		return nil, malformed("forecast response contains no days")
	}

	days := make([]ForecastDay, 0, len(resp.Forecast.ForecastDay))
	for i := range resp.Forecast.ForecastDay {
		fd := &resp.Forecast.ForecastDay[i]
		date, err := time.Parse(dateLayout, fd.Date)
		if err != nil {
			return nil, malformed(fmt.Sprintf("forecast day has invalid date %q", fd.Date))
		}
		days = append(days, ForecastDay{
			Date:        date,
			MaxTemp:     fd.Day.MaxTempC,
			MinTemp:     fd.Day.MinTempC,
			AvgHumidity: int(math.Round(fd.Day.AvgHumidity)),
			MaxWind:     fd.Day.MaxWindKph,
			RainChance:  fd.Day.DailyChanceOfRain,
			UVIndex:     fd.Day.UV,
			Sunrise:     fd.Astro.Sunrise,
			Sunset:      fd.Astro.Sunset,
			Condition: Condition{
				Text: fd.Day.Condition.Text,
				Icon: fd.Day.Condition.Icon,
			},
		})
	}
	return days, nil
}

func normalizeHistory(resp *forecastResponse) ([]HistoryDay, error) {
	if len(resp.Forecast.ForecastDay) == 0 {
		return nil, malformed("history response contains no days")
	}

	days := make([]HistoryDay, 0, len(resp.Forecast.ForecastDay))
	for i := range resp.Forecast.ForecastDay {
		fd := &resp.Forecast.ForecastDay[i]
		date, err := time.Parse(dateLayout, fd.Date)
		if err != nil {
			return nil, malformed(fmt.Sprintf("history day has invalid date %q", fd.Date))
		}
		hours := make([]HourlySample, 0, len(fd.Hour))
		for j := range fd.Hour {
			h := &fd.Hour[j]
			hours = append(hours, HourlySample{
				Time:        time.Unix(h.TimeEpoch, 0),
				Temperature: h.TempC,
				FeelsLike:   h.FeelsLikeC,
				Humidity:    h.Humidity,
				WindSpeed:   h.WindKph,
				Condition: Condition{
					Text: h.Condition.Text,
					Icon: h.Condition.Icon,
				},
			})
		}
		days = append(days, HistoryDay{Date: date, Hours: hours})
	}
	return days, nil
}

func normalizeLocation(loc *apiLocation) Location {
	localTime, err := time.Parse(localTimeLayout, loc.LocalTime)
	if err != nil {
		// localtime is informational; a parse failure is not fatal
		localTime = time.Time{}
	}
	return Location{
		Name:      loc.Name,
		Region:    loc.Region,
		Country:   loc.Country,
		Latitude:  loc.Lat,
		Longitude: loc.Lon,
		LocalTime: localTime,
	}
}

func malformed(msg string) error {
	return errors.Newf("%s", msg).
		Component("weather").
		Category(errors.CategoryMalformed).
		Build()
}
