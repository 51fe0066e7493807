package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedebrahem0/weatherdash/internal/conf"
	"github.com/ahmedebrahem0/weatherdash/internal/dashboard"
	"github.com/ahmedebrahem0/weatherdash/internal/errors"
	"github.com/ahmedebrahem0/weatherdash/internal/favorites"
	"github.com/ahmedebrahem0/weatherdash/internal/kvstore"
	"github.com/ahmedebrahem0/weatherdash/internal/weather"
)

// stubProvider returns canned data unless one of the error fields is set.
type stubProvider struct {
	currentErr  error
	forecastErr error
	historyErr  error
}

func (p *stubProvider) FetchCurrent(_ context.Context, location string) (*weather.CurrentConditions, error) {
	if p.currentErr != nil {
		return nil, p.currentErr
	}
	return &weather.CurrentConditions{
		Location:    weather.Location{Name: location, Country: "Egypt"},
		Temperature: 31.2,
		Humidity:    40,
		Condition:   weather.Condition{Text: "Sunny"},
	}, nil
}

func (p *stubProvider) FetchForecast(_ context.Context, _ string, days int) ([]weather.ForecastDay, error) {
	if p.forecastErr != nil {
		return nil, p.forecastErr
	}
	forecast := make([]weather.ForecastDay, days)
	for i := range forecast {
		forecast[i] = weather.ForecastDay{
			Date:      time.Now().AddDate(0, 0, i),
			MaxTemp:   33.0,
			MinTemp:   24.5,
			Condition: weather.Condition{Text: "Sunny"},
		}
	}
	return forecast, nil
}

func (p *stubProvider) FetchHistory(_ context.Context, _ string, date time.Time) ([]weather.HistoryDay, error) {
	if p.historyErr != nil {
		return nil, p.historyErr
	}
	return []weather.HistoryDay{{Date: date}}, nil
}

func newTestController(t *testing.T, provider weather.Provider) *Controller {
	t.Helper()

	settings := &conf.Settings{}
	settings.Main.Log.Path = t.TempDir()
	settings.WebServer.Port = "8080"

	kv := kvstore.NewMemoryStore()
	controller := New(settings, dashboard.NewService(provider, nil), favorites.NewStore(kv), kv, nil)
	t.Cleanup(controller.Shutdown)
	return controller
}

func doRequest(controller *Controller, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	controller.Echo.ServeHTTP(rec, req)
	return rec
}

func TestGetWeatherState_InitiallyIdle(t *testing.T) {
	controller := newTestController(t, &stubProvider{})

	rec := doRequest(controller, http.MethodGet, "/api/v1/weather", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, "idle", snapshot.Status)
	assert.Nil(t, snapshot.Current)
}

func TestSubmitWeatherQuery_Success(t *testing.T) {
	controller := newTestController(t, &stubProvider{})

	rec := doRequest(controller, http.MethodPost, "/api/v1/weather",
		`{"location":"Cairo","days":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, "loaded", snapshot.Status)
	require.NotNil(t, snapshot.Current)
	assert.Equal(t, "Cairo", snapshot.Current.Location)
	assert.InDelta(t, 31.2, snapshot.Current.Temperature, 0.01)
	assert.Len(t, snapshot.Forecast, 3)
	assert.False(t, snapshot.ForecastPartial)
}

func TestSubmitWeatherQuery_EmptyLocationRejected(t *testing.T) {
	controller := newTestController(t, &stubProvider{})

	rec := doRequest(controller, http.MethodPost, "/api/v1/weather",
		`{"location":"  ","days":3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation", body["category"])
}

func TestSubmitWeatherQuery_BadDateRejected(t *testing.T) {
	controller := newTestController(t, &stubProvider{})

	rec := doRequest(controller, http.MethodPost, "/api/v1/weather",
		`{"location":"Cairo","days":3,"date":"not-a-date"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitWeatherQuery_CurrentFailureReportedInSnapshot(t *testing.T) {
	notFound := errors.Newf("no matching location found").
		Component("weather").
		Category(errors.CategoryNotFound).
		Build()
	controller := newTestController(t, &stubProvider{currentErr: notFound})

	rec := doRequest(controller, http.MethodPost, "/api/v1/weather",
		`{"location":"Nowhereville","days":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, "failed", snapshot.Status)
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, "not-found", snapshot.Error.Category)
}

func TestSubmitWeatherQuery_ForecastFailureIsPartial(t *testing.T) {
	forecastErr := errors.Newf("upstream timeout").
		Component("weather").
		Category(errors.CategoryNetwork).
		Build()
	controller := newTestController(t, &stubProvider{forecastErr: forecastErr})

	rec := doRequest(controller, http.MethodPost, "/api/v1/weather",
		`{"location":"Cairo","days":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, "loaded", snapshot.Status)
	assert.True(t, snapshot.ForecastPartial)
	assert.Empty(t, snapshot.Forecast)
}

func TestRetryWeatherQuery_ReissuesLastQuery(t *testing.T) {
	provider := &stubProvider{currentErr: errors.Newf("connection refused").
		Component("weather").
		Category(errors.CategoryNetwork).
		Build()}
	controller := newTestController(t, provider)

	rec := doRequest(controller, http.MethodPost, "/api/v1/weather",
		`{"location":"Cairo","days":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	provider.currentErr = nil
	rec = doRequest(controller, http.MethodPost, "/api/v1/weather/retry", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, "loaded", snapshot.Status)
	require.NotNil(t, snapshot.Current)
	assert.Equal(t, "Cairo", snapshot.Current.Location)
}

func TestClearWeatherError_ReturnsToIdle(t *testing.T) {
	controller := newTestController(t, &stubProvider{currentErr: errors.Newf("boom").
		Component("weather").
		Category(errors.CategoryNetwork).
		Build()})

	doRequest(controller, http.MethodPost, "/api/v1/weather", `{"location":"Cairo"}`)

	rec := doRequest(controller, http.MethodDelete, "/api/v1/weather/error", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, "idle", snapshot.Status)
	assert.Nil(t, snapshot.Error)
}

func TestGetTheme_DefaultsToDark(t *testing.T) {
	controller := newTestController(t, &stubProvider{})

	rec := doRequest(controller, http.MethodGet, "/api/v1/theme", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ThemeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsDark)
	assert.Equal(t, "auto", resp.SeasonalMode)
	assert.NotEmpty(t, resp.Token.Background)
}

func TestGetTheme_ConditionDrivesWeatherLayer(t *testing.T) {
	controller := newTestController(t, &stubProvider{})

	rec := doRequest(controller, http.MethodGet,
		"/api/v1/theme?seasonal=none&condition=Heavy+rain", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ThemeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Token.Primary, "blue")
}

func TestSetDarkMode_Persists(t *testing.T) {
	controller := newTestController(t, &stubProvider{})

	rec := doRequest(controller, http.MethodPut, "/api/v1/theme/dark", `{"is_dark":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(controller, http.MethodGet, "/api/v1/theme", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ThemeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsDark)
}

func TestFavorites_AddListRemove(t *testing.T) {
	controller := newTestController(t, &stubProvider{})

	rec := doRequest(controller, http.MethodPost, "/api/v1/favorites",
		`{"name":"Cairo","country":"Egypt"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(controller, http.MethodGet, "/api/v1/favorites", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []favorites.FavoriteLocation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Cairo", list[0].Name)

	rec = doRequest(controller, http.MethodDelete, "/api/v1/favorites/Cairo", "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestFavorites_EmptyNameRejected(t *testing.T) {
	controller := newTestController(t, &stubProvider{})

	rec := doRequest(controller, http.MethodPost, "/api/v1/favorites",
		`{"name":"","country":"Egypt"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpointServes(t *testing.T) {
	controller := newTestController(t, &stubProvider{})

	rec := doRequest(controller, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
