package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmedebrahem0/weatherdash/internal/errors"
	"github.com/ahmedebrahem0/weatherdash/internal/weather"
)

// fakeProvider scripts provider behavior per test.
type fakeProvider struct {
	mu            sync.Mutex
	currentCalls  int
	forecastCalls int
	historyCalls  int

	currentFn  func(location string) (*weather.CurrentConditions, error)
	forecastFn func(location string, days int) ([]weather.ForecastDay, error)
	historyFn  func(location string, date time.Time) ([]weather.HistoryDay, error)
}

func (f *fakeProvider) FetchCurrent(_ context.Context, location string) (*weather.CurrentConditions, error) {
	f.mu.Lock()
	f.currentCalls++
	f.mu.Unlock()
	if f.currentFn != nil {
		return f.currentFn(location)
	}
	return testConditions(location), nil
}

func (f *fakeProvider) FetchForecast(_ context.Context, location string, days int) ([]weather.ForecastDay, error) {
	f.mu.Lock()
	f.forecastCalls++
	f.mu.Unlock()
	if f.forecastFn != nil {
		return f.forecastFn(location, days)
	}
	return testForecast(days), nil
}

func (f *fakeProvider) FetchHistory(_ context.Context, location string, date time.Time) ([]weather.HistoryDay, error) {
	f.mu.Lock()
	f.historyCalls++
	f.mu.Unlock()
	if f.historyFn != nil {
		return f.historyFn(location, date)
	}
	return []weather.HistoryDay{{Date: date}}, nil
}

func (f *fakeProvider) calls() (current, forecast, history int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentCalls, f.forecastCalls, f.historyCalls
}

func testConditions(location string) *weather.CurrentConditions {
	return &weather.CurrentConditions{
		Location:    weather.Location{Name: location, Country: "Testland"},
		Temperature: 21.5,
		Condition:   weather.Condition{Text: "Sunny"},
	}
}

func testForecast(days int) []weather.ForecastDay {
	out := make([]weather.ForecastDay, days)
	for i := range out {
		out[i].Date = time.Now().AddDate(0, 0, i+1)
	}
	return out
}

func yesterday() time.Time {
	return time.Now().AddDate(0, 0, -1)
}

func networkError(msg string) error {
	return errors.Newf("%s", msg).Component("weather").Category(errors.CategoryNetwork).Build()
}

func TestSubmit_Loads(t *testing.T) {
	provider := &fakeProvider{}
	service := NewService(provider, nil)

	snapshot, err := service.Submit(context.Background(), Query{
		Location:     "Cairo",
		ForecastDays: 3,
		HistoryDate:  yesterday(),
	})

	require.NoError(t, err)
	assert.Equal(t, StatusLoaded, snapshot.Status)
	require.NotNil(t, snapshot.Current)
	assert.Equal(t, "Cairo", snapshot.Current.Location.Name)
	assert.Len(t, snapshot.Forecast, 3)
	assert.Len(t, snapshot.History, 1)
	assert.False(t, snapshot.ForecastPartial)
	assert.False(t, snapshot.HistoryPartial)
	assert.Equal(t, snapshot, service.State())
}

func TestSubmit_ZeroForecastDaysSkipsForecastFetch(t *testing.T) {
	provider := &fakeProvider{}
	service := NewService(provider, nil)

	snapshot, err := service.Submit(context.Background(), Query{
		Location:     "Cairo",
		ForecastDays: 0,
		HistoryDate:  yesterday(),
	})

	require.NoError(t, err)
	assert.Equal(t, StatusLoaded, snapshot.Status)
	assert.Empty(t, snapshot.Forecast)
	assert.False(t, snapshot.ForecastPartial)

	current, forecast, history := provider.calls()
	assert.Equal(t, 1, current)
	assert.Zero(t, forecast)
	assert.Equal(t, 1, history)
}

func TestSubmit_EachPositiveDayCountFetchesForecast(t *testing.T) {
	for days := 1; days <= 7; days++ {
		provider := &fakeProvider{}
		service := NewService(provider, nil)

		_, err := service.Submit(context.Background(), Query{
			Location:     "Cairo",
			ForecastDays: days,
			HistoryDate:  yesterday(),
		})
		require.NoError(t, err)

		_, forecast, _ := provider.calls()
		assert.Equal(t, 1, forecast, "days=%d", days)
	}
}

func TestSubmit_ValidationRejectedBeforeDispatch(t *testing.T) {
	tests := []struct {
		name  string
		query Query
	}{
		{"empty_location", Query{Location: "  ", ForecastDays: 3}},
		{"days_too_high", Query{Location: "Cairo", ForecastDays: 9}},
		{"days_negative", Query{Location: "Cairo", ForecastDays: -1}},
		{"future_history_date", Query{Location: "Cairo", ForecastDays: 3, HistoryDate: time.Now().AddDate(0, 0, 3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{}
			service := NewService(provider, nil)

			snapshot, err := service.Submit(context.Background(), tt.query)

			require.Error(t, err)
			assert.Equal(t, errors.CategoryValidation, errors.CategoryOf(err))
			// never entered loading, no calls dispatched
			assert.Equal(t, StatusIdle, snapshot.Status)
			current, forecast, history := provider.calls()
			assert.Zero(t, current+forecast+history)
		})
	}
}

func TestSubmit_CurrentFailureFailsWholeOperation(t *testing.T) {
	provider := &fakeProvider{
		currentFn: func(string) (*weather.CurrentConditions, error) {
			return nil, errors.Newf("location not found").Category(errors.CategoryNotFound).Build()
		},
	}
	service := NewService(provider, nil)

	snapshot, err := service.Submit(context.Background(), Query{
		Location:     "Nowhere123",
		ForecastDays: 0,
		HistoryDate:  time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, snapshot.Status)
	require.Error(t, snapshot.Err)
	assert.Equal(t, errors.CategoryNotFound, errors.CategoryOf(snapshot.Err))
	assert.Nil(t, snapshot.Current)
}

func TestSubmit_HistoryFailureDowngradesToPartial(t *testing.T) {
	provider := &fakeProvider{
		historyFn: func(string, time.Time) ([]weather.HistoryDay, error) {
			return nil, networkError("connection reset")
		},
	}
	service := NewService(provider, nil)

	snapshot, err := service.Submit(context.Background(), Query{
		Location:     "Cairo",
		ForecastDays: 3,
		HistoryDate:  yesterday(),
	})

	require.NoError(t, err)
	assert.Equal(t, StatusLoaded, snapshot.Status)
	assert.Len(t, snapshot.Forecast, 3)
	assert.Empty(t, snapshot.History)
	assert.True(t, snapshot.HistoryPartial)
	assert.False(t, snapshot.ForecastPartial)
}

func TestSubmit_ForecastFailureDowngradesToPartial(t *testing.T) {
	provider := &fakeProvider{
		forecastFn: func(string, int) ([]weather.ForecastDay, error) {
			return nil, networkError("timeout")
		},
	}
	service := NewService(provider, nil)

	snapshot, err := service.Submit(context.Background(), Query{
		Location:     "Cairo",
		ForecastDays: 5,
		HistoryDate:  yesterday(),
	})

	require.NoError(t, err)
	assert.Equal(t, StatusLoaded, snapshot.Status)
	assert.True(t, snapshot.ForecastPartial)
	assert.Empty(t, snapshot.Forecast)
	assert.Len(t, snapshot.History, 1)
}

func TestSubmit_LastSubmitWins(t *testing.T) {
	release := make(chan struct{})
	provider := &fakeProvider{
		currentFn: func(location string) (*weather.CurrentConditions, error) {
			if location == "Slow" {
				<-release
			}
			return testConditions(location), nil
		},
	}
	service := NewService(provider, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = service.Submit(context.Background(), Query{Location: "Slow", ForecastDays: 0, HistoryDate: yesterday()})
	}()

	// wait until the slow submission is in flight
	require.Eventually(t, func() bool {
		current, _, _ := provider.calls()
		return current >= 1
	}, time.Second, time.Millisecond)

	snapshot, err := service.Submit(context.Background(), Query{Location: "Fast", ForecastDays: 0, HistoryDate: yesterday()})
	require.NoError(t, err)
	require.Equal(t, StatusLoaded, snapshot.Status)

	// let the superseded submission finish; it must not overwrite
	close(release)
	wg.Wait()

	final := service.State()
	assert.Equal(t, StatusLoaded, final.Status)
	require.NotNil(t, final.Current)
	assert.Equal(t, "Fast", final.Current.Location.Name)
}

func TestRetry_NoPriorQueryIsNoOp(t *testing.T) {
	provider := &fakeProvider{}
	service := NewService(provider, nil)

	snapshot, err := service.Retry(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StatusIdle, snapshot.Status)
	current, forecast, history := provider.calls()
	assert.Zero(t, current+forecast+history)
}

func TestRetry_ReissuesLastQuery(t *testing.T) {
	failing := true
	provider := &fakeProvider{}
	provider.currentFn = func(location string) (*weather.CurrentConditions, error) {
		if failing {
			return nil, networkError("transient")
		}
		return testConditions(location), nil
	}
	service := NewService(provider, nil)

	snapshot, err := service.Submit(context.Background(), Query{Location: "Cairo", ForecastDays: 2, HistoryDate: yesterday()})
	require.NoError(t, err)
	require.Equal(t, StatusFailed, snapshot.Status)

	failing = false
	snapshot, err = service.Retry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusLoaded, snapshot.Status)
	require.NotNil(t, snapshot.Current)
	assert.Equal(t, "Cairo", snapshot.Current.Location.Name)
	assert.Len(t, snapshot.Forecast, 2)
}

func TestClearError(t *testing.T) {
	provider := &fakeProvider{
		currentFn: func(string) (*weather.CurrentConditions, error) {
			return nil, networkError("down")
		},
	}
	service := NewService(provider, nil)

	snapshot, err := service.Submit(context.Background(), Query{Location: "Cairo", ForecastDays: 0, HistoryDate: yesterday()})
	require.NoError(t, err)
	require.Equal(t, StatusFailed, snapshot.Status)

	snapshot = service.ClearError()
	assert.Equal(t, StatusIdle, snapshot.Status)
	assert.Nil(t, snapshot.Err)

	// no re-query happened
	current, _, _ := provider.calls()
	assert.Equal(t, 1, current)

	// a second clear is a no-op
	assert.Equal(t, StatusIdle, service.ClearError().Status)
}

func TestSubmit_HistoryDateDefaultsToYesterday(t *testing.T) {
	var seen time.Time
	provider := &fakeProvider{
		historyFn: func(_ string, date time.Time) ([]weather.HistoryDay, error) {
			seen = date
			return []weather.HistoryDay{{Date: date}}, nil
		},
	}
	service := NewService(provider, nil)

	_, err := service.Submit(context.Background(), Query{Location: "Cairo", ForecastDays: 0})
	require.NoError(t, err)
	assert.Equal(t, time.Now().AddDate(0, 0, -1).Format("2006-01-02"), seen.Format("2006-01-02"))
}
