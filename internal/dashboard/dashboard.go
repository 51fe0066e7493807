// Package dashboard orchestrates the "load weather for a location" flow:
// it validates the user's query, fans out the current/forecast/history
// fetches, joins their results and owns the resulting fetch state.
package dashboard

import (
	"context"
	"log"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ahmedebrahem0/weatherdash/internal/conf"
	"github.com/ahmedebrahem0/weatherdash/internal/errors"
	"github.com/ahmedebrahem0/weatherdash/internal/logging"
	"github.com/ahmedebrahem0/weatherdash/internal/observability"
	"github.com/ahmedebrahem0/weatherdash/internal/weather"
)

// Package-level logger for the dashboard service
var (
	dashLogger   *slog.Logger
	dashLevelVar = new(slog.LevelVar)
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "dashboard.log")
	dashLevelVar.Set(slog.LevelInfo)

	dashLogger, _, err = logging.NewFileLogger(logFilePath, "dashboard", dashLevelVar)
	if err != nil {
		log.Printf("Failed to initialize dashboard file logger at %s: %v. Falling back to disabled logger.", logFilePath, err)
		dashLogger = logging.DiscardLogger("dashboard", dashLevelVar)
	}
}

// Status is the dashboard's fetch state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// metric gauge values per status
var statusGauge = map[Status]float64{
	StatusIdle:    0,
	StatusLoading: 1,
	StatusLoaded:  2,
	StatusFailed:  3,
}

// Query is one user-initiated weather request.
type Query struct {
	Location     string
	ForecastDays int
	HistoryDate  time.Time
}

// Snapshot is the dashboard state at one point in time. Exactly one status
// holds; Current/Forecast/History are only populated when loaded.
type Snapshot struct {
	Status   Status
	Current  *weather.CurrentConditions
	Forecast []weather.ForecastDay
	History  []weather.HistoryDay

	// Partial-data flags: set when a best-effort section failed while the
	// snapshot as a whole loaded, so presentation can omit just that
	// section.
	ForecastPartial bool
	HistoryPartial  bool

	// Err is the failure reason when Status is StatusFailed.
	Err error
}

// Service owns the fetch state machine. Its state is mutated only under
// its own lock; observers receive copies.
type Service struct {
	provider weather.Provider
	metrics  *observability.WeatherMetrics

	mu         sync.Mutex
	state      Snapshot
	lastQuery  *Query
	generation uint64
}

// NewService creates a dashboard service in the idle state.
func NewService(provider weather.Provider, metrics *observability.WeatherMetrics) *Service {
	s := &Service{
		provider: provider,
		metrics:  metrics,
		state:    Snapshot{Status: StatusIdle},
	}
	metrics.SetDashboardState(statusGauge[StatusIdle])
	return s
}

// State returns a copy of the current snapshot.
func (s *Service) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// validateQuery checks a query before any network call or state change.
// The history date defaults to yesterday when unset.
func validateQuery(q *Query) error {
	if strings.TrimSpace(q.Location) == "" {
		return errors.Newf("location must not be empty").
			Component("dashboard").
			Category(errors.CategoryValidation).
			Build()
	}
	if q.ForecastDays < 0 || q.ForecastDays > conf.MaxForecastDays {
		return errors.Newf("forecast days must be between 0 and %d, got %d", conf.MaxForecastDays, q.ForecastDays).
			Component("dashboard").
			Category(errors.CategoryValidation).
			Context("days", q.ForecastDays).
			Build()
	}
	if q.HistoryDate.IsZero() {
		q.HistoryDate = time.Now().AddDate(0, 0, -1)
	}
	if q.HistoryDate.Format("2006-01-02") > time.Now().Format("2006-01-02") {
		return errors.Newf("history date %s is in the future", q.HistoryDate.Format("2006-01-02")).
			Component("dashboard").
			Category(errors.CategoryValidation).
			Context("date", q.HistoryDate.Format("2006-01-02")).
			Build()
	}
	return nil
}

// Submit runs one weather query to completion. Validation errors are
// returned immediately without entering the loading state. Otherwise the
// service transitions to loading, issues the fetches concurrently, joins
// them all, and commits exactly one transition to loaded or failed. A
// newer submission supersedes an older in-flight one: the older result is
// discarded on arrival (last-submit-wins).
func (s *Service) Submit(ctx context.Context, query Query) (Snapshot, error) {
	if err := validateQuery(&query); err != nil {
		s.metrics.RecordSubmit("validation")
		dashLogger.Warn("Rejected query before dispatch", "location", query.Location, "error", err)
		return s.State(), err
	}

	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.lastQuery = &query
	s.state = Snapshot{Status: StatusLoading}
	s.mu.Unlock()
	s.metrics.SetDashboardState(statusGauge[StatusLoading])

	dashLogger.Info("Submitting weather query",
		"location", query.Location,
		"forecast_days", query.ForecastDays,
		"history_date", query.HistoryDate.Format("2006-01-02"),
	)

	result := s.fetchAll(ctx, &query)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer submission took over while we were in flight; its outcome
	// is the one that counts.
	if generation != s.generation {
		s.metrics.RecordSubmit("superseded")
		dashLogger.Info("Discarding superseded result", "location", query.Location)
		return s.state, nil
	}

	s.state = result
	s.metrics.SetDashboardState(statusGauge[result.Status])
	if result.Status == StatusFailed {
		s.metrics.RecordSubmit("failed")
		dashLogger.Error("Weather query failed", "location", query.Location, "error", result.Err)
	} else {
		s.metrics.RecordSubmit("loaded")
		dashLogger.Info("Weather query loaded",
			"location", query.Location,
			"forecast_days", len(result.Forecast),
			"history_days", len(result.History),
			"forecast_partial", result.ForecastPartial,
			"history_partial", result.HistoryPartial,
		)
	}
	return s.state, nil
}

// fetchAll fans out the provider calls and joins them into one snapshot.
// All calls settle before a snapshot is produced, so observers never see
// a half-updated loaded state.
func (s *Service) fetchAll(ctx context.Context, query *Query) Snapshot {
	var (
		wg sync.WaitGroup

		current    *weather.CurrentConditions
		currentErr error

		forecast    []weather.ForecastDay
		forecastErr error

		history    []weather.HistoryDay
		historyErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		current, currentErr = s.provider.FetchCurrent(ctx, query.Location)
	}()

	// A zero-day forecast is defined as empty without a round trip.
	if query.ForecastDays > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			forecast, forecastErr = s.provider.FetchForecast(ctx, query.Location, query.ForecastDays)
		}()
	} else {
		forecast = []weather.ForecastDay{}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		history, historyErr = s.provider.FetchHistory(ctx, query.Location, query.HistoryDate)
	}()

	wg.Wait()

	// Current conditions are mandatory; forecast and history are
	// best-effort and degrade to partial data.
	if currentErr != nil {
		return Snapshot{Status: StatusFailed, Err: currentErr}
	}

	snapshot := Snapshot{
		Status:   StatusLoaded,
		Current:  current,
		Forecast: forecast,
		History:  history,
	}
	if forecastErr != nil {
		dashLogger.Warn("Forecast fetch failed, omitting section", "location", query.Location, "error", forecastErr)
		snapshot.Forecast = []weather.ForecastDay{}
		snapshot.ForecastPartial = true
	}
	if historyErr != nil {
		dashLogger.Warn("History fetch failed, omitting section", "location", query.Location, "error", historyErr)
		snapshot.History = []weather.HistoryDay{}
		snapshot.HistoryPartial = true
	}
	return snapshot
}

// Retry re-issues the last submitted query. Calling it with no prior
// query is a no-op.
func (s *Service) Retry(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	last := s.lastQuery
	s.mu.Unlock()

	if last == nil {
		return s.State(), nil
	}
	return s.Submit(ctx, *last)
}

// ClearError moves a failed dashboard back to idle without re-querying.
// It is a no-op in any other state.
func (s *Service) ClearError() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status == StatusFailed {
		s.state = Snapshot{Status: StatusIdle}
		s.metrics.SetDashboardState(statusGauge[StatusIdle])
	}
	return s.state
}
