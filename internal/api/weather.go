package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ahmedebrahem0/weatherdash/internal/dashboard"
	"github.com/ahmedebrahem0/weatherdash/internal/errors"
	"github.com/ahmedebrahem0/weatherdash/internal/weather"
)

// SubmitRequest is the payload for submitting a weather query.
type SubmitRequest struct {
	Location string `json:"location"`
	Days     int    `json:"days"`
	Date     string `json:"date"` // YYYY-MM-DD, empty defaults to yesterday
}

// ConditionResponse is a condition descriptor.
type ConditionResponse struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// CurrentResponse is the API shape of current conditions.
type CurrentResponse struct {
	Location    string            `json:"location"`
	Region      string            `json:"region,omitempty"`
	Country     string            `json:"country"`
	LocalTime   string            `json:"local_time,omitempty"`
	Temperature float64           `json:"temperature"`
	FeelsLike   float64           `json:"feels_like"`
	Humidity    int               `json:"humidity"`
	WindSpeed   float64           `json:"wind_speed"`
	WindDir     string            `json:"wind_dir,omitempty"`
	Pressure    float64           `json:"pressure"`
	UVIndex     float64           `json:"uv_index"`
	Visibility  float64           `json:"visibility"`
	CloudCover  int               `json:"cloud_cover"`
	Condition   ConditionResponse `json:"condition"`
}

// ForecastDayResponse is the API shape of one forecast day.
type ForecastDayResponse struct {
	Date        string            `json:"date"`
	MaxTemp     float64           `json:"max_temp"`
	MinTemp     float64           `json:"min_temp"`
	AvgHumidity int               `json:"avg_humidity"`
	MaxWind     float64           `json:"max_wind"`
	RainChance  int               `json:"rain_chance"`
	UVIndex     float64           `json:"uv_index"`
	Sunrise     string            `json:"sunrise,omitempty"`
	Sunset      string            `json:"sunset,omitempty"`
	Condition   ConditionResponse `json:"condition"`
}

// HourResponse is the API shape of one historical hourly sample.
type HourResponse struct {
	Time        string            `json:"time"`
	Temperature float64           `json:"temperature"`
	FeelsLike   float64           `json:"feels_like"`
	Humidity    int               `json:"humidity"`
	WindSpeed   float64           `json:"wind_speed"`
	Condition   ConditionResponse `json:"condition"`
}

// HistoryDayResponse is the API shape of one historical day.
type HistoryDayResponse struct {
	Date  string         `json:"date"`
	Hours []HourResponse `json:"hours"`
}

// SnapshotResponse is the API shape of the dashboard state.
type SnapshotResponse struct {
	Status          string                `json:"status"`
	Current         *CurrentResponse      `json:"current,omitempty"`
	Forecast        []ForecastDayResponse `json:"forecast"`
	History         []HistoryDayResponse  `json:"history"`
	ForecastPartial bool                  `json:"forecast_partial"`
	HistoryPartial  bool                  `json:"history_partial"`
	Error           *errorBody            `json:"error,omitempty"`
}

// initWeatherRoutes registers the dashboard endpoints.
func (c *Controller) initWeatherRoutes() {
	weatherGroup := c.Group.Group("/weather")

	weatherGroup.GET("", c.GetWeatherState)
	weatherGroup.POST("", c.SubmitWeatherQuery)
	weatherGroup.POST("/retry", c.RetryWeatherQuery)
	weatherGroup.DELETE("/error", c.ClearWeatherError)
}

// GetWeatherState handles GET /api/v1/weather
func (c *Controller) GetWeatherState(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, buildSnapshotResponse(c.Dashboard.State()))
}

// SubmitWeatherQuery handles POST /api/v1/weather
func (c *Controller) SubmitWeatherQuery(ctx echo.Context) error {
	var req SubmitRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, errors.Newf("invalid request body: %w", err).
			Component("api").
			Category(errors.CategoryValidation).
			Build())
	}

	query := dashboard.Query{
		Location:     req.Location,
		ForecastDays: req.Days,
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.HandleError(ctx, errors.Newf("invalid date %q, expected YYYY-MM-DD", req.Date).
				Component("api").
				Category(errors.CategoryValidation).
				Build())
		}
		query.HistoryDate = date
	}

	c.apiLogger.Info("Submitting weather query",
		"location", query.Location,
		"days", query.ForecastDays,
		"ip", ctx.RealIP(),
	)

	snapshot, err := c.Dashboard.Submit(ctx.Request().Context(), query)
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, buildSnapshotResponse(snapshot))
}

// RetryWeatherQuery handles POST /api/v1/weather/retry
func (c *Controller) RetryWeatherQuery(ctx echo.Context) error {
	snapshot, err := c.Dashboard.Retry(ctx.Request().Context())
	if err != nil {
		return c.HandleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, buildSnapshotResponse(snapshot))
}

// ClearWeatherError handles DELETE /api/v1/weather/error
func (c *Controller) ClearWeatherError(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, buildSnapshotResponse(c.Dashboard.ClearError()))
}

func buildSnapshotResponse(snapshot dashboard.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		Status:          string(snapshot.Status),
		Forecast:        make([]ForecastDayResponse, 0, len(snapshot.Forecast)),
		History:         make([]HistoryDayResponse, 0, len(snapshot.History)),
		ForecastPartial: snapshot.ForecastPartial,
		HistoryPartial:  snapshot.HistoryPartial,
	}

	if snapshot.Current != nil {
		resp.Current = buildCurrentResponse(snapshot.Current)
	}
	for i := range snapshot.Forecast {
		resp.Forecast = append(resp.Forecast, buildForecastDayResponse(&snapshot.Forecast[i]))
	}
	for i := range snapshot.History {
		resp.History = append(resp.History, buildHistoryDayResponse(&snapshot.History[i]))
	}
	if snapshot.Err != nil {
		resp.Error = &errorBody{
			Error:    snapshot.Err.Error(),
			Category: string(errors.CategoryOf(snapshot.Err)),
		}
	}
	return resp
}

func buildCurrentResponse(current *weather.CurrentConditions) *CurrentResponse {
	resp := &CurrentResponse{
		Location:    current.Location.Name,
		Region:      current.Location.Region,
		Country:     current.Location.Country,
		Temperature: current.Temperature,
		FeelsLike:   current.FeelsLike,
		Humidity:    current.Humidity,
		WindSpeed:   current.WindSpeed,
		WindDir:     current.WindDir,
		Pressure:    current.Pressure,
		UVIndex:     current.UVIndex,
		Visibility:  current.Visibility,
		CloudCover:  current.CloudCover,
		Condition:   ConditionResponse{Text: current.Condition.Text, Icon: current.Condition.Icon},
	}
	if !current.Location.LocalTime.IsZero() {
		resp.LocalTime = current.Location.LocalTime.Format("2006-01-02 15:04")
	}
	return resp
}

func buildForecastDayResponse(day *weather.ForecastDay) ForecastDayResponse {
	return ForecastDayResponse{
		Date:        day.Date.Format("2006-01-02"),
		MaxTemp:     day.MaxTemp,
		MinTemp:     day.MinTemp,
		AvgHumidity: day.AvgHumidity,
		MaxWind:     day.MaxWind,
		RainChance:  day.RainChance,
		UVIndex:     day.UVIndex,
		Sunrise:     day.Sunrise,
		Sunset:      day.Sunset,
		Condition:   ConditionResponse{Text: day.Condition.Text, Icon: day.Condition.Icon},
	}
}

func buildHistoryDayResponse(day *weather.HistoryDay) HistoryDayResponse {
	resp := HistoryDayResponse{
		Date:  day.Date.Format("2006-01-02"),
		Hours: make([]HourResponse, 0, len(day.Hours)),
	}
	for i := range day.Hours {
		h := &day.Hours[i]
		resp.Hours = append(resp.Hours, HourResponse{
			Time:        h.Time.Format("15:04"),
			Temperature: h.Temperature,
			FeelsLike:   h.FeelsLike,
			Humidity:    h.Humidity,
			WindSpeed:   h.WindSpeed,
			Condition:   ConditionResponse{Text: h.Condition.Text, Icon: h.Condition.Icon},
		})
	}
	return resp
}
