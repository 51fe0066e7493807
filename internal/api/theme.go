package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ahmedebrahem0/weatherdash/internal/errors"
	"github.com/ahmedebrahem0/weatherdash/internal/theme"
)

// ThemeResponse carries the resolved token set plus the inputs that
// produced it, so clients can render without re-deriving anything.
type ThemeResponse struct {
	IsDark       bool        `json:"is_dark"`
	SeasonalMode string      `json:"seasonal_mode"`
	WeatherMode  string      `json:"weather_mode"`
	Token        theme.Token `json:"token"`
}

// DarkModeRequest is the payload for updating the dark-mode preference.
type DarkModeRequest struct {
	IsDark bool `json:"is_dark"`
}

// initThemeRoutes registers the theme endpoints.
func (c *Controller) initThemeRoutes() {
	themeGroup := c.Group.Group("/theme")

	themeGroup.GET("", c.GetTheme)
	themeGroup.PUT("/dark", c.SetDarkMode)
}

// GetTheme handles GET /api/v1/theme
//
// Query parameters: seasonal (auto|none|spring|summer|autumn|winter),
// weather (auto|none|rainy|snowy|stormy|cloudy|sunny|foggy) and
// condition, the free-text condition used when weather=auto. Both modes
// default to auto.
func (c *Controller) GetTheme(ctx echo.Context) error {
	seasonal := theme.SeasonalMode(ctx.QueryParam("seasonal"))
	if seasonal == "" {
		seasonal = theme.SeasonalAuto
	}
	weatherMode := theme.WeatherMode(ctx.QueryParam("weather"))
	if weatherMode == "" {
		weatherMode = theme.WeatherAuto
	}
	condition := ctx.QueryParam("condition")

	isDark := theme.LoadDarkPreference(c.KV)
	token := theme.Resolve(isDark, seasonal, weatherMode, time.Now(), condition)

	return ctx.JSON(http.StatusOK, ThemeResponse{
		IsDark:       isDark,
		SeasonalMode: string(seasonal),
		WeatherMode:  string(weatherMode),
		Token:        token,
	})
}

// SetDarkMode handles PUT /api/v1/theme/dark
func (c *Controller) SetDarkMode(ctx echo.Context) error {
	var req DarkModeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, errors.Newf("invalid request body: %w", err).
			Component("api").
			Category(errors.CategoryValidation).
			Build())
	}

	if err := theme.SaveDarkPreference(c.KV, req.IsDark); err != nil {
		return c.HandleError(ctx, errors.New(err).
			Component("api").
			Category(errors.CategoryDatabase).
			Build())
	}

	c.apiLogger.Info("Dark mode preference updated", "is_dark", req.IsDark)
	return ctx.JSON(http.StatusOK, DarkModeRequest{IsDark: req.IsDark})
}
