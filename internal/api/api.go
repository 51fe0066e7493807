// Package api exposes the dashboard core over HTTP: the fetch state and
// its submit/retry/clear operations, the theme resolver, and the
// favorites store. Nothing else is exposed.
package api

import (
	"log"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ahmedebrahem0/weatherdash/internal/conf"
	"github.com/ahmedebrahem0/weatherdash/internal/dashboard"
	"github.com/ahmedebrahem0/weatherdash/internal/errors"
	"github.com/ahmedebrahem0/weatherdash/internal/favorites"
	"github.com/ahmedebrahem0/weatherdash/internal/kvstore"
	"github.com/ahmedebrahem0/weatherdash/internal/logging"
	"github.com/ahmedebrahem0/weatherdash/internal/observability"
)

// Controller manages the API routes and handlers.
type Controller struct {
	Echo      *echo.Echo
	Group     *echo.Group
	Settings  *conf.Settings
	Dashboard *dashboard.Service
	Favorites *favorites.Store
	KV        kvstore.Interface

	metrics        *observability.WeatherMetrics
	apiLogger      *slog.Logger
	apiLevelVar    *slog.LevelVar
	apiLoggerClose func() error
}

// New creates the API controller and registers every route.
func New(settings *conf.Settings, dash *dashboard.Service, favs *favorites.Store, kv kvstore.Interface, metrics *observability.WeatherMetrics) *Controller {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	c := &Controller{
		Echo:      e,
		Settings:  settings,
		Dashboard: dash,
		Favorites: favs,
		KV:        kv,
		metrics:   metrics,
	}
	c.initLogger()

	c.Group = e.Group("/api/v1")
	c.initWeatherRoutes()
	c.initThemeRoutes()
	c.initFavoritesRoutes()

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	return c
}

// initLogger sets up the API file logger with a disabled fallback.
func (c *Controller) initLogger() {
	c.apiLevelVar = new(slog.LevelVar)
	if c.Settings.WebServer.Debug {
		c.apiLevelVar.Set(slog.LevelDebug)
	} else {
		c.apiLevelVar.Set(slog.LevelInfo)
	}

	logFilePath := filepath.Join(c.Settings.Main.Log.Path, "api.log")
	var err error
	c.apiLogger, c.apiLoggerClose, err = logging.NewFileLogger(logFilePath, "api", c.apiLevelVar)
	if err != nil {
		log.Printf("Failed to initialize API file logger at %s: %v. Falling back to disabled logger.", logFilePath, err)
		c.apiLogger = logging.DiscardLogger("api", c.apiLevelVar)
		c.apiLoggerClose = func() error { return nil }
	}
}

// Start begins serving on the configured port. It blocks until the server
// stops.
func (c *Controller) Start() error {
	return c.Echo.Start(":" + c.Settings.WebServer.Port)
}

// Shutdown closes the API logger. The echo server itself is shut down by
// the caller owning its lifecycle.
func (c *Controller) Shutdown() {
	if c.apiLoggerClose != nil {
		_ = c.apiLoggerClose()
	}
}

// errorBody is the uniform error payload.
type errorBody struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}

// HandleError maps an error's category onto an HTTP status and returns a
// uniform JSON body. Provider wire shapes never leak through here.
func (c *Controller) HandleError(ctx echo.Context, err error) error {
	category := errors.CategoryOf(err)

	status := http.StatusBadGateway
	switch category {
	case errors.CategoryValidation:
		status = http.StatusBadRequest
	case errors.CategoryNotFound:
		status = http.StatusNotFound
	case errors.CategoryRateLimited:
		status = http.StatusTooManyRequests
	case errors.CategoryConfiguration, errors.CategoryDatabase:
		status = http.StatusInternalServerError
	}

	c.apiLogger.Error("Request failed",
		"path", ctx.Request().URL.Path,
		"category", string(category),
		"status", status,
		"error", err.Error(),
	)

	return ctx.JSON(status, errorBody{Error: err.Error(), Category: string(category)})
}
