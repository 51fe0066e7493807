// validate.go: validation of the loaded settings.
package conf

import (
	"fmt"
	"strconv"
)

// MaxForecastDays is the largest forecast range the provider supports.
const MaxForecastDays = 7

// ValidateSettings checks the loaded settings for invalid combinations.
func ValidateSettings(settings *Settings) error {
	if err := validateProviderSettings(&settings.Provider); err != nil {
		return err
	}
	if err := validateDashboardSettings(&settings.Dashboard); err != nil {
		return err
	}
	if err := validateWebServerSettings(&settings.WebServer); err != nil {
		return err
	}
	if settings.Storage.Path == "" {
		return fmt.Errorf("storage path must not be empty")
	}
	return nil
}

func validateProviderSettings(provider *ProviderSettings) error {
	switch provider.Name {
	case "weatherapi":
		if provider.WeatherAPI.Endpoint == "" {
			return fmt.Errorf("weatherapi endpoint must not be empty")
		}
		if provider.WeatherAPI.Timeout <= 0 {
			return fmt.Errorf("weatherapi timeout must be positive, got %d", provider.WeatherAPI.Timeout)
		}
		if provider.WeatherAPI.CacheTTL < 0 {
			return fmt.Errorf("weatherapi cache TTL must not be negative, got %d", provider.WeatherAPI.CacheTTL)
		}
	default:
		return fmt.Errorf("invalid weather provider: %s", provider.Name)
	}
	return nil
}

func validateDashboardSettings(dashboard *DashboardSettings) error {
	if dashboard.ForecastDays < 0 || dashboard.ForecastDays > MaxForecastDays {
		return fmt.Errorf("dashboard forecast days must be between 0 and %d, got %d", MaxForecastDays, dashboard.ForecastDays)
	}
	return nil
}

func validateWebServerSettings(ws *WebServerSettings) error {
	if !ws.Enabled {
		return nil
	}
	port, err := strconv.Atoi(ws.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid web server port: %s", ws.Port)
	}
	return nil
}
