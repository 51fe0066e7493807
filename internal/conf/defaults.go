// defaults.go: default values for the configuration parameters.
package conf

import "github.com/spf13/viper"

// setDefaultConfig sets viper defaults for every configuration parameter.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "WeatherDash")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs")
	viper.SetDefault("main.log.level", "info")

	viper.SetDefault("provider.name", "weatherapi")
	viper.SetDefault("provider.weatherapi.apikey", "")
	viper.SetDefault("provider.weatherapi.endpoint", "https://api.weatherapi.com/v1")
	viper.SetDefault("provider.weatherapi.timeout", 10)
	viper.SetDefault("provider.weatherapi.cachettl", 60)

	viper.SetDefault("dashboard.forecastdays", 3)

	viper.SetDefault("storage.path", "weatherdash.db")

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.port", "8090")
	viper.SetDefault("webserver.debug", false)
}
