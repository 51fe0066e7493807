package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ahmedebrahem0/weatherdash/cmd/fetch"
	"github.com/ahmedebrahem0/weatherdash/cmd/serve"
	"github.com/ahmedebrahem0/weatherdash/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "weatherdash",
		Short: "Weather dashboard CLI",
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	subcommands := []*cobra.Command{
		serve.Command(settings),
		fetch.Command(settings),
	}

	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return conf.ValidateSettings(settings)
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Provider.WeatherAPI.APIKey, "apikey", viper.GetString("provider.weatherapi.apikey"), "WeatherAPI.com API key")
	rootCmd.PersistentFlags().IntVar(&settings.Dashboard.ForecastDays, "days", viper.GetInt("dashboard.forecastdays"), "Default forecast day count, 0 to 7")
	rootCmd.PersistentFlags().StringVar(&settings.Storage.Path, "storage", viper.GetString("storage.path"), "Path to the local storage database")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
