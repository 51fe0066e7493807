package fetch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ahmedebrahem0/weatherdash/internal/conf"
	"github.com/ahmedebrahem0/weatherdash/internal/dashboard"
	"github.com/ahmedebrahem0/weatherdash/internal/weather"
)

var historyDate string

// Command creates the fetch command, which runs a single weather query
// and prints the result.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [location]",
		Short: "Fetch weather for a location",
		Long:  "Run a one-shot weather query and print current conditions, forecast and history.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeFetch(settings, args[0])
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().IntVar(&settings.Dashboard.ForecastDays, "days", viper.GetInt("dashboard.forecastdays"), "Forecast day count, 0 to 7")
	cmd.Flags().StringVar(&historyDate, "date", "", "History date as YYYY-MM-DD, defaults to yesterday")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}

func executeFetch(settings *conf.Settings, location string) error {
	provider, err := weather.NewProvider(settings, nil)
	if err != nil {
		return fmt.Errorf("failed to create weather provider: %w", err)
	}

	query := dashboard.Query{
		Location:     location,
		ForecastDays: settings.Dashboard.ForecastDays,
	}
	if historyDate != "" {
		date, err := time.Parse("2006-01-02", historyDate)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", historyDate)
		}
		query.HistoryDate = date
	}

	timeout := time.Duration(settings.Provider.WeatherAPI.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	snapshot, err := dashboard.NewService(provider, nil).Submit(ctx, query)
	if err != nil {
		return err
	}
	if snapshot.Err != nil {
		return snapshot.Err
	}

	printSnapshot(&snapshot)
	return nil
}

func printSnapshot(snapshot *dashboard.Snapshot) {
	current := snapshot.Current
	fmt.Printf("%s, %s\n", current.Location.Name, current.Location.Country)
	fmt.Printf("  %s, %.1f°C (feels like %.1f°C)\n", current.Condition.Text, current.Temperature, current.FeelsLike)
	fmt.Printf("  humidity %d%%, wind %.1f km/h %s, pressure %.0f mb, UV %.1f\n",
		current.Humidity, current.WindSpeed, current.WindDir, current.Pressure, current.UVIndex)

	if len(snapshot.Forecast) > 0 {
		fmt.Println("\nForecast:")
		for i := range snapshot.Forecast {
			day := &snapshot.Forecast[i]
			fmt.Printf("  %s  %5.1f / %-5.1f °C  %3d%% rain  %s\n",
				day.Date.Format("2006-01-02"), day.MinTemp, day.MaxTemp, day.RainChance, day.Condition.Text)
		}
	}
	if snapshot.ForecastPartial {
		fmt.Println("  (forecast unavailable)")
	}

	if len(snapshot.History) > 0 {
		fmt.Println("\nHistory:")
		for i := range snapshot.History {
			day := &snapshot.History[i]
			fmt.Printf("  %s, %d hourly samples\n", day.Date.Format("2006-01-02"), len(day.Hours))
		}
	}
	if snapshot.HistoryPartial {
		fmt.Println("  (history unavailable)")
	}
}
