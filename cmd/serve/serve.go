package serve

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ahmedebrahem0/weatherdash/internal/api"
	"github.com/ahmedebrahem0/weatherdash/internal/conf"
	"github.com/ahmedebrahem0/weatherdash/internal/dashboard"
	"github.com/ahmedebrahem0/weatherdash/internal/favorites"
	"github.com/ahmedebrahem0/weatherdash/internal/kvstore"
	"github.com/ahmedebrahem0/weatherdash/internal/logging"
	"github.com/ahmedebrahem0/weatherdash/internal/observability"
	"github.com/ahmedebrahem0/weatherdash/internal/weather"
	"github.com/prometheus/client_golang/prometheus"
)

// Command creates the serve command, which runs the HTTP API server.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the weather dashboard HTTP server",
		Long:  "Start the HTTP API serving weather queries, theme resolution and favorites.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(settings)
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().StringVar(&settings.WebServer.Port, "port", viper.GetString("webserver.port"), "Port to listen on")
	cmd.Flags().BoolVar(&settings.WebServer.Debug, "webdebug", viper.GetBool("webserver.debug"), "Enable web server debug output")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}

func runServer(settings *conf.Settings) error {
	metrics, err := observability.NewWeatherMetrics(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	provider, err := weather.NewProvider(settings, metrics)
	if err != nil {
		return fmt.Errorf("failed to create weather provider: %w", err)
	}

	kv, err := kvstore.OpenSQLite(settings.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open local storage: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logging.Error("Failed to close local storage", "error", err)
		}
	}()

	controller := api.New(settings, dashboard.NewService(provider, metrics), favorites.NewStore(kv), kv, metrics)
	defer controller.Shutdown()

	logging.Info("Starting web server", "port", settings.WebServer.Port)
	return controller.Start()
}
