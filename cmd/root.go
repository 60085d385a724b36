package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"movie-discovery/pkg/config"
	"movie-discovery/pkg/telemetry"
)

// Configuration flags
var (
	apiKey     string
	portNumber string
	gatewayURL string
	bucketName string
	logLevel   string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "movie-discovery",
		Short: "Movie Discovery is a browser for trending, popular and upcoming movies",
		Long: `Movie Discovery is a command line application that serves a movie browsing
site backed by The Movie Database. It can also query trending titles, search the
catalogue and export snapshots from the terminal.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logLevel
			if level == "" {
				level = os.Getenv("LOG_LEVEL")
			}
			telemetry.SetupLogging(level)
		},
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&apiKey, "api-key", "k", "", "Set the TMDB_API_KEY (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&gatewayURL, "gateway-url", "g", "", "Set the GATEWAY_URL (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the EXPORT_BUCKET (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "Set the LOG_LEVEL (overrides environment variable)")

	// Add commands to root
	rootCmd.AddCommand(newListCategoriesCmd())
	rootCmd.AddCommand(newTrendingCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newShowTitleCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newListExportsCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	if apiKey != "" {
		os.Setenv("TMDB_API_KEY", apiKey)
	}

	if portNumber != "" {
		os.Setenv("PORT", portNumber)
	}

	if gatewayURL != "" {
		os.Setenv("GATEWAY_URL", gatewayURL)
	}

	if bucketName != "" {
		os.Setenv("EXPORT_BUCKET", bucketName)
	}

	if logLevel != "" {
		os.Setenv("LOG_LEVEL", logLevel)
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}
