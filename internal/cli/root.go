// Package cli defines the cobra command tree for realistly.
package cli

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/anerudhh/realistly/internal/config"
	"github.com/anerudhh/realistly/internal/logging"
	"github.com/anerudhh/realistly/internal/pipeline"
)

var (
	flagFormat   string
	flagConfig   string
	flagLogLevel string
	flagNoColor  bool
)

// NewRootCmd creates the root cobra command with global flags.
// Flag defaults read REALISTLY_* environment variables, so a .env file must
// be loaded before this is called.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "realistly",
		Short: "Extract property listings from chat exports",
		Long: "Turn exported real-estate group chats into a cleaned listing dataset. " +
			"Messages are reassembled, noise is filtered, and each listing is classified " +
			"and enriched with location, price, size and contact details.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagNoColor {
				color.NoColor = true
			}
			logging.Setup(logging.Options{
				Level:  flagLogLevel,
				Format: flagFormat,
				Writer: cmd.ErrOrStderr(),
			})
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagConfig, "config", config.Getenv(config.EnvConfig, ""), "pattern configuration file (default: embedded Bengaluru set)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", config.Getenv(config.EnvLogLevel, "info"), "log level (debug|info|warn|error)")
	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newExtractCmd(),
		newInspectCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// loadConfig loads the configuration named by --config, or the default.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagConfig != "" {
		log.Debug().Str("path", flagConfig).Msg("loaded config")
	}
	return cfg, nil
}

// newService builds the extraction pipeline from the active configuration.
func newService() (*pipeline.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return pipeline.NewService(cfg, log.Logger)
}
