// internal/cli/root.go
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smurfs/mathic-client/internal/api"
	"github.com/smurfs/mathic-client/internal/config"
)

var (
	cfg       config.Config
	logger    *logrus.Logger
	apiClient *api.Client
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg = config.FromEnv()
	logger = logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	rootCmd := &cobra.Command{
		Use:   "mathic",
		Short: "Client for the mathic two-player card game",
		Long: `mathic is a terminal client for the mathic card game service.

It keeps a locally consistent view of a server-authoritative session,
merging the one-shot snapshot fetch with the push subscription, and
validates moves, splits and surrenders before sending them upstream.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg.Verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			if cfg.WSURL == "" {
				cfg.WSURL = config.DeriveWSURL(cfg.ServerURL)
			}
			apiClient = api.New(cfg.ServerURL, cfg.Token, logger)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Game service URL (env: MATHIC_SERVER_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Bearer token (env: MATHIC_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newRandomCmd())
	rootCmd.AddCommand(newBeginCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
