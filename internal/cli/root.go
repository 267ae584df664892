package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seqvault/seqvault/internal/platform"
)

type RootOptions struct {
	ConfigPath     string
	JSONOutput     bool
	LogLevel       string
	LogFormat      string
	NonInteractive bool
}

func newRootCmd() *cobra.Command {
	opts := &RootOptions{
		ConfigPath: envDefault("SEQVAULT_CONFIG", "seqvault.json"),
		LogLevel:   envDefault("SEQVAULT_LOG_LEVEL", "info"),
		LogFormat:  envDefault("SEQVAULT_LOG_FORMAT", "text"),
	}
	cmd := &cobra.Command{
		Use:           "seqvault",
		Short:         "Task sequence backup CLI",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := platform.ConfigureLogger(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr())
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Path to the configuration file")
	cmd.PersistentFlags().BoolVar(&opts.JSONOutput, "json", false, "Emit JSON output")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", opts.LogFormat, "Log format (text, json)")
	cmd.PersistentFlags().BoolVar(&opts.NonInteractive, "non-interactive", envBoolDefault("SEQVAULT_NON_INTERACTIVE", false), "Never prompt; pick the first listed artifact")

	cmd.AddCommand(
		newBackupCmd(opts),
		newInitCmd(opts),
		newStatusCmd(opts),
		newArtifactsCmd(opts),
		newHistoryCmd(opts),
	)

	return cmd
}

func envDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envBoolDefault(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
