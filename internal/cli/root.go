package cli

import (
	"fmt"

	goHelper "github.com/MrEthical07/goHelper"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "json" | "text"

	clock clockwork.Clock
}

func (o *RootOptions) now() clockwork.Clock {
	if o.clock == nil {
		return clockwork.NewRealClock()
	}
	return o.clock
}

func (o *RootOptions) output(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the helperctl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "helperctl",
		Short: "helperctl - goHelper from the shell",
		Long:  "Generate identifiers and codes, encrypt values, append log lines and run validators with the same configuration the application uses.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "TOML config file (HELPER_* env vars apply on top)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewIDCommand(opts))
	cmd.AddCommand(NewHashCommand(opts))
	cmd.AddCommand(NewCodeCommand(opts))
	cmd.AddCommand(NewEncryptCommand(opts))
	cmd.AddCommand(NewDecryptCommand(opts))
	cmd.AddCommand(NewLogCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadHelper builds a Helper from --config and the environment.
func loadHelper(opts *RootOptions) (*goHelper.Helper, error) {
	cfg, err := goHelper.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}
	h, err := goHelper.New().WithConfig(cfg).WithClock(opts.now()).Build()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "build helper", err)
	}
	return h, nil
}
