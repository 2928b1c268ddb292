package cli

import (
	"github.com/MrEthical07/goHelper/logfile"
	"github.com/spf13/cobra"
)

// NewLogCommand creates the log command.
func NewLogCommand(opts *RootOptions) *cobra.Command {
	var (
		level string
		path  string
	)

	cmd := &cobra.Command{
		Use:   "log <message>",
		Short: "Append a line to the application log",
		Long: `Append "[timestamp] [LEVEL] => message" to a log file.

The file is --path when set, the configured log path when --config is given,
and log/app.log otherwise. Unknown levels are written as INFO.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" && opts.ConfigPath != "" {
				h, err := loadHelper(opts)
				if err != nil {
					return err
				}
				target = h.Config().Log.Path
			}
			if target == "" {
				target = logfile.DefaultPath
			}

			logger := logfile.New(target, logfile.WithClock(opts.now()))
			if err := logger.Log(args[0], level); err != nil {
				return WrapExitError(ExitCommandError, "write log", err)
			}
			return opts.output(cmd).Result("path", logger.Path())
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", string(logfile.LevelInfo), "info|debug|warning|error")
	cmd.Flags().StringVarP(&path, "path", "p", "", "log file path")
	return cmd
}
