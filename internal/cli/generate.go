package cli

import (
	"io"
	"strings"

	"github.com/MrEthical07/goHelper/ident"
	"github.com/spf13/cobra"
)

// NewIDCommand creates the id command.
func NewIDCommand(opts *RootOptions) *cobra.Command {
	var versioned bool

	cmd := &cobra.Command{
		Use:           "id",
		Short:         "Print a random 128-bit identifier",
		Long:          "Print 32 hex characters, or an RFC 4122 v4 UUID with --versioned.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ident.ID(versioned)
			if err != nil {
				return WrapExitError(ExitCommandError, "generate id", err)
			}
			return opts.output(cmd).Result("id", id)
		},
	}

	cmd.Flags().BoolVar(&versioned, "versioned", false, "emit a dashed version 4 UUID")
	return cmd
}

// NewHashCommand creates the hash command.
func NewHashCommand(opts *RootOptions) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:           "hash",
		Short:         "Print a short alphanumeric hash",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := ident.Hash(length)
			if err != nil {
				return WrapExitError(ExitCommandError, "generate hash", err)
			}
			return opts.output(cmd).Result("hash", h)
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", ident.DefaultHashLength, "number of characters (max 124)")
	return cmd
}

// NewCodeCommand creates the code command.
func NewCodeCommand(opts *RootOptions) *cobra.Command {
	var sep string

	cmd := &cobra.Command{
		Use:   "code <segments-json|->",
		Short: "Build a structured code from segment definitions",
		Long: `Build a code such as ORD-20261015-482913-K7QZ from a JSON array of segments.

Each segment is {"type": "prefix|number|alpha|date", "value": "...", "length": N, "format": "Ymd"}.
Pass "-" to read the array from stdin.`,
		Example:       `  helperctl code '[{"type":"prefix","value":"ord"},{"type":"date"},{"type":"number","length":6}]'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(args[0])
			if args[0] == "-" {
				var err error
				raw, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return WrapExitError(ExitCommandError, "read segments", err)
				}
			}

			segments, err := ident.ParseSegments(raw)
			if err != nil {
				return WrapExitError(ExitCommandError, "parse segments", err)
			}

			code, err := ident.NewGenerator(opts.now()).CodeWithSeparator(segments, sep)
			if err != nil {
				return WrapExitError(ExitCommandError, "generate code", err)
			}
			return opts.output(cmd).Result("code", code)
		},
	}

	cmd.Flags().StringVar(&sep, "sep", ident.DefaultSeparator, "separator between segments")
	return cmd
}

// readValue returns args[0], or stdin when it is "-". The trailing newline a
// shell pipe adds is dropped.
func readValue(cmd *cobra.Command, args []string) (string, error) {
	if args[0] != "-" {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
