package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MrEthical07/goHelper/validate"
	"github.com/spf13/cobra"
)

type validateFlags struct {
	minAge  int
	length  int
	pattern string
}

type check func(value string, f validateFlags, v *validate.Validator) (bool, error)

var checks = map[string]check{
	"email": func(s string, _ validateFlags, _ *validate.Validator) (bool, error) {
		return validate.IsEmail(s), nil
	},
	"phone": func(s string, _ validateFlags, _ *validate.Validator) (bool, error) {
		return validate.IsPhone(s), nil
	},
	"ticket": func(s string, _ validateFlags, _ *validate.Validator) (bool, error) {
		return validate.IsTicketNumber(s), nil
	},
	"birthdate": func(s string, f validateFlags, v *validate.Validator) (bool, error) {
		return v.BirthDate(s, f.minAge), nil
	},
	"notempty": func(s string, _ validateFlags, _ *validate.Validator) (bool, error) {
		return validate.NotEmpty(s), nil
	},
	"minlen": func(s string, f validateFlags, _ *validate.Validator) (bool, error) {
		return validate.MinLength(s, f.length), nil
	},
	"maxlen": func(s string, f validateFlags, _ *validate.Validator) (bool, error) {
		return validate.MaxLength(s, f.length), nil
	},
	"regex": func(s string, f validateFlags, _ *validate.Validator) (bool, error) {
		re, err := validate.Compile(f.pattern)
		if err != nil {
			return false, err
		}
		return re.MatchString(s), nil
	},
}

// checkNames returns the registered check names in sorted order.
func checkNames() []string {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	var flags validateFlags

	cmd := &cobra.Command{
		Use:   "validate <check> <value|->",
		Short: "Run a validator against a value",
		Long: fmt.Sprintf(`Run one validator against a value and print "valid" or "invalid".

Checks: %s.

Exit codes:
  0  value is valid
  1  value is invalid
  2  unknown check or bad flags`, strings.Join(checkNames(), ", ")),
		Example: `  helperctl validate email user@example.com
  helperctl validate birthdate 2000-02-29 --min-age 18
  helperctl validate regex ABC --pattern '/^[a-z]+$/i'`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToLower(args[0])
			fn, ok := checks[name]
			if !ok {
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown check %q: must be one of %v", args[0], checkNames()))
			}
			if name == "regex" && flags.pattern == "" {
				return NewExitError(ExitCommandError, "regex check requires --pattern")
			}

			value, err := readValue(cmd, args[1:])
			if err != nil {
				return WrapExitError(ExitCommandError, "read value", err)
			}

			valid, err := fn(value, flags, validate.New(opts.now()))
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid pattern", err)
			}

			result := "valid"
			if !valid {
				result = "invalid"
			}
			if err := opts.output(cmd).Result("result", result); err != nil {
				return err
			}
			if !valid {
				return NewExitError(ExitFailure, fmt.Sprintf("%s check failed", name))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.minAge, "min-age", 18, "minimum age in years for birthdate")
	cmd.Flags().IntVar(&flags.length, "length", 0, "bound for minlen and maxlen")
	cmd.Flags().StringVar(&flags.pattern, "pattern", "", "pattern for regex (RE2 or /body/flags)")
	return cmd
}
