package cli

import (
	"github.com/spf13/cobra"
)

// NewEncryptCommand creates the encrypt command.
func NewEncryptCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <plaintext|->",
		Short: "Encrypt a value with the configured key",
		Long: `Encrypt a value with the key, IV and mode from --config and HELPER_* variables.

The output is lowercase hex and can be fed back to "helperctl decrypt".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := loadHelper(opts)
			if err != nil {
				return err
			}
			plaintext, err := readValue(cmd, args)
			if err != nil {
				return WrapExitError(ExitCommandError, "read plaintext", err)
			}
			out, err := h.Encrypt(plaintext)
			if err != nil {
				return WrapExitError(ExitCommandError, "encrypt", err)
			}
			return opts.output(cmd).Result("ciphertext", out)
		},
	}
}

// NewDecryptCommand creates the decrypt command.
func NewDecryptCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "decrypt <hex|->",
		Short:         "Decrypt a hex value produced by encrypt",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := loadHelper(opts)
			if err != nil {
				return err
			}
			ciphertext, err := readValue(cmd, args)
			if err != nil {
				return WrapExitError(ExitCommandError, "read ciphertext", err)
			}
			out, err := h.Decrypt(ciphertext)
			if err != nil {
				return WrapExitError(ExitFailure, "decrypt", err)
			}
			return opts.output(cmd).Result("plaintext", out)
		},
	}
}
