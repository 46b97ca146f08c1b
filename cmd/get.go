package cmd

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vulnetix/totp/internal/confirm"
	"github.com/vulnetix/totp/internal/otp"
	"github.com/vulnetix/totp/internal/store"
)

var getNoCopy bool

var getCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Show the current code and copy to clipboard (skip copy with -n | --no-copy)",
	Long: `Show the current code for an account and copy it to the clipboard.

Without a name, all accounts are listed and one is chosen by its ID. Codes
chosen this way are not copied.

Examples:
  totp get github
  totp get github --no-copy
  totp get`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	var (
		acc    store.Account
		err    error
		doCopy = !getNoCopy && !cfg.NoCopy
	)

	if len(args) == 1 {
		acc, err = accounts.Get(args[0])
	} else {
		acc, err = selectAccount(cmd)
		doCopy = false
	}
	if err != nil {
		return err
	}

	code, err := otp.Compute(acc.Secret, now())
	if err != nil {
		return fmt.Errorf("account %s: %w", acc.Name, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), theme.CodeMessage(acc.Name, code.Value, code.Remaining))

	if doCopy {
		if err := clip.WriteText(code.Value); err != nil {
			return err
		}
	}
	return nil
}

// selectAccount lists accounts and reads a row ID from stdin
func selectAccount(cmd *cobra.Command) (store.Account, error) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, theme.AccountTable(accounts.Accounts(), false))
	fmt.Fprint(out, "\nSelect account from ID: ")

	line, err := confirm.ReadLine(bufio.NewReader(cmd.InOrStdin()))
	if err != nil {
		return store.Account{}, err
	}
	index, err := strconv.Atoi(line)
	if err != nil {
		return store.Account{}, fmt.Errorf("%w: %q is not a number", store.ErrInvalidIndex, line)
	}
	return accounts.At(index)
}

func init() {
	getCmd.Flags().BoolVarP(&getNoCopy, "no-copy", "n", false, "Disable copying to clipboard")

	rootCmd.AddCommand(getCmd)
}
