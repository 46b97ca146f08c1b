package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vulnetix/totp/internal/confirm"
	"github.com/vulnetix/totp/internal/store"
)

var (
	listSecrets bool
	assumeYes   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved accounts (use --secret to include secrets)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), theme.AccountTable(accounts.Accounts(), listSecrets))
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the JSON file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), theme.Code(accounts.Path()))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <name> [secret]",
	Short: "Add a new account (ignored if it already exists)",
	Long: `Add a new account. The secret must be base32 (A-Z, 2-7, '=' padding).

When the secret is omitted it is read from stdin, without echo on a terminal.

Examples:
  totp add github JBSWY3DPEHPK3PXP
  totp add github`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAdd,
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an account (requires confirmation)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all accounts (requires confirmation)",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runAdd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]

	var secret string
	if len(args) == 2 {
		secret = args[1]
	} else {
		s, err := readSecret(cmd)
		if err != nil {
			return err
		}
		secret = s
	}

	err := accounts.Add(name, secret)
	switch {
	case err == nil:
		fmt.Fprintf(out, "Account added: %s\n", theme.Name(name))
		return nil
	case errors.Is(err, store.ErrDuplicateAccount):
		fmt.Fprintf(out, "Account %s already existed, please remove it first.\n", theme.Name(name))
		return nil
	default:
		return err
	}
}

// readSecret reads a secret from stdin, hiding input on a terminal
func readSecret(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), "Secret: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	return confirm.ReadLine(bufio.NewReader(in))
}

func runRemove(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	acc, state, err := accounts.Remove(args[0], gate(cmd))
	if err != nil {
		return err
	}
	if state != confirm.Committed {
		fmt.Fprintln(out, theme.Warn("Operation aborted."))
		return nil
	}

	fmt.Fprintf(out, "Removed account: %s\nSecret: %s\n", theme.Name(acc.Name), theme.Name(acc.Secret))
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, theme.AccountTable(accounts.Accounts(), true))
	fmt.Fprintln(out)

	state, err := accounts.RemoveAll(gate(cmd))
	if err != nil {
		return err
	}
	if state != confirm.Committed {
		fmt.Fprintln(out, theme.Warn("Aborted."))
		return nil
	}

	fmt.Fprintln(out, theme.Danger("Removed all accounts."))
	return nil
}

func gate(cmd *cobra.Command) confirm.Gate {
	if assumeYes {
		return confirm.Always{}
	}
	return confirm.NewPrompt(cmd.InOrStdin(), cmd.OutOrStdout())
}

func init() {
	listCmd.Flags().BoolVar(&listSecrets, "secret", false, "Include secrets")
	removeCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	cleanCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(listCmd, pathCmd, addCmd, removeCmd, cleanCmd)
}
