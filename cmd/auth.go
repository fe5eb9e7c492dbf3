package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/otherjamesbrown/minuted/credentials"
)

// NewAuthCommand creates the root auth command.
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage provider credentials",
		Long: `Manage provider credentials.

The OpenAI API key is stored in the system keyring, never in a config file.
The OPENAI_API_KEY environment variable takes precedence over the keyring.

Examples:
  # Store the API key (prompts without echo)
  minuted auth set-key

  # Check whether a key is available
  minuted auth status

  # Remove the stored key
  minuted auth clear`,
	}

	cmd.AddCommand(newAuthSetKeyCommand())
	cmd.AddCommand(newAuthStatusCommand())
	cmd.AddCommand(newAuthClearCommand())

	return cmd
}

func newAuthSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "set-key",
		Short:   "Store the OpenAI API key in the system keyring",
		Example: `  minuted auth set-key`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := promptForSecret("OpenAI API key: ")
			if err != nil {
				return err
			}
			if err := credentials.StoreAPIKey(key); err != nil {
				return fmt.Errorf("storing API key: %w", err)
			}
			fmt.Println("API key stored.")
			return nil
		},
	}
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   "Show where the API key comes from",
		Example: `  minuted auth status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("OPENAI_API_KEY") != "" {
				fmt.Println("API key: set via OPENAI_API_KEY environment variable")
				return nil
			}
			if _, err := credentials.LoadAPIKey(); err != nil {
				if errors.Is(err, credentials.ErrNoCredentials) {
					fmt.Println("API key: not configured")
					return nil
				}
				return err
			}
			fmt.Println("API key: stored in system keyring")
			return nil
		},
	}
}

func newAuthClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Short:   "Remove the stored API key",
		Example: `  minuted auth clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credentials.ClearAPIKey(); err != nil {
				return fmt.Errorf("clearing API key: %w", err)
			}
			fmt.Println("API key cleared.")
			return nil
		},
	}
}

// promptForSecret reads a secret from the terminal without echo. When stdin is
// not a terminal (piped input), it falls back to a plain line read.
func promptForSecret(prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
