package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	userEmail string
	userName  string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Long: `Creates an account for the HTTP API. The password is read from
the terminal and never appears in shell history.`,
	RunE: runUserCreate,
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "account email (required)")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "display name")
	_ = userCreateCmd.MarkFlagRequired("email")
	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserCreate(cmd *cobra.Command, _ []string) error {
	password, err := promptPassword(cmd)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.auth.Register(cmd.Context(), userEmail, password, userName)
	if err != nil {
		return err
	}

	cmd.Printf("Created account %s (id %d).\n", user.Email, user.ID)
	return nil
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("password prompt needs an interactive terminal")
	}

	cmd.Print("Password: ")
	first, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", err
	}

	cmd.Print("Confirm: ")
	second, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
