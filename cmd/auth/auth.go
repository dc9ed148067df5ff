package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/config"
	"github.com/lumenlabs/lumen-cli/internal/format"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

// AuthCmd represents the auth command
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication and account commands",
	Long: `Authentication and account commands for the Lumen CLI.

This command group includes login, logout, registration, session status
and two-factor verification.`,
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the AI gateway",
	Long:  "Authenticate with the gateway using email and password",
	RunE:  runLogin,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Long:  "End the current session and clear the persisted credentials",
	RunE:  runLogout,
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long:  "Create a new account on the gateway and sign in with it",
	RunE:  runRegister,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long:  "Display current authentication status and session information",
	RunE:  runStatus,
}

// promptPassword reads a password without echo when no flag was provided.
func promptPassword(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("could not read password: %w", err)
	}
	return string(raw), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		return errors.New("email is required")
	}

	password, err := promptPassword(cmd)
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password is required")
	}

	cfg := config.Get()
	client := api.NewClient(cfg.Gateway.URL)

	fmt.Printf("Logging in as %s...\n", email)
	resp, err := client.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	format.PrintSuccess("✓ Successfully logged in as %s", resp.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")

	if err := utils.ValidateEmail(email); err != nil {
		return err
	}

	password, err := promptPassword(cmd)
	if err != nil {
		return err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return err
	}

	cfg := config.Get()
	client := api.NewClient(cfg.Gateway.URL)

	resp, err := client.Register(cmd.Context(), email, password, name)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	format.PrintSuccess("✓ Account created for %s", resp.Email)
	format.PrintInfo("Run 'lumen onboard' to complete your profile")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if cfg.Auth.Email == "" {
		return fmt.Errorf("not logged in")
	}

	client := api.NewClient(cfg.Gateway.URL)

	fmt.Printf("Logging out %s...\n", cfg.Auth.Email)
	if err := client.Logout(cmd.Context()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	format.PrintSuccess("✓ Successfully logged out")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	if cfg.Auth.Email == "" {
		fmt.Println("Status: Not logged in")
		return nil
	}

	fmt.Printf("Status: Logged in as %s\n", cfg.Auth.Email)
	fmt.Printf("Gateway: %s\n", cfg.Gateway.URL)

	if cfg.Auth.SessionToken != "" {
		fmt.Println("Session: Active")
	} else {
		fmt.Println("Session: No token")
	}

	return nil
}

func init() {
	// Add login command flags
	loginCmd.Flags().StringP("email", "e", "", "Email address")
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted if omitted)")
	loginCmd.MarkFlagRequired("email")

	registerCmd.Flags().StringP("email", "e", "", "Email address")
	registerCmd.Flags().StringP("password", "p", "", "Password (prompted if omitted)")
	registerCmd.Flags().StringP("name", "n", "", "Display name")
	registerCmd.MarkFlagRequired("email")

	// Add subcommands
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(registerCmd)
	AuthCmd.AddCommand(statusCmd)
	AuthCmd.AddCommand(twoFactorCmd)
}
