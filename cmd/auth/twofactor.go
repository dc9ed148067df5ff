package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen-cli/internal/app"
	"github.com/lumenlabs/lumen-cli/internal/format"
	"github.com/lumenlabs/lumen-cli/internal/store"
)

// twoFactorCmd groups the two-factor verification commands.
var twoFactorCmd = &cobra.Command{
	Use:   "2fa",
	Short: "Two-factor verification",
	Long: `Issue and verify two-factor codes.

Codes are delivered out-of-band through the gateway; only a digest is kept
locally, so the CLI itself never sees or shows the code. Codes expire
after 10 minutes and a reissue supersedes any earlier code.`,
}

// twoFactorSendCmd issues a fresh challenge.
var twoFactorSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a verification code",
	RunE:  runTwoFactorSend,
}

// twoFactorVerifyCmd verifies a received code.
var twoFactorVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a received code",
	RunE:  runTwoFactorVerify,
}

func runTwoFactorSend(cmd *cobra.Command, args []string) error {
	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequirePrincipal()
	if err != nil {
		return err
	}

	code, err := store.GenerateCode()
	if err != nil {
		return err
	}

	// Delivery first: a code the user never receives must not supersede
	// one already in flight.
	if err := a.Client.SendTwoFactor(cmd.Context(), principal.Email, code); err != nil {
		return fmt.Errorf("could not deliver verification code: %w", err)
	}
	if err := a.Store.IssueChallenge(cmd.Context(), principal.UID, code); err != nil {
		return err
	}

	format.PrintSuccess("✓ Verification code sent to %s", principal.Email)
	return nil
}

func runTwoFactorVerify(cmd *cobra.Command, args []string) error {
	code, _ := cmd.Flags().GetString("code")
	if code == "" {
		return errors.New("code is required")
	}

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequirePrincipal()
	if err != nil {
		return err
	}

	if err := a.Store.VerifyChallenge(cmd.Context(), principal.UID, code); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.New("no verification code pending (run 'lumen auth 2fa send')")
		}
		return err
	}

	format.PrintSuccess("✓ Verification successful")
	return nil
}

func init() {
	twoFactorVerifyCmd.Flags().StringP("code", "c", "", "The 6-digit code you received")
	twoFactorVerifyCmd.MarkFlagRequired("code")

	twoFactorCmd.AddCommand(twoFactorSendCmd)
	twoFactorCmd.AddCommand(twoFactorVerifyCmd)
}
