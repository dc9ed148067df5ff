// Package onboard implements the interactive onboarding wizard command.
package onboard

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/app"
	"github.com/lumenlabs/lumen-cli/internal/format"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/onboarding"
)

// OnboardCmd represents the onboard command
var OnboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Complete your profile step by step",
	Long: `Walk through the onboarding wizard: personal info, account
credentials (skipped when already signed in), profile, location and
interests. Feature commands stay locked until onboarding completes.

Type 'back' at any prompt to return to the previous step; going back from
the first step exits the wizard.`,
	RunE: runOnboard,
}

// backSentinel is what the user types to navigate backwards.
const backSentinel = "back"

// errExitWizard aborts the prompt loop when the user backs out of step 1.
var errExitWizard = fmt.Errorf("onboarding cancelled")

type wizardExit struct{ exited *bool }

func (w wizardExit) Exit() { *w.exited = true }

// accountCreator adapts the gateway client to the flow's Accounts port.
type accountCreator struct{ client *api.Client }

func (a accountCreator) CreateAccount(ctx context.Context, email, password string) (models.Principal, error) {
	resp, err := a.client.Register(ctx, email, password, "")
	if err != nil {
		return models.Principal{}, err
	}
	return models.Principal{UID: resp.UID, Email: resp.Email, DisplayName: resp.DisplayName}, nil
}

// avatarUploader reads the photo from disk and pushes it to the gateway.
type avatarUploader struct{ client *api.Client }

func (u avatarUploader) UploadAvatar(ctx context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read photo: %w", err)
	}
	resp, err := u.client.Upload(ctx, api.UploadRequest{
		Data:     base64.StdEncoding.EncodeToString(raw),
		MimeType: http.DetectContentType(raw),
		Kind:     "avatar",
	})
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

func runOnboard(cmd *cobra.Command, args []string) error {
	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	exited := false
	flow := onboarding.NewFlow(
		a.Session.Principal(),
		wizardExit{&exited},
		accountCreator{a.Client},
		avatarUploader{a.Client},
		a.Store,
	)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("\n── Step %d: %s ──\n", int(flow.Step()), flow.Step())

		if err := collectStep(reader, flow); err != nil {
			if err == errExitWizard {
				format.PrintWarning("Onboarding cancelled")
				return nil
			}
			return err
		}
		if exited {
			format.PrintWarning("Onboarding cancelled")
			return nil
		}

		done, err := flow.Next(cmd.Context())
		if err != nil {
			format.PrintError("%s", err.Error())
			continue
		}
		if flow.Errors().HasErrors() {
			for field, msg := range flow.Errors() {
				format.PrintError("  %s: %s", field, msg)
			}
			continue
		}
		if done {
			format.PrintSuccess("✓ Onboarding complete")
			return nil
		}
	}
}

// ask reads one line, handling the back sentinel. keep retains the current
// value when the user just presses Enter.
func ask(reader *bufio.Reader, prompt, current string, flow *onboarding.Flow) (string, error) {
	if current != "" {
		fmt.Printf("%s [%s]: ", prompt, current)
	} else {
		fmt.Printf("%s: ", prompt)
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)

	if strings.EqualFold(line, backSentinel) {
		wasFirst := flow.Step() == onboarding.StepPersonalInfo
		flow.Back()
		if wasFirst {
			return "", errExitWizard
		}
		return "", errStepBack
	}
	if line == "" {
		return current, nil
	}
	return line, nil
}

// errStepBack unwinds collectStep after a mid-step back navigation.
var errStepBack = fmt.Errorf("step back")

// askSecret reads one line without echoing it, for password prompts. When
// stdin is not a terminal (piped input, tests) it falls back to a plain
// line read. The back sentinel works the same as in ask.
func askSecret(reader *bufio.Reader, prompt string, flow *onboarding.Flow) (string, error) {
	fmt.Printf("%s: ", prompt)

	var line string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("could not read password: %w", err)
		}
		line = string(raw)
	} else {
		raw, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = raw
	}
	line = strings.TrimSpace(line)

	if strings.EqualFold(line, backSentinel) {
		flow.Back()
		return "", errStepBack
	}
	return line, nil
}

func collectStep(reader *bufio.Reader, flow *onboarding.Flow) error {
	var err error
	d := &flow.Data

	switch flow.Step() {
	case onboarding.StepPersonalInfo:
		if d.FirstName, err = ask(reader, "First name", d.FirstName, flow); err != nil {
			break
		}
		if d.LastName, err = ask(reader, "Last name", d.LastName, flow); err != nil {
			break
		}
		d.Phone, err = ask(reader, "Phone (optional)", d.Phone, flow)
	case onboarding.StepAccount:
		if d.Email, err = ask(reader, "Email", d.Email, flow); err != nil {
			break
		}
		if d.Password, err = askSecret(reader, "Password", flow); err != nil {
			break
		}
		d.ConfirmPassword, err = askSecret(reader, "Confirm password", flow)
	case onboarding.StepProfile:
		if d.DateOfBirth, err = ask(reader, "Date of birth (YYYY-MM-DD, optional)", d.DateOfBirth, flow); err != nil {
			break
		}
		if d.Gender, err = ask(reader, "Gender (optional)", d.Gender, flow); err != nil {
			break
		}
		if d.Bio, err = ask(reader, "Bio (optional)", d.Bio, flow); err != nil {
			break
		}
		d.AvatarPath, err = ask(reader, "Photo file (optional)", d.AvatarPath, flow)
	case onboarding.StepLocation:
		if d.Address, err = ask(reader, "Address (optional)", d.Address, flow); err != nil {
			break
		}
		if d.City, err = ask(reader, "City (optional)", d.City, flow); err != nil {
			break
		}
		d.Country, err = ask(reader, "Country (optional)", d.Country, flow)
	case onboarding.StepInterests:
		var raw string
		if raw, err = ask(reader, "Interests (comma-separated, optional)", strings.Join(d.Interests, ", "), flow); err != nil {
			break
		}
		d.Interests = splitInterests(raw)
		var notify string
		if notify, err = ask(reader, "Email notifications? (y/n)", "y", flow); err != nil {
			break
		}
		d.Notifications = strings.HasPrefix(strings.ToLower(notify), "y")
	}

	if err == errStepBack {
		return nil
	}
	return err
}

func splitInterests(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
