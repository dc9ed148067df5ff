// Package onboarding implements the multi-step account setup wizard: an
// ordered sequence of data-collection steps with per-step validation and a
// conditional skip of the credential step for already-signed-in users.
package onboarding

import (
	"context"
	"fmt"

	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/utils"
)

// Step identifies one wizard step. Steps are 1-indexed.
type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepAccount
	StepProfile
	StepLocation
	StepInterests
)

const lastStep = StepInterests

// String returns the step's display name.
func (s Step) String() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Info"
	case StepAccount:
		return "Account"
	case StepProfile:
		return "Profile"
	case StepLocation:
		return "Location"
	case StepInterests:
		return "Interests"
	default:
		return fmt.Sprintf("Step %d", int(s))
	}
}

// Data is everything the wizard collects across its steps.
type Data struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	DateOfBirth     string
	Gender          string
	Bio             string
	AvatarPath      string
	Address         string
	City            string
	Country         string
	Interests       []string
	Notifications   bool
}

// Exiter is invoked when the user navigates back from the first step.
type Exiter interface {
	Exit()
}

// Accounts creates the credential-backed account at submission.
type Accounts interface {
	CreateAccount(ctx context.Context, email, password string) (models.Principal, error)
}

// AvatarUploader pushes the optional photo and returns its URL.
type AvatarUploader interface {
	UploadAvatar(ctx context.Context, path string) (string, error)
}

// Profiles persists the completed profile document.
type Profiles interface {
	SaveProfile(ctx context.Context, p models.Profile) error
}

// Flow is the wizard state machine. Forward progress is gated by per-step
// validation; a pre-existing principal skips the Account step in both
// directions.
type Flow struct {
	Data Data

	step      Step
	principal *models.Principal
	errs      utils.FieldErrors

	exiter   Exiter
	accounts Accounts
	avatars  AvatarUploader
	profiles Profiles
}

// NewFlow creates a wizard at step 1. principal is nil when the user still
// needs to create credentials.
func NewFlow(principal *models.Principal, exiter Exiter, accounts Accounts, avatars AvatarUploader, profiles Profiles) *Flow {
	f := &Flow{
		step:      StepPersonalInfo,
		principal: principal,
		errs:      utils.FieldErrors{},
		exiter:    exiter,
		accounts:  accounts,
		avatars:   avatars,
		profiles:  profiles,
	}
	if principal != nil {
		f.Data.Email = principal.Email
	}
	return f
}

// Step returns the current step.
func (f *Flow) Step() Step {
	return f.step
}

// Errors returns the field-keyed validation errors from the last Next call.
func (f *Flow) Errors() utils.FieldErrors {
	return f.errs
}

func (f *Flow) hasPrincipal() bool {
	return f.principal != nil
}

// Next validates the current step and advances. Validation failures stay on
// the step and populate Errors. Advancing past the last step submits the
// collected data; done reports whether the wizard finished.
func (f *Flow) Next(ctx context.Context) (done bool, err error) {
	f.errs = f.validate(f.step)
	if f.errs.HasErrors() {
		return false, nil
	}

	if f.step == lastStep {
		if err := f.submit(ctx); err != nil {
			return false, err
		}
		return true, nil
	}

	next := f.step + 1
	if next == StepAccount && f.hasPrincipal() {
		next = StepProfile
	}
	f.step = next
	return false, nil
}

// Back moves to the previous step, honoring the Account skip. From the
// first step it exits the wizard entirely.
func (f *Flow) Back() {
	if f.step == StepPersonalInfo {
		f.exiter.Exit()
		return
	}

	prev := f.step - 1
	if prev == StepAccount && f.hasPrincipal() {
		prev = StepPersonalInfo
	}
	f.step = prev
}

func (f *Flow) validate(step Step) utils.FieldErrors {
	errs := utils.FieldErrors{}

	switch step {
	case StepPersonalInfo:
		if err := utils.ValidateRequired(f.Data.FirstName, "first name"); err != nil {
			errs.Add("firstName", err.Error())
		}
		if err := utils.ValidateRequired(f.Data.LastName, "last name"); err != nil {
			errs.Add("lastName", err.Error())
		}
	case StepAccount:
		if err := utils.ValidateEmail(f.Data.Email); err != nil {
			errs.Add("email", err.Error())
		}
		if err := utils.ValidatePassword(f.Data.Password); err != nil {
			errs.Add("password", err.Error())
		}
		if f.Data.ConfirmPassword != f.Data.Password {
			errs.Add("confirmPassword", "passwords do not match")
		}
	}

	return errs
}

// submit runs the terminal transition: create the account when no
// principal exists yet, upload the optional photo, then write the full
// profile with profileComplete set. An account-creation failure routes the
// wizard back to the Account step; later failures surface without
// reverting navigation.
func (f *Flow) submit(ctx context.Context) error {
	if !f.hasPrincipal() {
		p, err := f.accounts.CreateAccount(ctx, f.Data.Email, f.Data.Password)
		if err != nil {
			f.step = StepAccount
			f.errs = utils.FieldErrors{"account": err.Error()}
			return fmt.Errorf("account creation failed: %w", err)
		}
		f.principal = &p
	}

	avatarURL := ""
	if f.Data.AvatarPath != "" {
		url, err := f.avatars.UploadAvatar(ctx, f.Data.AvatarPath)
		if err != nil {
			return fmt.Errorf("avatar upload failed: %w", err)
		}
		avatarURL = url
	}

	profile := models.Profile{
		UID:             f.principal.UID,
		FirstName:       f.Data.FirstName,
		LastName:        f.Data.LastName,
		Phone:           f.Data.Phone,
		DateOfBirth:     f.Data.DateOfBirth,
		Gender:          f.Data.Gender,
		Bio:             f.Data.Bio,
		Address:         f.Data.Address,
		City:            f.Data.City,
		Country:         f.Data.Country,
		Interests:       f.Data.Interests,
		Notifications:   f.Data.Notifications,
		AvatarURL:       avatarURL,
		ProfileComplete: true,
	}
	if err := f.profiles.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("profile write failed: %w", err)
	}
	return nil
}
