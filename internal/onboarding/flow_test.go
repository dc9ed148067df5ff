package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen-cli/internal/models"
)

type fakeExiter struct{ exited bool }

func (e *fakeExiter) Exit() { e.exited = true }

type fakeAccounts struct {
	calls int
	err   error
}

func (a *fakeAccounts) CreateAccount(ctx context.Context, email, password string) (models.Principal, error) {
	a.calls++
	if a.err != nil {
		return models.Principal{}, a.err
	}
	return models.Principal{UID: "new-uid", Email: email}, nil
}

type fakeUploader struct {
	path string
	url  string
	err  error
}

func (u *fakeUploader) UploadAvatar(ctx context.Context, path string) (string, error) {
	u.path = path
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

type fakeProfiles struct {
	saved *models.Profile
	err   error
}

func (p *fakeProfiles) SaveProfile(ctx context.Context, profile models.Profile) error {
	if p.err != nil {
		return p.err
	}
	p.saved = &profile
	return nil
}

type deps struct {
	exiter   *fakeExiter
	accounts *fakeAccounts
	uploader *fakeUploader
	profiles *fakeProfiles
}

func newFlow(principal *models.Principal) (*Flow, *deps) {
	d := &deps{
		exiter:   &fakeExiter{},
		accounts: &fakeAccounts{},
		uploader: &fakeUploader{url: "https://cdn.example.com/a.png"},
		profiles: &fakeProfiles{},
	}
	return NewFlow(principal, d.exiter, d.accounts, d.uploader, d.profiles), d
}

func fillPersonal(f *Flow) {
	f.Data.FirstName = "Ada"
	f.Data.LastName = "Lovelace"
}

func fillAccount(f *Flow) {
	f.Data.Email = "ada@example.com"
	f.Data.Password = "secret1"
	f.Data.ConfirmPassword = "secret1"
}

func TestFlowSkipsAccountStepWithPrincipal(t *testing.T) {
	f, _ := newFlow(&models.Principal{UID: "u1", Email: "ada@example.com"})
	ctx := context.Background()

	require.Equal(t, StepPersonalInfo, f.Step())
	fillPersonal(f)

	done, err := f.Next(ctx)
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, StepProfile, f.Step(), "signed-in users never see the credential step")

	f.Back()
	require.Equal(t, StepPersonalInfo, f.Step(), "the skip applies backwards too")
}

func TestFlowVisitsAccountStepWithoutPrincipal(t *testing.T) {
	f, _ := newFlow(nil)
	fillPersonal(f)

	done, err := f.Next(context.Background())
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, StepAccount, f.Step())
}

func TestFlowValidationBlocksAdvance(t *testing.T) {
	f, _ := newFlow(nil)
	f.Data.LastName = "Lovelace"

	done, err := f.Next(context.Background())
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, StepPersonalInfo, f.Step(), "validation failure stays on the step")
	require.Contains(t, f.Errors(), "firstName")
	require.NotContains(t, f.Errors(), "lastName")
}

func TestFlowAccountStepValidation(t *testing.T) {
	f, _ := newFlow(nil)
	fillPersonal(f)
	_, err := f.Next(context.Background())
	require.NoError(t, err)

	f.Data.Email = "not-an-email"
	f.Data.Password = "abc"
	f.Data.ConfirmPassword = "abd"

	done, err := f.Next(context.Background())
	require.NoError(t, err)
	require.False(t, done)
	require.Contains(t, f.Errors(), "email")
	require.Contains(t, f.Errors(), "password")
	require.Contains(t, f.Errors(), "confirmPassword")
}

func TestFlowBackFromFirstStepExits(t *testing.T) {
	f, d := newFlow(nil)
	f.Back()
	require.True(t, d.exiter.exited)
}

func TestFlowCompletesAndSavesProfile(t *testing.T) {
	f, d := newFlow(nil)
	ctx := context.Background()

	fillPersonal(f)
	_, err := f.Next(ctx)
	require.NoError(t, err)

	fillAccount(f)
	_, err = f.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, StepProfile, f.Step())

	f.Data.Bio = "pioneer"
	f.Data.AvatarPath = "/tmp/photo.png"
	_, err = f.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, StepLocation, f.Step())

	f.Data.City = "London"
	_, err = f.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, StepInterests, f.Step())

	f.Data.Interests = []string{"mathematics"}
	done, err := f.Next(ctx)
	require.NoError(t, err)
	require.True(t, done)

	require.Equal(t, 1, d.accounts.calls)
	require.Equal(t, "/tmp/photo.png", d.uploader.path)

	saved := d.profiles.saved
	require.NotNil(t, saved)
	require.Equal(t, "new-uid", saved.UID)
	require.Equal(t, "Ada", saved.FirstName)
	require.Equal(t, "London", saved.City)
	require.Equal(t, []string{"mathematics"}, saved.Interests)
	require.Equal(t, "https://cdn.example.com/a.png", saved.AvatarURL)
	require.True(t, saved.ProfileComplete)
}

func TestFlowAccountFailureRoutesBack(t *testing.T) {
	f, d := newFlow(nil)
	d.accounts.err = errors.New("email-in-use")
	ctx := context.Background()

	fillPersonal(f)
	_, err := f.Next(ctx)
	require.NoError(t, err)
	fillAccount(f)
	_, err = f.Next(ctx)
	require.NoError(t, err)
	_, err = f.Next(ctx) // profile
	require.NoError(t, err)
	_, err = f.Next(ctx) // location
	require.NoError(t, err)

	done, err := f.Next(ctx) // interests -> submit
	require.Error(t, err)
	require.False(t, done)
	require.Equal(t, StepAccount, f.Step(), "a rejected account returns the wizard to credentials")
	require.Contains(t, f.Errors(), "account")
	require.Nil(t, d.profiles.saved)
}

func TestFlowExistingPrincipalSkipsAccountCreation(t *testing.T) {
	f, d := newFlow(&models.Principal{UID: "u1", Email: "ada@example.com"})
	ctx := context.Background()

	fillPersonal(f)
	for f.Step() != StepInterests {
		_, err := f.Next(ctx)
		require.NoError(t, err)
	}
	done, err := f.Next(ctx)
	require.NoError(t, err)
	require.True(t, done)

	require.Zero(t, d.accounts.calls)
	require.Equal(t, "u1", d.profiles.saved.UID)
}
