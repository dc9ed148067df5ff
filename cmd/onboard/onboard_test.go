package onboard

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlabs/lumen-cli/internal/onboarding"
)

type noopExit struct{ exited bool }

func (n *noopExit) Exit() { n.exited = true }

// accountFlow builds a wizard advanced to the Account step.
func accountFlow(t *testing.T) *onboarding.Flow {
	t.Helper()

	f := onboarding.NewFlow(nil, &noopExit{}, nil, nil, nil)
	f.Data.FirstName = "Ada"
	f.Data.LastName = "Lovelace"
	done, err := f.Next(context.Background())
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, onboarding.StepAccount, f.Step())
	return f
}

func TestAskSecretReadsFromPipedInput(t *testing.T) {
	flow := accountFlow(t)
	reader := bufio.NewReader(strings.NewReader("s3cret pass\n"))

	got, err := askSecret(reader, "Password", flow)
	require.NoError(t, err)
	require.Equal(t, "s3cret pass", got)
}

func TestAskSecretBackSentinel(t *testing.T) {
	flow := accountFlow(t)
	reader := bufio.NewReader(strings.NewReader("BACK\n"))

	_, err := askSecret(reader, "Password", flow)
	require.ErrorIs(t, err, errStepBack)
	require.Equal(t, onboarding.StepPersonalInfo, flow.Step())
}

func TestSplitInterests(t *testing.T) {
	require.Nil(t, splitInterests("  "))
	require.Equal(t, []string{"hiking", "jazz"}, splitInterests(" hiking , jazz ,, "))
}
