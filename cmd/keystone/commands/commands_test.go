package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPass = "Correct-Horse-9"

// run executes the CLI with args against dir and returns stdout. Flag
// variables are reset when newRootCmd defines them.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	appCtx = nil

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--home", dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, home string, args ...string) string {
	t.Helper()
	out, err := run(t, home, args...)
	require.NoError(t, err, "keystone %s", strings.Join(args, " "))
	return out
}

func TestCLI_EndToEnd(t *testing.T) {
	home := t.TempDir()

	out := mustRun(t, home, "-p", testPass, "--server", "https://keys.example.org", "init", "--first-name", "Ada")
	require.Contains(t, out, "Identity created.")
	require.Contains(t, out, "Fingerprint: ")

	list := mustRun(t, home, "list")
	require.Contains(t, list, "Ada")
	require.Contains(t, list, "https://keys.example.org")

	exported := strings.TrimSpace(mustRun(t, home, "export"))
	require.NotEmpty(t, exported)

	fp := mustRun(t, home, "fingerprint", exported)
	require.Equal(t, fp, mustRun(t, home, "fingerprint"))

	sig := strings.TrimSpace(mustRun(t, home, "-p", testPass, "sign", "hello"))
	require.Contains(t, mustRun(t, home, "verify", exported, "hello", sig), "signature OK")
	_, err := run(t, home, "verify", exported, "hullo", sig)
	require.Error(t, err)

	sealed := strings.TrimSpace(mustRun(t, home, "seal", exported, "secret note"))
	require.Equal(t, "secret note\n", mustRun(t, home, "-p", testPass, "open", sealed))

	_, err = run(t, home, "-p", "Wrong-Horse-99", "open", sealed)
	require.Error(t, err)
}

func TestCLI_PassphraseRequired(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, home, "init")
	require.ErrorContains(t, err, "passphrase required")
}

func TestCLI_Batch(t *testing.T) {
	home := t.TempDir()
	out := mustRun(t, home, "batch", "-n", "3")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		require.Len(t, strings.Split(l, "\t"), 3)
	}
}

func TestCLI_UseSwitchesActiveIdentity(t *testing.T) {
	home := t.TempDir()
	mustRun(t, home, "-p", testPass, "init", "--first-name", "First")
	mustRun(t, home, "-p", testPass, "init", "--first-name", "Second")

	first := strings.TrimSpace(strings.TrimPrefix(mustRun(t, home, "fingerprint"), "Fingerprint: "))
	second := ""
	for _, line := range strings.Split(mustRun(t, home, "list"), "\n") {
		if strings.Contains(line, "Second") {
			second = strings.Fields(line)[0]
		}
	}
	require.NotEmpty(t, second)
	require.NotEqual(t, first, second)

	require.Contains(t, mustRun(t, home, "use", second), second)
	require.Equal(t, "Fingerprint: "+second+"\n", mustRun(t, home, "fingerprint"))

	_, err := run(t, home, "use", "missing")
	require.Error(t, err)
}
