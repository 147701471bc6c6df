package cli

import (
	"bytes"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/teamtasks/internal/app"
	"github.com/runoshun/teamtasks/internal/testutil"
)

// newTestContainer creates an app.Container over a seeded mock store.
func newTestContainer() (*app.Container, *testutil.MockStore) {
	store := testutil.NewMockStore()
	testutil.SeedScenario(store)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	c := app.NewWithDeps(
		app.Config{},
		store,
		&testutil.MockClock{NowTime: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)},
		logger,
	)
	return c, store
}

// execute runs cmd with args and returns what it printed on stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
