package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags clears flag values and the context left behind by a previous
// Execute on the shared root command
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		child.SetContext(nil) //nolint:staticcheck
		resetFlags(child)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	resetFlags(cmd)
	t.Cleanup(func() { resetFlags(cmd) })

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// writeConfig writes a settings file rooted in a temp dir and returns its path
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`environment: test
database:
  path: %[1]s/data/subarr.db
media:
  tv_path: %[1]s/media/tv
  movie_path: %[1]s/media/movies
  anime_path: %[1]s/media/anime
cache:
  enabled: false
logging:
  level: error
%[2]s`, filepath.ToSlash(dir), extra)

	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
