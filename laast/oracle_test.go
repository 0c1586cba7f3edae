package laast

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDistanceOutput(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want int
		err  bool
	}{
		{"single_line", "TED: 12\n", 12, false},
		{"trailing_line_wins", "Size of source tree: 4\nSize of destination tree: 6\nDistance TED: 3\n", 3, false},
		{"blank_lines", "\n\nTED:   7  \n\n", 7, false},
		{"zero", "distance: 0", 0, false},
		{"empty", "", 0, true},
		{"no_colon", "42\n", 0, true},
		{"not_a_number", "TED: many\n", 0, true},
		{"negative", "TED: -1\n", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDistanceOutput(tc.out)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// writeScript creates an executable shell script in a temp directory.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "ted")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestExecOracle(t *testing.T) {
	// Echo the argument count so the test can check how the binary is invoked.
	path := writeScript(t, `echo "mode: $1"
echo "args: $#"
echo "TED: 5"
`)

	o := &ExecOracle{Path: path}
	d, err := o.Distance(context.Background(), "{a}", "{b{c}}")
	require.NoError(t, err)
	require.Equal(t, 5, d)
}

func TestExecOracleFailures(t *testing.T) {
	t.Run("missing_binary", func(t *testing.T) {
		o := &ExecOracle{Path: filepath.Join(t.TempDir(), "nope")}
		_, err := o.Distance(context.Background(), "{a}", "{b}")
		var oracleErr *OracleError
		require.ErrorAs(t, err, &oracleErr)
	})

	t.Run("unconfigured", func(t *testing.T) {
		_, err := (&ExecOracle{}).Distance(context.Background(), "{a}", "{b}")
		var oracleErr *OracleError
		require.ErrorAs(t, err, &oracleErr)
	})

	t.Run("non_zero_exit", func(t *testing.T) {
		path := writeScript(t, "echo 'segfault' >&2\nexit 3\n")
		_, err := (&ExecOracle{Path: path}).Distance(context.Background(), "{a}", "{b}")
		var oracleErr *OracleError
		require.ErrorAs(t, err, &oracleErr)
		require.Contains(t, oracleErr.Output, "segfault")
	})

	t.Run("bad_output", func(t *testing.T) {
		path := writeScript(t, "echo 'nothing useful'\n")
		_, err := (&ExecOracle{Path: path}).Distance(context.Background(), "{a}", "{b}")
		var oracleErr *OracleError
		require.ErrorAs(t, err, &oracleErr)
		require.Equal(t, "parse output", oracleErr.Op)
	})

	t.Run("timeout", func(t *testing.T) {
		path := writeScript(t, "exec sleep 5\n")
		o := &ExecOracle{Path: path, Timeout: 50 * time.Millisecond}
		_, err := o.Distance(context.Background(), "{a}", "{b}")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
