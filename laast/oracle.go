package laast

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DistanceOracle computes the tree edit distance between two trees given in
// bracket notation.
type DistanceOracle interface {
	Distance(ctx context.Context, a, b string) (int, error)
}

// DistanceFunc adapts a function to the DistanceOracle interface.
type DistanceFunc func(ctx context.Context, a, b string) (int, error)

// Distance calls f.
func (f DistanceFunc) Distance(ctx context.Context, a, b string) (int, error) {
	return f(ctx, a, b)
}

// ExecOracle runs an external tree edit distance binary, invoked as
// "<Path> <Args...> <a> <b>", and reads the distance from the last line of its
// output, formatted as "label: N".
type ExecOracle struct {
	Path string
	// Args precede the two trees. Defaults to []string{"string"}.
	Args []string
	// Timeout bounds every invocation. Zero means no timeout.
	Timeout time.Duration
}

// Distance runs the binary once. Failures are not retried.
func (o *ExecOracle) Distance(ctx context.Context, a, b string) (int, error) {
	if o.Path == "" {
		return 0, &OracleError{Op: "exec", Err: errors.New("no binary configured")}
	}
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	args := o.Args
	if args == nil {
		args = []string{"string"}
	}
	args = append(append([]string{}, args...), a, b)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, o.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return 0, &OracleError{Op: "exec " + o.Path, Output: stderr.String(), Err: err}
	}

	d, err := parseDistanceOutput(stdout.String())
	if err != nil {
		return 0, &OracleError{Op: "parse output", Output: stdout.String(), Err: err}
	}
	return d, nil
}

// parseDistanceOutput extracts N from the last non-empty "label: N" line.
func parseDistanceOutput(out string) (int, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return 0, errors.New("empty output")
	}

	idx := strings.LastIndex(last, ":")
	if idx < 0 {
		return 0, fmt.Errorf("no distance in line %q", last)
	}

	d, err := strconv.Atoi(strings.TrimSpace(last[idx+1:]))
	if err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative distance %d", d)
	}
	return d, nil
}
