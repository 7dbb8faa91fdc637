package render

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// Per-stage subprocess timeouts. Concatenation and overlay work across the
// whole timeline and get the long budget; lavfi synthesis is near-instant.
const (
	blankTimeout    = 1 * time.Minute
	silenceTimeout  = 30 * time.Second
	sceneTimeout    = 5 * time.Minute
	concatTimeout   = 10 * time.Minute
	overlayTimeout  = 10 * time.Minute
	subtitleTimeout = 10 * time.Minute
	mixTimeout      = 5 * time.Minute
	mergeTimeout    = 5 * time.Minute
)

// Runner executes one encoder invocation: build arguments, run with a
// timeout, inspect exit code and stderr. Tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, timeout time.Duration, args ...string) (stderr string, err error)
}

// ExecRunner invokes the encoder binary as a blocking subprocess.
type ExecRunner struct {
	Binary string // e.g. "ffmpeg"
}

func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &ExecRunner{Binary: binary}
}

func (r *ExecRunner) Run(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stderr.String(), err
}
