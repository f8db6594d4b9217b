package backend

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultSubprocessTimeout bounds a single CLI generation call.
const DefaultSubprocessTimeout = 30 * time.Second

// Subprocess shells out to the ollama CLI. External tools mis-handle
// verbose structured prompts, so the instruction text is compacted to
// a single short line before crossing the process boundary.
type Subprocess struct {
	binary  string
	timeout time.Duration
	// runner is swapped in tests; defaults to real exec.
	runner func(ctx context.Context, name string, args ...string) (string, error)
}

// NewSubprocess builds a CLI generator. Empty binary means "ollama",
// non-positive timeout means DefaultSubprocessTimeout.
func NewSubprocess(binary string, timeout time.Duration) *Subprocess {
	if binary == "" {
		binary = "ollama"
	}
	if timeout <= 0 {
		timeout = DefaultSubprocessTimeout
	}
	s := &Subprocess{binary: binary, timeout: timeout}
	s.runner = s.run
	return s
}

// Method implements Generator.
func (s *Subprocess) Method() Method { return MethodSubprocess }

// Generate implements Generator. CLI failures are reported as response
// text rather than an error so a flaky tool cannot abort the round. A
// run that exits cleanly but prints nothing gets the same treatment;
// transcript entries are never empty.
func (s *Subprocess) Generate(ctx context.Context, req Request) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.runner(callCtx, s.binary, "run", req.Model, Compact(req))
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return fmt.Sprintf("Error: %s produced no output", s.binary), nil
	}
	return out, nil
}

// Probe reports whether the CLI is reachable at all.
func (s *Subprocess) Probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := s.runner(probeCtx, s.binary, "list")
	return err
}

func (s *Subprocess) run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%s timed out after %s", name, s.timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s failed: %s", name, msg)
	}
	return stdout.String(), nil
}

// Compact reduces a request to one short instruction line: persona
// identity, role framing and the bare user query. All internal
// meta-markup from the full prompt is dropped.
func Compact(req Request) string {
	query := strings.Join(strings.Fields(req.Query), " ")
	if req.PersonaID == "" {
		return fmt.Sprintf("User asks: %s. Respond briefly.", query)
	}
	return fmt.Sprintf("You are %s. User asks: %s. Respond as %s briefly.",
		req.PersonaID, query, req.PersonaID)
}
