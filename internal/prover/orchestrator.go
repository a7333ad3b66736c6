// Package prover decides entailment between formulas by handing a proof
// script to a backend and classifying its answer.
package prover

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single proof run.
const DefaultTimeout = 100 * time.Second

// State of a proof run.
type State int

const (
	Idle State = iota
	ScriptBuilt
	Running
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ScriptBuilt:
		return "script_built"
	case Running:
		return "running"
	case Done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Backend runs a proof script and returns the prover's raw answer.
type Backend interface {
	Run(ctx context.Context, s *Script) (string, error)
}

// Outcome is the classified result of one run. Reason explains an Unknown
// that came from a fault rather than from the prover.
type Outcome struct {
	Result   domain.ProofResult
	Script   string
	Output   string
	Reason   string
	Trace    []State
	Duration time.Duration
}

// Orchestrator runs proofs synchronously. It holds no state between runs.
type Orchestrator struct {
	backend Backend
	timeout time.Duration
	logger  *zap.Logger
}

func NewOrchestrator(backend Backend, timeout time.Duration, logger *zap.Logger) *Orchestrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Orchestrator{backend: backend, timeout: timeout, logger: logger}
}

// Prove classifies p. It always returns one of the three results and never
// an error; faults become Unknown.
func (o *Orchestrator) Prove(ctx context.Context, p Problem) (out Outcome) {
	start := time.Now()
	out = Outcome{Result: domain.ResultUnknown, Trace: []State{Idle}}
	defer func() {
		if r := recover(); r != nil {
			out.Result = domain.ResultUnknown
			out.Reason = fmt.Sprintf("prover panic: %v", r)
		}
		out.Trace = append(out.Trace, Done)
		out.Duration = time.Since(start)
		o.logger.Info("proof finished",
			zap.Int("premises", len(p.Premises)),
			zap.String("result", string(out.Result)),
			zap.String("reason", out.Reason),
			zap.Duration("duration", out.Duration),
		)
	}()

	script, err := BuildScript(p)
	if err != nil {
		out.Reason = err.Error()
		return out
	}
	out.Script = script.Text
	out.Trace = append(out.Trace, ScriptBuilt)

	runCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	out.Trace = append(out.Trace, Running)
	stdout, err := o.backend.Run(runCtx, script)
	out.Output = stdout
	if err != nil {
		out.Reason = err.Error()
		if runCtx.Err() == context.DeadlineExceeded {
			out.Reason = fmt.Sprintf("prover timed out after %s", o.timeout)
		}
		return out
	}

	out.Result = Classify(stdout)
	if out.Result == domain.ResultUnknown && strings.TrimRight(stdout, "\r\n") != "unknown" {
		out.Reason = fmt.Sprintf("unrecognized prover output %q", truncate(stdout, 80))
	}
	return out
}

// Classify maps prover output to a result. Only yes, no and unknown with an
// optional trailing newline are recognized.
func Classify(stdout string) domain.ProofResult {
	switch strings.TrimRight(stdout, "\r\n") {
	case "yes":
		return domain.ResultProved
	case "no":
		return domain.ResultDisproved
	}
	return domain.ResultUnknown
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
