package prover

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func fakeProver(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prover.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return "/bin/sh " + path
}

func commandOrchestrator(t *testing.T, body string, timeout time.Duration) *Orchestrator {
	t.Helper()
	backend, err := NewCommandBackend(fakeProver(t, body), zap.NewNop())
	require.NoError(t, err)
	return NewOrchestrator(backend, timeout, zap.NewNop())
}

func TestCommandBackend_ReadsScriptFile(t *testing.T) {
	o := commandOrchestrator(t, `grep -q "Theorem direct : (mortal socrates)." "$1" && echo yes || echo unknown`, 5*time.Second)
	out := o.Prove(context.Background(), socrates)
	assert.Equal(t, domain.ResultProved, out.Result)
}

func TestCommandBackend_NoAnswer(t *testing.T) {
	o := commandOrchestrator(t, "echo no", 5*time.Second)
	assert.Equal(t, domain.ResultDisproved, o.Prove(context.Background(), socrates).Result)
}

func TestCommandBackend_CrashIsUnknown(t *testing.T) {
	o := commandOrchestrator(t, "echo yes; echo 'Anomaly' >&2; exit 2", 5*time.Second)
	out := o.Prove(context.Background(), socrates)
	assert.Equal(t, domain.ResultUnknown, out.Result)
	assert.Contains(t, out.Reason, "prover failed")
}

func TestCommandBackend_StderrIsAttached(t *testing.T) {
	backend, err := NewCommandBackend(fakeProver(t, "echo 'Anomaly' >&2; exit 2"), zap.NewNop())
	require.NoError(t, err)
	s, err := BuildScript(socrates)
	require.NoError(t, err)

	_, err = backend.Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenDetails(err), "Anomaly")
}

func TestCommandBackend_TimeoutKillsProver(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, body := range []string{"exec sleep 5", "sleep 5; echo yes"} {
		o := commandOrchestrator(t, body, 200*time.Millisecond)
		start := time.Now()
		out := o.Prove(context.Background(), socrates)
		assert.Equal(t, domain.ResultUnknown, out.Result, body)
		assert.Contains(t, out.Reason, "timed out", body)
		assert.Less(t, time.Since(start), 3*time.Second, body)
	}
}

func TestNewCommandBackend_Invalid(t *testing.T) {
	_, err := NewCommandBackend("  ", zap.NewNop())
	assert.Error(t, err)
	_, err = NewCommandBackend(`coqc 'oops`, zap.NewNop())
	assert.Error(t, err)
}
