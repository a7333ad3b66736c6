package prover

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
)

// CommandBackend writes the script to a temporary .v file and runs an
// external prover on it. The file path is appended to the command line.
type CommandBackend struct {
	argv   []string
	logger *zap.Logger
}

func NewCommandBackend(command string, logger *zap.Logger) (*CommandBackend, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrap(err, "parse prover command")
	}
	if len(argv) == 0 {
		return nil, errors.New("prover command is empty")
	}
	return &CommandBackend{argv: argv, logger: logger}, nil
}

func (b *CommandBackend) Run(ctx context.Context, s *Script) (string, error) {
	dir, err := os.MkdirTemp("", "semprove-prove-")
	if err != nil {
		return "", errors.Wrap(err, "create prover workdir")
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "problem.v")
	if err := os.WriteFile(file, []byte(s.Text), 0o600); err != nil {
		return "", errors.Wrap(err, "write proof script")
	}

	args := append(append([]string{}, b.argv[1:]...), file)
	cmd := exec.CommandContext(ctx, b.argv[0], args...)
	cmd.Dir = dir
	cmd.WaitDelay = 500 * time.Millisecond
	killGroupOnCancel(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout.String(), errors.Wrap(ctxErr, "prover interrupted")
		}
		err = errors.Wrap(err, "prover failed")
		return stdout.String(), errors.WithDetailf(err, "stderr: %s", stderr.String())
	}
	if stderr.Len() > 0 {
		b.logger.Debug("prover stderr", zap.String("stderr", stderr.String()))
	}
	return stdout.String(), nil
}
