package derivation

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Request identifies the sentence whose derivations are wanted.
type Request struct {
	SentenceID int64
	Text       string
}

// Source produces the derivation document for one sentence. A sentence with
// no derivations available yields domain.ErrDerivationUnavailable.
type Source interface {
	Load(ctx context.Context, req Request) (*Root, error)
}

// FileSource reads pre-parsed documents named <dir>/<sentence id>.xml.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Load(ctx context.Context, req Request) (*Root, error) {
	path := filepath.Join(s.dir, strconv.FormatInt(req.SentenceID, 10)+".xml")
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(domain.ErrDerivationUnavailable, "no derivation file for sentence %d", req.SentenceID)
	}
	return ReadFile(path)
}

// CommandSource runs an external parser over a temporary text file and reads
// the <file>.xml it leaves behind.
type CommandSource struct {
	argv    []string
	timeout time.Duration
	logger  *zap.Logger
}

// NewCommandSource splits command with shell quoting rules. The text file
// path is appended as the last argument on every run.
func NewCommandSource(command string, timeout time.Duration, logger *zap.Logger) (*CommandSource, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrap(err, "parse parser command")
	}
	if len(argv) == 0 {
		return nil, errors.New("parser command is empty")
	}
	return &CommandSource{argv: argv, timeout: timeout, logger: logger}, nil
}

func (s *CommandSource) Load(ctx context.Context, req Request) (*Root, error) {
	dir, err := os.MkdirTemp("", "semprove-parse-")
	if err != nil {
		return nil, errors.Wrap(err, "create parser workdir")
	}
	defer os.RemoveAll(dir)

	txt := filepath.Join(dir, "sentence.txt")
	if err := os.WriteFile(txt, []byte(req.Text+"\n"), 0o600); err != nil {
		return nil, errors.Wrap(err, "write parser input")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	args := append(append([]string{}, s.argv[1:]...), txt)
	cmd := exec.CommandContext(ctx, s.argv[0], args...)
	cmd.Dir = dir
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	s.logger.Debug("parser finished",
		zap.Int64("sentence_id", req.SentenceID),
		zap.Duration("duration", time.Since(start)),
		zap.Error(runErr),
	)

	out := txt + ".xml"
	if _, err := os.Stat(out); err != nil {
		err := errors.Wrapf(domain.ErrDerivationUnavailable, "parser left no %s", filepath.Base(out))
		if runErr != nil {
			err = errors.WithSecondaryError(err, runErr)
		}
		return nil, errors.WithDetailf(err, "stderr: %s", stderr.String())
	}
	root, err := ReadFile(out)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrDerivationUnavailable, "parser output unreadable: %v", err)
	}
	return root, nil
}

// CachedSource memoizes another source for a fixed time, keyed by sentence
// text. Only wrap sources whose output depends on the text alone. Documents
// it returns are shared between callers and must not be modified.
type CachedSource struct {
	next  Source
	cache *cache.Cache
}

func NewCachedSource(next Source, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, cache: cache.New(ttl, 2*ttl)}
}

func (s *CachedSource) Load(ctx context.Context, req Request) (*Root, error) {
	key := req.Text
	if v, ok := s.cache.Get(key); ok {
		return v.(*Root), nil
	}
	root, err := s.next.Load(ctx, req)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, root)
	return root, nil
}
