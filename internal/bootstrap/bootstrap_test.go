package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Harshitk-cp/semprove/internal/derivation"
	"github.com/Harshitk-cp/semprove/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenStores_SQLite(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "db", "semprove.sqlite"))

	stores, closeFn, err := OpenStores(context.Background(), zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, stores.Ping(context.Background()))
	sen := &domain.Sentence{Text: "Socrates is a man."}
	require.NoError(t, stores.Sentences.Create(context.Background(), sen))
	assert.Equal(t, int64(1), sen.ID)
}

func TestOpenStores_Errors(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, _, err := OpenStores(context.Background(), zap.NewNop())
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("STORE_DRIVER", "mysql")
	_, _, err = OpenStores(context.Background(), zap.NewNop())
	assert.ErrorContains(t, err, "mysql")
}

func TestNewSource(t *testing.T) {
	src, err := NewSource("", t.TempDir(), time.Second, 0, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &derivation.FileSource{}, src)

	src, err = NewSource("", t.TempDir(), time.Second, time.Minute, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &derivation.FileSource{}, src, "files are read per sentence id and never cached")

	src, err = NewSource("jigg --file", "", time.Second, 0, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &derivation.CommandSource{}, src)

	src, err = NewSource("jigg --file", "", time.Second, time.Minute, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &derivation.CachedSource{}, src)

	_, err = NewSource(`jigg "unterminated`, "", time.Second, 0, zap.NewNop())
	assert.Error(t, err)
}

func TestNewOrchestrator(t *testing.T) {
	_, err := NewOrchestrator("datalog", "", time.Second, zap.NewNop())
	require.NoError(t, err)

	_, err = NewOrchestrator("command", "", time.Second, zap.NewNop())
	assert.Error(t, err, "command backend needs a command")

	_, err = NewOrchestrator("vampire", "", time.Second, zap.NewNop())
	assert.ErrorContains(t, err, "vampire")
}

func TestNewPipeline(t *testing.T) {
	templates := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(templates, []byte("- {category: N, semantics: '\\E x.E(x)'}\n"), 0o600))
	t.Setenv("TEMPLATES_PATH", templates)
	t.Setenv("PARSER_COMMAND", "")
	t.Setenv("PROVER_BACKEND", "datalog")
	t.Setenv("NBEST", "2")

	pl, err := NewPipeline(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, pl.NBest)
	assert.NotNil(t, pl.Composer)
	assert.NotNil(t, pl.Orchestrator)
	assert.NotNil(t, pl.Source)
}
