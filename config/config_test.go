package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/FEMKernel/element"
	"github.com/notargets/FEMKernel/utils"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeINI(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "femnet.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, element.P1, cfg.Kind())
	assert.Equal(t, 2, cfg.Degree())
	assert.Equal(t, 1.e-6, cfg.Accuracy)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoad(t *testing.T) {
	path := writeINI(t, `
[element]
type = P1b

[solver]
accuracy = 1e-9
max_iterations = 500
workers = 3
problem = quadratic

[log]
level = debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, element.P1b, cfg.Kind())
	assert.Equal(t, 0, cfg.QuadratureDegree)
	assert.Equal(t, 6, cfg.Degree())
	assert.Equal(t, 1.e-9, cfg.Accuracy)
	assert.Equal(t, 500, cfg.MaxIterations)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 1., cfg.Conductivity)
	assert.Equal(t, "quadratic", cfg.Problem)
	assert.Equal(t, log.DebugLevel, cfg.Level())

	settings := cfg.Settings()
	assert.Len(t, settings, 8)
	assert.Equal(t, "P1b", settings[KeyElementType])
	assert.Equal(t, 500, settings[KeyMaxIterations])
}

func TestLoadExplicitDegree(t *testing.T) {
	cfg, err := Load(writeINI(t, "[quadrature]\ndegree = 9\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Degree())
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"element":      "[element]\ntype = p2\n",
		"degree":       "[quadrature]\ndegree = 31\n",
		"neg degree":   "[quadrature]\ndegree = -1\n",
		"accuracy":     "[solver]\naccuracy = 0\n",
		"conductivity": "[solver]\nconductivity = -2\n",
		"problem":      "[solver]\nproblem = cubic\n",
		"level":        "[log]\nlevel = loud\n",
	}
	for name, content := range cases {
		_, err := Load(writeINI(t, content))
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, utils.ErrInvalidArgument), name)
	}
}

func TestLoadMalformedNumber(t *testing.T) {
	cases := map[string]string{
		"[quadrature] degree":     "[quadrature]\ndegree = abc\n",
		"[solver] accuracy":       "[solver]\naccuracy = x\n",
		"[solver] max_iterations": "[solver]\nmax_iterations = 1.5\n",
		"[solver] workers":        "[solver]\nworkers = many\n",
		"[solver] conductivity":   "[solver]\nconductivity = \n",
	}
	for where, content := range cases {
		_, err := Load(writeINI(t, content))
		require.Error(t, err, where)
		assert.True(t, errors.Is(err, utils.ErrInvalidArgument), where)
		assert.Contains(t, err.Error(), where)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, utils.ErrInvalidArgument))
}
