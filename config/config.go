// Package config reads the femnet settings file.
//
//	[element]
//	type = p1b
//	[quadrature]
//	degree = 0        ; 0 picks the default for the element type
//	[solver]
//	accuracy = 1e-6
//	max_iterations = 0
//	workers = 0
//	conductivity = 1
//	problem = sine
//	[log]
//	level = info
package config

import (
	"fmt"

	"github.com/notargets/FEMKernel/element"
	"github.com/notargets/FEMKernel/quadrature"
	"github.com/notargets/FEMKernel/solver"
	"github.com/notargets/FEMKernel/space"
	"github.com/notargets/FEMKernel/utils"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Keys, as "section.key"; the CLI binds its flags to the same names
const (
	KeyElementType      = "element.type"
	KeyQuadratureDegree = "quadrature.degree"
	KeyAccuracy         = "solver.accuracy"
	KeyMaxIterations    = "solver.max_iterations"
	KeyWorkers          = "solver.workers"
	KeyConductivity     = "solver.conductivity"
	KeyProblem          = "solver.problem"
	KeyLogLevel         = "log.level"
)

type Config struct {
	ElementType      string
	QuadratureDegree int
	Accuracy         float64
	MaxIterations    int
	Workers          int
	Conductivity     float64
	Problem          string
	LogLevel         string
}

func Default() Config {
	return Config{
		ElementType:  element.P1.String(),
		Accuracy:     solver.DefaultAccuracy,
		Conductivity: 1,
		Problem:      "sine",
		LogLevel:     log.InfoLevel.String(),
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	r := keyReader{file: file}
	cfg = Config{
		ElementType:      r.str("element", "type", cfg.ElementType),
		QuadratureDegree: r.int("quadrature", "degree", cfg.QuadratureDegree),
		Accuracy:         r.float("solver", "accuracy", cfg.Accuracy),
		MaxIterations:    r.int("solver", "max_iterations", cfg.MaxIterations),
		Workers:          r.int("solver", "workers", cfg.Workers),
		Conductivity:     r.float("solver", "conductivity", cfg.Conductivity),
		Problem:          r.str("solver", "problem", cfg.Problem),
		LogLevel:         r.str("log", "level", cfg.LogLevel),
	}
	if r.err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, r.err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// keyReader reads typed keys, keeping the first malformed value as err
type keyReader struct {
	file *ini.File
	err  error
}

func (r *keyReader) key(section, name string) *ini.Key {
	sec := r.file.Section(section)
	if !sec.HasKey(name) {
		return nil
	}
	return sec.Key(name)
}

func (r *keyReader) fail(section, name, value string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("[%s] %s = %q: %v: %w", section, name, value, err, utils.ErrInvalidArgument)
	}
}

func (r *keyReader) str(section, name, def string) string {
	if k := r.key(section, name); k != nil {
		return k.String()
	}
	return def
}

func (r *keyReader) int(section, name string, def int) int {
	k := r.key(section, name)
	if k == nil {
		return def
	}
	v, err := k.Int()
	if err != nil {
		r.fail(section, name, k.String(), err)
		return def
	}
	return v
}

func (r *keyReader) float(section, name string, def float64) float64 {
	k := r.key(section, name)
	if k == nil {
		return def
	}
	v, err := k.Float64()
	if err != nil {
		r.fail(section, name, k.String(), err)
		return def
	}
	return v
}

// Settings flattens cfg into "section.key" pairs
func (c Config) Settings() map[string]interface{} {
	return map[string]interface{}{
		KeyElementType:      c.ElementType,
		KeyQuadratureDegree: c.QuadratureDegree,
		KeyAccuracy:         c.Accuracy,
		KeyMaxIterations:    c.MaxIterations,
		KeyWorkers:          c.Workers,
		KeyConductivity:     c.Conductivity,
		KeyProblem:          c.Problem,
		KeyLogLevel:         c.LogLevel,
	}
}

func (c Config) Validate() error {
	if _, err := element.ParseKind(c.ElementType); err != nil {
		return err
	}
	if c.QuadratureDegree < 0 || c.QuadratureDegree > quadrature.MaxDegree {
		return fmt.Errorf("quadrature degree %d outside [0,%d]: %w",
			c.QuadratureDegree, quadrature.MaxDegree, utils.ErrInvalidArgument)
	}
	if !(c.Accuracy > 0) {
		return fmt.Errorf("accuracy %g must be positive: %w", c.Accuracy, utils.ErrInvalidArgument)
	}
	if !(c.Conductivity > 0) {
		return fmt.Errorf("conductivity %g must be positive: %w", c.Conductivity, utils.ErrInvalidArgument)
	}
	if _, err := solver.LookupProblem(c.Problem); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%v: %w", err, utils.ErrInvalidArgument)
	}
	return nil
}

func (c Config) Kind() element.Kind {
	k, _ := element.ParseKind(c.ElementType)
	return k
}

// Degree is the configured quadrature degree, or the default for the
// element type when unset
func (c Config) Degree() int {
	if c.QuadratureDegree == 0 {
		return space.DefaultQuadratureDegree(c.Kind())
	}
	return c.QuadratureDegree
}

func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
