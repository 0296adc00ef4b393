package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/notargets/FEMKernel/config"
	"github.com/notargets/FEMKernel/evaluator"
	"github.com/notargets/FEMKernel/mesh"
	"github.com/notargets/FEMKernel/mesh/readers"
	"github.com/notargets/FEMKernel/quadrature"
	"github.com/notargets/FEMKernel/solver"
	"github.com/notargets/FEMKernel/space"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "FEMNET"

// flagKeys maps each flag to the config key it overrides
var flagKeys = map[string]string{
	"type":           config.KeyElementType,
	"degree":         config.KeyQuadratureDegree,
	"accuracy":       config.KeyAccuracy,
	"max-iterations": config.KeyMaxIterations,
	"workers":        config.KeyWorkers,
	"conductivity":   config.KeyConductivity,
	"problem":        config.KeyProblem,
	"log-level":      config.KeyLogLevel,
}

func newRootCmd() *cobra.Command {
	var configFile string
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "femnet <mesh>",
		Short: "Solve a heat problem on a triangle mesh and report the L2 error",
		Long: `femnet reads a 2D triangle mesh (.mesh native text or .neu Gambit neutral;
a path without extension is read as <path>.mesh), solves -div(k grad u) = f
for one of the manufactured problems with P1 or P1b elements and prints the
L2 error against the exact solution.

Settings come from the --config INI file, then FEMNET_<SECTION>_<KEY>
environment variables, then flags.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errMissingMesh
			}
			cfg, err := resolveConfig(cmd, configFile)
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())
			log.SetLevel(cfg.Level())
			return run(cmd, cfg, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "INI settings file")
	flags.StringP("type", "t", def.ElementType, "element type: p1 or p1b")
	flags.Float64P("accuracy", "a", def.Accuracy, "relative residual of the linear solve")
	flags.Int("degree", def.QuadratureDegree, "quadrature degree, 0 for the element default")
	flags.Int("max-iterations", def.MaxIterations, "conjugate gradient iteration limit, 0 for automatic")
	flags.Int("workers", def.Workers, "element loop goroutines, 0 for one per CPU")
	flags.Float64("conductivity", def.Conductivity, "thermal conductivity")
	flags.String("problem", def.Problem, "manufactured problem: "+strings.Join(solver.ProblemNames(), ", "))
	flags.String("log-level", def.LogLevel, "log level")
	return cmd
}

// resolveConfig layers flags over environment over the INI file
func resolveConfig(cmd *cobra.Command, configFile string) (config.Config, error) {
	base, err := config.Load(configFile)
	if err != nil {
		return base, err
	}
	v := viper.New()
	for key, val := range base.Settings() {
		v.SetDefault(key, val)
	}
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return base, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := config.Config{
		ElementType:      v.GetString(config.KeyElementType),
		QuadratureDegree: v.GetInt(config.KeyQuadratureDegree),
		Accuracy:         v.GetFloat64(config.KeyAccuracy),
		MaxIterations:    v.GetInt(config.KeyMaxIterations),
		Workers:          v.GetInt(config.KeyWorkers),
		Conductivity:     v.GetFloat64(config.KeyConductivity),
		Problem:          v.GetString(config.KeyProblem),
		LogLevel:         v.GetString(config.KeyLogLevel),
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, cfg config.Config, meshPath string) error {
	logger := log.WithFields(log.Fields{"run": uuid.New().String()})
	start := time.Now()

	msh, err := loadMesh(meshPath)
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"mesh":     meshPath,
		"vertices": msh.NumVertices(),
		"elements": msh.NumElements(),
		"elapsed":  time.Since(start),
	}).Info("mesh loaded")

	q, err := quadrature.New(cfg.Degree())
	if err != nil {
		return err
	}
	sp, err := space.NewSpace(cfg.Kind(), msh, q)
	if err != nil {
		return err
	}
	prob, err := solver.LookupProblem(cfg.Problem)
	if err != nil {
		return err
	}

	s := solver.New(
		solver.WithAccuracy(cfg.Accuracy),
		solver.WithMaxIterations(cfg.MaxIterations),
		solver.WithWorkers(cfg.Workers),
		solver.WithConductivity(cfg.Conductivity),
	)
	u, stats, err := s.Solve(cmd.Context(), sp, prob)
	if err != nil {
		return err
	}
	l2, err := evaluator.New(evaluator.WithWorkers(cfg.Workers)).CalculateError(sp, prob.Exact, u)
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"space":      sp.String(),
		"problem":    prob.Name,
		"iterations": stats.Iterations,
		"residual":   stats.Residual,
		"l2":         l2,
		"elapsed":    time.Since(start),
	}).Info("done")

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s, %d elements, %d DOFs: L2 error %.6e\n",
		prob.Name, cfg.Kind(), msh.NumElements(), stats.NumDOF, l2)
	return nil
}

// loadMesh reads path, turning a missing file or directory into a userError
func loadMesh(path string) (*mesh.Mesh, error) {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &userError{msg: "DIRECTORY NOT FOUND: " + dir}
	case err != nil:
		return nil, err
	case !info.IsDir():
		return nil, &userError{msg: "DIRECTORY NOT FOUND: " + dir}
	}
	msh, err := readers.ReadMeshFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &userError{msg: "FILE NOT FOUND: " + path}
	}
	return msh, err
}
