// Command ecs-scenario runs YAML scene scripts and reports which pass.
//
//	ecs-scenario [-config ecs.toml] [-dir internal/scenario/testdata] [file.yaml ...]
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/plus3/sparsecs/internal/config"
	"github.com/plus3/sparsecs/internal/logging"
	"github.com/plus3/sparsecs/internal/scenario"
)

var errScenariosFailed = errors.New("scenarios failed")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML config file.")
	dir := flag.String("dir", "", "Directory of *.yaml scenarios, used when no files are given.")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error).")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *dir != "" {
		cfg.Scenario.Dir = *dir
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	scenarios, err := load(cfg.Scenario.Dir, flag.Args())
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios found in %s", cfg.Scenario.Dir)
	}

	return runAll(scenarios, log)
}

func load(dir string, files []string) ([]*scenario.Scenario, error) {
	if len(files) == 0 {
		return scenario.LoadDir(dir)
	}
	out := make([]*scenario.Scenario, 0, len(files))
	for _, f := range files {
		sc, err := scenario.Load(f)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

func runAll(scenarios []*scenario.Scenario, log *zap.Logger) error {
	failed := 0
	for _, sc := range scenarios {
		res := scenario.Run(sc, log)
		if res.Err != nil {
			failed++
			log.Error("scenario failed",
				zap.String("scenario", res.Name),
				zap.String("file", sc.Path()),
				zap.Int("passed_steps", res.Steps),
				zap.Error(res.Err))
			continue
		}
		log.Info("scenario passed", zap.String("scenario", res.Name), zap.Int("steps", res.Steps))
	}

	log.Info("done", zap.Int("total", len(scenarios)), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errScenariosFailed, failed, len(scenarios))
	}
	return nil
}
