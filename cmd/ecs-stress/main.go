// Command ecs-stress runs a create/destroy churn workload against a Scene
// and prints a markdown report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/sparsecs/ecs"
	"github.com/plus3/sparsecs/internal/config"
	"github.com/plus3/sparsecs/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML config file.")
	duration := flag.Duration("duration", 0, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 0, "The initial number of entities to create.")
	maxEntities := flag.Int("max-entities", 0, "Scene capacity.")
	churn := flag.Int("churn", 0, "Random entities replaced per frame.")
	seed := flag.Int64("seed", 0, "Random seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile.")
	profileDir := flag.String("profile-dir", "", "Directory for profile output.")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error).")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			cfg.Stress.Duration = *duration
		case "entities":
			cfg.Stress.Entities = *entityCount
		case "max-entities":
			cfg.Stress.MaxEntities = *maxEntities
		case "churn":
			cfg.Stress.ChurnPerFrame = *churn
		case "seed":
			cfg.Stress.Seed = *seed
		case "gc-pause-metrics":
			cfg.Stress.GCPauseMetrics = *gcPauseMetrics
		case "profile":
			cfg.Profile.Mode = *profileMode
		case "profile-dir":
			cfg.Profile.Dir = *profileDir
		case "log-level":
			cfg.Logging.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if stop := startProfile(cfg.Profile); stop != nil {
		defer stop()
	}

	report, err := stress(cfg.Stress, log)
	if err != nil {
		return err
	}

	fmt.Println("\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}

func startProfile(cfg config.ProfileConfig) func() {
	var mode func(*profile.Profile)
	switch cfg.Mode {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	default:
		return nil
	}
	p := profile.Start(mode, profile.ProfilePath(cfg.Dir), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
}

func stress(cfg config.StressConfig, log *zap.Logger) (report *Report, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if v := ecs.AsViolation(rec); v != nil {
				err = fmt.Errorf("workload: %w", v)
				return
			}
			panic(rec)
		}
	}()

	log.Info("starting ECS stress test",
		zap.Duration("duration", cfg.Duration),
		zap.Int("entities", cfg.Entities),
		zap.Int("max_entities", cfg.MaxEntities),
		zap.Int("churn_per_frame", cfg.ChurnPerFrame))

	scene := ecs.NewScene(cfg.MaxEntities, ecs.WithLogger(log.Named("scene")))
	defer scene.Close()

	populateStart := time.Now()
	scheduler := NewWorkload(scene, cfg.Entities, cfg.ChurnPerFrame, cfg.Seed)
	log.Info("population complete", zap.Duration("took", time.Since(populateStart)))

	report = &Report{
		Duration:       cfg.Duration,
		Entities:       cfg.Entities,
		MaxEntities:    cfg.MaxEntities,
		ChurnPerFrame:  cfg.ChurnPerFrame,
		Seed:           cfg.Seed,
		GCPauseMetrics: cfg.GCPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Churn = *ecs.NewSingleton[Churn](scene).Get()
	report.Scene = scene.CollectStats()
	report.Systems = scheduler.GetStats().Systems

	log.Info("simulation finished",
		zap.Int64("updates", report.TotalUpdates),
		zap.Duration("avg_update", report.UpdateTime.Avg),
		zap.Int64("destroyed", report.Churn.Destroyed))
	return report, nil
}
