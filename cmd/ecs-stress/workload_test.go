package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plus3/sparsecs/ecs"
	"github.com/plus3/sparsecs/internal/config"
)

func TestWorkloadKeepsPopulationStable(t *testing.T) {
	scene := ecs.NewScene(512)
	scheduler := NewWorkload(scene, 200, 10, 42)
	require.Equal(t, 200, scene.Len())

	for range 50 {
		scheduler.Once(1.0 / 60.0)
		require.Equal(t, 200, scene.Len())
	}

	churn := ecs.NewSingleton[Churn](scene).Get()
	assert.Equal(t, churn.Created, churn.Destroyed)
	assert.GreaterOrEqual(t, churn.Destroyed, int64(50*5), "random churn replaces entities every frame")
	assert.Equal(t, 200, ecs.Count[Lifetime](scene), "every entity carries a lifetime")

	ecs.Each2(scene, func(id ecs.EntityId, _ *Position, _ *Velocity) {
		assert.True(t, scene.Valid(id))
	})
}

func TestStressReport(t *testing.T) {
	cfg := config.Defaults().Stress
	cfg.Duration = 50 * time.Millisecond
	cfg.Entities = 100
	cfg.MaxEntities = 256
	cfg.ChurnPerFrame = 5
	cfg.GCPauseMetrics = true

	report, err := stress(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Positive(t, report.TotalUpdates)
	assert.Equal(t, 100, report.Scene.EntityCount)
	assert.Len(t, report.Systems, 3)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# ECS Stress Test Report")
	assert.Contains(t, out, "| LifetimeSystem |")
	assert.Contains(t, out, "main.Position")
	assert.Contains(t, out, "## GC Pause Durations")
}

func TestStressReportsPoolExhaustion(t *testing.T) {
	cfg := config.Defaults().Stress
	cfg.Entities = 10
	cfg.MaxEntities = 5

	_, err := stress(cfg, zap.NewNop())
	require.ErrorIs(t, err, ecs.ErrEntityPoolExhausted)
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{5, 1, 3}}
	s.Finalize()
	assert.Equal(t, Stats{Min: 1, Max: 5, Avg: 3, P99: 3, Samples: []time.Duration{5, 1, 3}}, s)
}
