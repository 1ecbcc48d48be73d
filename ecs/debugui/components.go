package debugui

import (
	"github.com/plus3/sparsecs/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	filterMask         ecs.ComponentMask
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
}

type StorageViewerComponent struct {
	selectedId    *ecs.ComponentId
	sortColumn    int
	sortAscending bool
	rows          []ecs.StorageStats
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type MaskFilterComponent struct {
	selected ecs.ComponentMask
}
