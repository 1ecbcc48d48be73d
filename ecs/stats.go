package ecs

import "sort"

// StorageStats describes one component storage.
type StorageStats struct {
	Id    ComponentId
	Type  string
	Len   int
	Pages int
}

// SceneStats is a point-in-time summary of a scene.
type SceneStats struct {
	EntityCount        int
	Capacity           int
	FreeIds            int
	ComponentTypeCount int
	StorageBreakdown   []StorageStats
	SingletonCount     int
	SingletonTypes     []string
}

// CollectStats gathers entity, storage and singleton counts.
func (s *Scene) CollectStats() SceneStats {
	s.checkOpen()
	stats := SceneStats{
		EntityCount:        s.live,
		Capacity:           s.maxEntities,
		FreeIds:            len(s.freeIds),
		ComponentTypeCount: s.registry.Len(),
		SingletonCount:     len(s.singletons),
	}

	for id, t := range s.registry.types {
		entry := StorageStats{Id: ComponentId(id), Type: t.String()}
		if st := s.storage(ComponentId(id)); st != nil {
			entry.Len = st.Len()
			entry.Pages = st.PageCount()
		}
		stats.StorageBreakdown = append(stats.StorageBreakdown, entry)
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
