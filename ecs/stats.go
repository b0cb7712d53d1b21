package ecs

import (
	"sort"
	"strings"
)

// StorageStats is a point-in-time summary of a Storage, used by debug overlays and reports.
type StorageStats struct {
	TotalEntityCount   int
	ComponentTypeCount int
	SingletonCount     int
	EventTypeCount     int
	StateCount         int
	ComponentBreakdown []ComponentStats
	SingletonTypes     []string
}

// ComponentStats reports how many entities hold one component type.
type ComponentStats struct {
	TypeName    string
	EntityCount int
}

// CollectStats gathers storage statistics. Event buffers and states are kept as
// internal singletons and are reported in their own counters, not as singletons.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		TotalEntityCount: s.entities.count,
		EventTypeCount:   len(s.events),
		StateCount:       len(s.states),
	}

	for t, store := range s.components {
		if store.len() == 0 {
			continue
		}
		stats.ComponentBreakdown = append(stats.ComponentBreakdown, ComponentStats{
			TypeName:    t.String(),
			EntityCount: store.len(),
		})
	}
	stats.ComponentTypeCount = len(stats.ComponentBreakdown)

	internal := len(s.events) + len(s.states)
	stats.SingletonCount = len(s.singletons) - internal
	for t := range s.singletons {
		if isInternalSingleton(t.String()) {
			continue
		}
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}

	sort.Slice(stats.ComponentBreakdown, func(i, j int) bool {
		return stats.ComponentBreakdown[i].TypeName < stats.ComponentBreakdown[j].TypeName
	})
	sort.Strings(stats.SingletonTypes)
	return stats
}

func isInternalSingleton(name string) bool {
	return strings.HasPrefix(name, "ecs.eventBuffer[") || strings.HasPrefix(name, "ecs.stateMachine[")
}
