package debugui

import "github.com/plus3/match3/ecs"

// Windows holds the state of the stock inspector windows.
type Windows struct {
	Performance *PerformanceStats
	Entities    *EntityBrowser
	Inspector   *ComponentInspector
	Components  *ComponentViewer
}

// SpawnDebugUI spawns into host one ImguiItem that draws every inspector window
// for world. host and world may be the same storage. scheduler may be nil, in
// which case system timings are not shown.
func SpawnDebugUI(host, world *ecs.Storage, scheduler *ecs.Scheduler) *Windows {
	w := &Windows{
		Performance: NewPerformanceStats(120),
		Entities:    NewEntityBrowser(100),
		Inspector:   &ComponentInspector{},
		Components:  NewComponentViewer(),
	}
	timer := NewFrameTimer()

	host.Spawn(ImguiItem{
		Render: func() {
			w.Performance.Render(world, scheduler, timer.GetDeltaTime())
			w.Entities.Render(world)
			w.Inspector.Render(world, w.Entities.Selected())
			w.Components.Render(world)
		},
	})
	return w
}
