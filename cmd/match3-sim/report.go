package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/match3/ecs"
	"github.com/plus3/match3/match3"
)

type Report struct {
	// Configuration
	Seed     uint64
	Duration time.Duration
	MaxTicks int

	// Results
	Levels         []LevelResult
	Finished       bool
	TotalTime      time.Duration
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type LevelResult struct {
	Name     string
	Session  string
	Needed   int
	Won      bool
	Ticks    int
	Swaps    int
	Matches  int
	ByShape  []ShapeCount
	Unlocks  match3.UnlockFlags
	TickTime Stats
}

type ShapeCount struct {
	Shape string
	Count int
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Match-3 Autoplay Report

## Run Configuration
- **Seed:** {{.Seed}}
- **Wall Clock Limit:** {{.Duration}}
- **Tick Limit Per Level:** {{.MaxTicks}}

## Levels
{{range .Levels}}
### {{.Name}} {{if .Won}}(won){{else}}(not won){{end}}
- **Session:** {{.Session}}
- **Matches:** {{.Matches}} / {{.Needed}}
- **Ticks:** {{.Ticks}} ({{.Swaps}} swaps requested)
- **Unlocked Specials:** {{unlocks .Unlocks}}
- **By Shape:**{{range .ByShape}} {{.Shape}}={{.Count}}{{end}}
- **Tick Time:** avg {{.TickTime.Avg}}, min {{.TickTime.Min}}, max {{.TickTime.Max}}
{{end}}
## Summary
- **Every Level Finished:** {{.Finished}}
- **Total Time:** {{.TotalTime}}

## Systems
| System | Runs | Skips | Avg | Max |
|---|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.SkipCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"unlocks": func(f match3.UnlockFlags) string {
			if f == (match3.UnlockFlags{}) {
				return "none"
			}
			return fmt.Sprintf("liner=%t bomb=%t eliminator=%t", f.Liner, f.Bomb, f.Eliminator)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
