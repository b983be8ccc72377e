package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/shiftri/planner"
	"github.com/plus3/shiftri/sim"
)

type MatchResult struct {
	Seed      uint64
	Stats     sim.MatchStats
	Scheduler *sim.SchedulerStats
	Cache     planner.CacheStats
	Elapsed   time.Duration
	Board     string
}

// ActionCounts lists the action tallies in a stable order.
func (r MatchResult) ActionCounts() []ActionCount {
	var out []ActionCount
	for a := planner.ActionPlan; a <= planner.ActionLock; a++ {
		if n := r.Stats.Actions[a]; n > 0 {
			out = append(out, ActionCount{Action: a, Count: n})
		}
	}
	return out
}

type ActionCount struct {
	Action planner.Action
	Count  int
}

type Report struct {
	Config    sim.Config
	ShowBoard bool

	Matches       []MatchResult
	TotalTime     time.Duration
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// TotalPieces sums locked pieces over all matches.
func (r *Report) TotalPieces() int {
	total := 0
	for _, m := range r.Matches {
		total += m.Stats.Pieces
	}
	return total
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Shiftri Simulation Report

## Configuration
- **Board:** {{.Config.Width}}x{{.Config.Height}}
- **Policy:** {{.Config.Policy}}
- **Extreme Gravity:** {{.Config.ExtremeGravity}}
- **Gravity Every:** {{.Config.GravityEvery}} ticks
- **Lock Delay:** {{.Config.LockDelay}} ticks
- **Piece Limit:** {{.Config.PieceLimit}}
- **Search Cache:** {{.Config.CacheSize}} entries

## Totals
- **Matches:** {{len .Matches}}
- **Pieces:** {{.TotalPieces}}
- **Total Time:** {{.TotalTime}}
- Total Alloc: {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
{{range $i, $m := .Matches}}
## Match {{inc $i}} (seed {{$m.Seed}})
- **Pieces:** {{$m.Stats.Pieces}}{{if $m.Stats.TopOut}} (topped out){{end}}
- **Ticks:** {{$m.Scheduler.Ticks}} in {{$m.Elapsed}}
- **Replans:** {{$m.Stats.Replans}}
- **Forced Locks:** {{$m.Stats.ForcedLocks}}
- **Max Stack:** {{$m.Stats.MaxStack}}
- **Cache:** {{$m.Cache.Hits}} hits, {{$m.Cache.Misses}} misses, {{$m.Cache.Bypass}} bypassed
- **Actions:**{{range $m.ActionCounts}} {{.Action}}={{.Count}}{{end}}
- **Systems:**
{{- range $m.Scheduler.Systems}}
  - {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}
{{if $.ShowBoard}}
` + "```" + `
{{$m.Board}}` + "```" + `
{{end}}{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"inc": func(i int) int {
			return i + 1
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
