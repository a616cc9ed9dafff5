package main

import (
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"

	"github.com/udisondev/gatekeep/internal/gate"
	"github.com/udisondev/gatekeep/internal/journal"
)

type gateSummary struct {
	Name   string
	Kind   string
	Angle  float64
	Target float64
	Motion gate.MotionKind
	Events int
	Inert  bool
}

type npcSummary struct {
	Name   string
	Detail string
}

type summary struct {
	Elapsed  time.Duration
	Ticks    uint64
	Gates    []gateSummary
	NPCs     []npcSummary
	Digest   string
	Recorded int
	Dropped  int
}

func (sc *sceneRuntime) summary(rec *journal.Recorder) summary {
	events := rec.Events()
	perGate := make(map[string]int)
	for _, e := range events {
		perGate[e.Gate]++
	}

	s := summary{
		Elapsed:  sc.mgr.Elapsed(),
		Ticks:    sc.mgr.Ticks(),
		Digest:   rec.Digest(),
		Recorded: len(events),
		Dropped:  rec.Dropped(),
	}
	for _, h := range sc.gates {
		gs := gateSummary{
			Name:   h.name,
			Kind:   h.kind,
			Angle:  h.sim.Angle(),
			Target: h.sim.TargetAngle(),
			Events: perGate[h.name],
		}
		if h.ctl != nil {
			gs.Motion = h.ctl.Active()
			gs.Inert = h.ctl.Inert()
		}
		s.Gates = append(s.Gates, gs)
	}
	for _, w := range sc.walkers {
		s.NPCs = append(s.NPCs, npcSummary{
			Name:   w.Name(),
			Detail: fmt.Sprintf("walker loops=%d waypoint=%d %s", w.Loops(), w.Index(), w.Intention()),
		})
	}
	for _, q := range sc.dialogues {
		s.NPCs = append(s.NPCs, npcSummary{
			Name:   q.Name(),
			Detail: fmt.Sprintf("dialogue lines=%v %s", q.Played(), q.Intention()),
		})
	}
	return s
}

var (
	styleHeader = color.Style{color.FgCyan, color.OpBold}
	styleName   = color.Style{color.FgYellow}
	styleOK     = color.Style{color.FgGreen}
	styleWarn   = color.Style{color.FgRed, color.OpBold}
	styleSubtle = color.Style{color.FgGray}
)

// printSummary writes the run report; colors only when w is a terminal.
func printSummary(w io.Writer, colored bool, s summary) {
	paint := func(st color.Style, format string, args ...any) string {
		text := fmt.Sprintf(format, args...)
		if !colored {
			return text
		}
		return st.Sprint(text)
	}

	fmt.Fprintln(w, paint(styleHeader, "scene finished: %v in %d ticks", s.Elapsed, s.Ticks))

	for _, g := range s.Gates {
		state := paint(styleOK, "%s", g.Motion)
		if g.Inert {
			state = paint(styleWarn, "INERT")
		}
		fmt.Fprintf(w, "  gate %s [%s] angle=%.2f target=%.2f motion=%s events=%d\n",
			paint(styleName, "%s", g.Name), g.Kind, g.Angle, g.Target, state, g.Events)
	}
	for _, n := range s.NPCs {
		fmt.Fprintf(w, "  npc  %s %s\n", paint(styleName, "%s", n.Name), n.Detail)
	}

	fmt.Fprintf(w, "  journal events=%d digest=%s\n", s.Recorded, paint(styleSubtle, "%s", s.Digest))
	if s.Dropped > 0 {
		fmt.Fprintln(w, paint(styleWarn, "  journal dropped %d events", s.Dropped))
	}
}
