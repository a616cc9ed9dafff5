package main

import (
	"log/slog"

	"github.com/udisondev/gatekeep/internal/scene"
)

// logAnimator stands in for an engine animator: it keeps the last
// parameter values and logs triggers.
type logAnimator struct {
	npc    string
	floats map[string]float64
}

func newLogAnimator(npc string) *logAnimator {
	return &logAnimator{npc: npc, floats: make(map[string]float64)}
}

func (a *logAnimator) SetFloat(name string, value float64) {
	a.floats[name] = value
	if scene.IsDebugEnabled() {
		slog.Debug("animator float", "npc", a.npc, "param", name, "value", value)
	}
}

func (a *logAnimator) SetTrigger(name string) {
	slog.Debug("animator trigger", "npc", a.npc, "trigger", name)
}

// logVoice stands in for an audio source.
type logVoice struct {
	npc string
}

func (v logVoice) Stop() {}

func (v logVoice) PlayOneShot(clip string) {
	slog.Info("voice line", "npc", v.npc, "clip", clip)
}

type logSubtitles struct{}

func (logSubtitles) Show(speaker, text string) {
	slog.Info("subtitle", "speaker", speaker, "text", text)
}
