// Package dialogue sequences timed NPC voice lines: a greeting after a delay,
// a prod line if the player has not picked up the weapon by a deadline, and
// a one-shot line when the pickup happens.
package dialogue

import (
	"log/slog"
	"time"

	"github.com/udisondev/gatekeep/internal/model"
)

// Voice plays audio clips.
type Voice interface {
	Stop()
	PlayOneShot(clip string)
}

// Animator fires talk animations.
type Animator interface {
	SetTrigger(name string)
}

// Subtitles receives the localized text of every line played.
type Subtitles interface {
	Show(speaker, text string)
}

// SubtitlesFunc adapts a function to Subtitles.
type SubtitlesFunc func(speaker, text string)

// Show calls f(speaker, text).
func (f SubtitlesFunc) Show(speaker, text string) { f(speaker, text) }

// Line is one voice line. A line without a clip is skipped.
type Line struct {
	Clip     string
	Trigger  string
	Subtitle string // catalog key
}

// Config tunes a sequencer.
type Config struct {
	Greeting Line
	Pickup   Line
	Prod     Line

	GreetingDelay time.Duration
	// ProdDelay is measured from sequencer start, not from the greeting.
	ProdDelay time.Duration
}

// DefaultConfig returns the stock drill-sergeant lines.
func DefaultConfig() Config {
	return Config{
		Greeting:      Line{Clip: "greeting", Trigger: "Line1", Subtitle: KeyGreeting},
		Prod:          Line{Clip: "prod", Trigger: "Line2", Subtitle: KeyProd},
		Pickup:        Line{Clip: "pickup", Trigger: "Line3", Subtitle: KeyPickup},
		GreetingDelay: 3 * time.Second,
		ProdDelay:     30 * time.Second,
	}
}

type phase uint8

const (
	phaseGreeting phase = iota
	phaseProd
	phaseDone
)

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithSubtitles routes localized line text to s using catalog.
func WithSubtitles(s Subtitles, catalog *Catalog) Option {
	return func(q *Sequencer) {
		q.subs = s
		q.catalog = catalog
	}
}

// Sequencer plays the lines of one NPC.
type Sequencer struct {
	name    string
	voice   Voice
	anim    Animator
	subs    Subtitles
	catalog *Catalog
	cfg     Config

	now    time.Duration
	phase  phase
	picked bool
	played []string
}

// New creates a sequencer. Missing voice or animator makes it inert.
func New(name string, voice Voice, anim Animator, cfg Config, opts ...Option) *Sequencer {
	q := &Sequencer{
		name:  name,
		voice: voice,
		anim:  anim,
		cfg:   cfg,
	}
	for _, opt := range opts {
		opt(q)
	}
	if voice == nil || anim == nil {
		slog.Warn("dialogue is inert", "npc", name, "voice", voice != nil, "animator", anim != nil)
		q.phase = phaseDone
	}
	return q
}

// Name returns the NPC name.
func (q *Sequencer) Name() string { return q.name }

// Played returns the triggers of the lines played so far, in order.
func (q *Sequencer) Played() []string { return q.played }

// Intention reports TALK while lines are still pending, IDLE afterwards.
func (q *Sequencer) Intention() model.Intention {
	if q.phase == phaseDone {
		return model.IntentionIdle
	}
	return model.IntentionTalk
}

// Advance moves the sequencer clock and plays due lines.
func (q *Sequencer) Advance(dt time.Duration) {
	q.now += dt
	for {
		switch q.phase {
		case phaseGreeting:
			if q.now < q.cfg.GreetingDelay {
				return
			}
			q.play(q.cfg.Greeting)
			q.phase = phaseProd

		case phaseProd:
			if q.picked {
				q.phase = phaseDone
				return
			}
			if q.now < q.cfg.ProdDelay {
				return
			}
			q.play(q.cfg.Prod)
			q.phase = phaseDone

		default:
			return
		}
	}
}

// OnExternalEvent reports the weapon pickup. Only the first call plays the
// pickup line; it also cancels the pending prod.
func (q *Sequencer) OnExternalEvent() {
	if q.picked || q.voice == nil || q.anim == nil {
		return
	}
	q.picked = true
	q.play(q.cfg.Pickup)
}

func (q *Sequencer) play(l Line) {
	if l.Clip == "" {
		return
	}
	q.voice.Stop()
	q.anim.SetTrigger(l.Trigger)
	q.voice.PlayOneShot(l.Clip)
	q.played = append(q.played, l.Trigger)

	slog.Debug("dialogue line", "npc", q.name, "trigger", l.Trigger, "clip", l.Clip, "at", q.now)

	if q.subs != nil {
		q.subs.Show(q.name, q.catalog.Get(l.Subtitle))
	}
}
