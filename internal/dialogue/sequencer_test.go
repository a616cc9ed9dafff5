package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gatekeep/internal/model"
	"github.com/udisondev/gatekeep/internal/testutil"
)

func advanceFor(q *Sequencer, total, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		q.Advance(step)
	}
}

func TestSequencer_GreetingThenProd(t *testing.T) {
	voice := &testutil.MockVoice{}
	anim := testutil.NewMockAnimator()
	q := New("sergeant", voice, anim, DefaultConfig())

	advanceFor(q, 2900*time.Millisecond, 100*time.Millisecond)
	assert.Empty(t, voice.Played, "greeting waits its delay")
	assert.Equal(t, model.IntentionTalk, q.Intention())

	q.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"greeting"}, voice.Played)
	assert.Equal(t, []string{"Line1"}, anim.Triggers)

	advanceFor(q, 26900*time.Millisecond, 100*time.Millisecond)
	assert.Len(t, voice.Played, 1, "prod waits for the absolute deadline")

	q.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"greeting", "prod"}, voice.Played)
	assert.Equal(t, []string{"Line1", "Line2"}, q.Played())
	assert.Equal(t, 2, voice.Stops, "every line stops the previous one")
	assert.Equal(t, model.IntentionIdle, q.Intention())

	advanceFor(q, time.Minute, time.Second)
	assert.Len(t, voice.Played, 2)
}

func TestSequencer_PickupCancelsProd(t *testing.T) {
	voice := &testutil.MockVoice{}
	q := New("sergeant", voice, testutil.NewMockAnimator(), DefaultConfig())

	advanceFor(q, 10*time.Second, 100*time.Millisecond)
	q.OnExternalEvent()
	q.OnExternalEvent()

	advanceFor(q, time.Minute, 100*time.Millisecond)

	assert.Equal(t, []string{"greeting", "pickup"}, voice.Played, "pickup is one-shot and prod never plays")
	assert.Equal(t, model.IntentionIdle, q.Intention())
}

func TestSequencer_PickupBeforeGreeting(t *testing.T) {
	voice := &testutil.MockVoice{}
	q := New("sergeant", voice, testutil.NewMockAnimator(), DefaultConfig())

	q.Advance(time.Second)
	q.OnExternalEvent()
	advanceFor(q, time.Minute, 500*time.Millisecond)

	assert.Equal(t, []string{"pickup", "greeting"}, voice.Played)
}

func TestSequencer_LateGreetingPlaysProdSameTick(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GreetingDelay = 40 * time.Second
	voice := &testutil.MockVoice{}
	q := New("sergeant", voice, testutil.NewMockAnimator(), cfg)

	q.Advance(40 * time.Second)

	assert.Equal(t, []string{"greeting", "prod"}, voice.Played)
}

func TestSequencer_EmptyClipSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Greeting.Clip = ""
	voice := &testutil.MockVoice{}
	anim := testutil.NewMockAnimator()
	q := New("sergeant", voice, anim, cfg)

	q.Advance(5 * time.Second)

	assert.Empty(t, voice.Played)
	assert.Empty(t, anim.Triggers)
	assert.Zero(t, voice.Stops)
}

func TestSequencer_InertWithoutVoice(t *testing.T) {
	q := New("mute", nil, testutil.NewMockAnimator(), DefaultConfig())

	assert.NotPanics(t, func() {
		q.Advance(time.Minute)
		q.OnExternalEvent()
	})
	assert.Empty(t, q.Played())
}

func TestSequencer_Subtitles(t *testing.T) {
	catalog, err := NewCatalog("ru")
	require.NoError(t, err)

	var shown []string
	q := New("sergeant", &testutil.MockVoice{}, testutil.NewMockAnimator(), DefaultConfig(),
		WithSubtitles(SubtitlesFunc(func(speaker, text string) {
			assert.Equal(t, "sergeant", speaker)
			shown = append(shown, text)
		}), catalog))

	q.Advance(3 * time.Second)

	require.Len(t, shown, 1)
	assert.Equal(t, "Эй! Ты там. Меч на стойке сам себя не поднимет.", shown[0])
}

func TestCatalog(t *testing.T) {
	en, err := NewCatalog("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, en.Locale())
	assert.Equal(t, "Are you deaf, lad? The sword! Pick up the sword!", en.Get("LINE_PROD"))
	assert.Equal(t, "UNKNOWN_KEY", en.Get("UNKNOWN_KEY"))

	_, err = NewCatalog("xx")
	assert.Error(t, err)

	var missing *Catalog
	assert.Equal(t, "LINE_PROD", missing.Get("LINE_PROD"))
}

func TestCatalog_KeysTranslatedVerbatim(t *testing.T) {
	for _, locale := range []string{"en", "ru"} {
		t.Run(locale, func(t *testing.T) {
			c, err := NewCatalog(locale)
			require.NoError(t, err)
			for _, key := range []string{KeyGreeting, KeyProd, KeyPickup} {
				line := c.Get(key)
				assert.NotEqual(t, key, line, "%s has no %s translation", key, locale)
				assert.NotContains(t, line, "%!", "translation must not be run through a formatter")
			}
			assert.Equal(t, "100% LOUDER %d", c.Get("100% LOUDER %d"))
			assert.Empty(t, c.Get(""))
		})
	}
}
