package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Config controls audio output.
type Config struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"` // 0.0 - 1.0
	SampleRate   int     `yaml:"sample_rate"`
}

// DefaultConfig returns the default audio settings.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.6,
		SampleRate:   44100,
	}
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker initializes the process-wide speaker exactly once.
func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(rate, rate.N(100*time.Millisecond))
	})
	return speakerErr
}

type voice struct {
	ctrl  *beep.Ctrl
	until time.Time
}

// Source plays one-shot clips, layered on top of each other, on one channel.
// Playback state is tracked against the clip lengths, so IsPlaying behaves
// the same whether or not a sound device is attached.
type Source struct {
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer
	voices []voice
	now    func() time.Time

	attached bool // mixer is streaming to the speaker
}

// NewSource creates a source that is not attached to any output device.
// It keeps full playback state, which is what tests and headless sessions
// (SSH) need.
func NewSource(cfg Config) *Source {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = beep.SampleRate(DefaultConfig().SampleRate)
	}
	volume := cfg.MasterVolume
	if !cfg.Enabled {
		volume = 0
	}
	return &Source{
		rate:   rate,
		volume: volume,
		mixer:  &beep.Mixer{},
		now:    time.Now,
	}
}

// Open creates a source and attaches it to the speaker. If the speaker cannot
// be initialized the source stays silent and the error is returned for
// logging; the source is usable either way.
func Open(cfg Config) (*Source, error) {
	src := NewSource(cfg)
	if !cfg.Enabled {
		return src, nil
	}
	if err := initSpeaker(src.rate); err != nil {
		return src, fmt.Errorf("audio: speaker unavailable, running silent: %w", err)
	}
	speaker.Play(src.mixer)
	src.attached = true
	return src, nil
}

// SetClock replaces the time source used to track playback.
func (s *Source) SetClock(now func() time.Time) {
	s.now = now
}

// Silent reports whether the source is not producing sound.
func (s *Source) Silent() bool {
	return !s.attached || s.volume <= 0
}

func (s *Source) locked(fn func()) {
	if s.attached {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// PlayOneShot starts a clip without interrupting clips already playing.
func (s *Source) PlayOneShot(c Clip) {
	s.prune()

	ctrl := &beep.Ctrl{Streamer: newVolume(c.Streamer(s.rate), s.volume)}
	s.locked(func() {
		s.mixer.Add(ctrl)
	})
	s.voices = append(s.voices, voice{ctrl: ctrl, until: s.now().Add(c.Duration)})
}

// Stop silences every clip on this source.
func (s *Source) Stop() {
	s.locked(func() {
		for _, v := range s.voices {
			v.ctrl.Paused = true
			v.ctrl.Streamer = nil // lets the mixer drop it
		}
	})
	s.voices = s.voices[:0]
}

// IsPlaying reports whether any clip is still within its duration.
func (s *Source) IsPlaying() bool {
	s.prune()
	return len(s.voices) > 0
}

// Close stops playback and detaches from the speaker.
func (s *Source) Close() {
	s.Stop()
	s.locked(func() {
		s.mixer.Clear()
	})
	s.attached = false
}

func (s *Source) prune() {
	now := s.now()
	live := s.voices[:0]
	for _, v := range s.voices {
		if now.Before(v.until) {
			live = append(live, v)
		}
	}
	s.voices = live
}
