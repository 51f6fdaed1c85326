// Package audio synthesizes the rocket's sound clips and plays them through
// a single audio source.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects the waveform of a tone.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Clip is a named, fixed-length sound. Clips are synthesized on demand so
// there are no asset files to ship.
type Clip struct {
	Name     string
	Duration time.Duration
	build    func(rate beep.SampleRate) beep.Streamer
}

// Streamer returns a fresh stream for one playback, cut to the clip length.
func (c Clip) Streamer(rate beep.SampleRate) beep.Streamer {
	if c.build == nil {
		return beep.Silence(rate.N(c.Duration))
	}
	return beep.Take(rate.N(c.Duration), c.build(rate))
}

// IsZero reports whether the clip is unset.
func (c Clip) IsZero() bool {
	return c.Name == "" && c.build == nil
}

// Built-in clips.
var (
	// EngineClip is a short rumble that the rocket retriggers while thrusting.
	EngineClip = Clip{
		Name:     "engine",
		Duration: 400 * time.Millisecond,
		build: func(rate beep.SampleRate) beep.Streamer {
			d := 400 * time.Millisecond
			noise := newEnvelope(newTone(0, 0, d, WaveNoise, rate), d, 30*time.Millisecond, 30*time.Millisecond, rate)
			hum := newEnvelope(newTone(55, 55, d, WaveSaw, rate), d, 30*time.Millisecond, 30*time.Millisecond, rate)
			return beep.Mix(newVolume(noise, 0.25), newVolume(hum, 0.35))
		},
	}

	// DeathClip is a falling buzz that decays into noise.
	DeathClip = Clip{
		Name:     "death",
		Duration: 900 * time.Millisecond,
		build: func(rate beep.SampleRate) beep.Streamer {
			d := 900 * time.Millisecond
			sweep := newEnvelope(newTone(320, 50, d, WaveSaw, rate), d, 5*time.Millisecond, 600*time.Millisecond, rate)
			crackle := newEnvelope(newTone(0, 0, d, WaveNoise, rate), d, 5*time.Millisecond, 800*time.Millisecond, rate)
			return beep.Mix(newVolume(sweep, 0.5), newVolume(crackle, 0.35))
		},
	}

	// FinishClip is a rising two-note chime.
	FinishClip = Clip{
		Name:     "finish",
		Duration: 700 * time.Millisecond,
		build: func(rate beep.SampleRate) beep.Streamer {
			n1d, n2d := 250*time.Millisecond, 450*time.Millisecond
			n1 := newEnvelope(newTone(659.25, 659.25, n1d, WaveSquare, rate), n1d, 5*time.Millisecond, 120*time.Millisecond, rate)
			n2 := newEnvelope(newTone(987.77, 987.77, n2d, WaveSquare, rate), n2d, 5*time.Millisecond, 300*time.Millisecond, rate)
			return beep.Seq(newVolume(n1, 0.4), newVolume(n2, 0.4))
		},
	}
)

var clipsByName = map[string]Clip{
	EngineClip.Name: EngineClip,
	DeathClip.Name:  DeathClip,
	FinishClip.Name: FinishClip,
}

// ClipByName looks up a built-in clip.
func ClipByName(name string) (Clip, bool) {
	c, ok := clipsByName[name]
	return c, ok
}

// ClipNames lists the built-in clip names.
func ClipNames() []string {
	return []string{EngineClip.Name, DeathClip.Name, FinishClip.Name}
}

// tone generates a wave whose frequency slides linearly from freq to endFreq.
type tone struct {
	freq     float64
	endFreq  float64
	phase    float64
	position int
	duration int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newTone(freq, endFreq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(d),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(wave))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			val = -1.0
			if t.phase < 0.5 {
				val = 1.0
			}
		case WaveSaw:
			val = 2.0 * (t.phase - 0.5)
		case WaveNoise:
			val = t.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(t.position) / float64(t.duration)
		freq := t.freq + (t.endFreq-t.freq)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.release > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
