package app

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	soundSampleRate = beep.SampleRate(44100)
	penStrokeLength = 60 * time.Millisecond
	penVolume       = 0.08
)

// PenSounds plays short scratch sounds while drawing. The speaker is
// opened lazily the first time sounds are enabled.
type PenSounds struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	enabled     bool
	initialized bool
	seed        uint64

	// replaced in tests
	initSpeaker func(sr beep.SampleRate, bufferSize int) error
	play        func(s beep.Streamer)
}

func NewPenSounds() *PenSounds {
	return &PenSounds{
		mixer:       &beep.Mixer{},
		initSpeaker: speaker.Init,
		play:        func(s beep.Streamer) { speaker.Play(s) },
	}
}

// SetEnabled turns sounds on or off. Enabling opens the speaker if needed;
// on failure sounds stay disabled.
func (p *PenSounds) SetEnabled(enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if enabled && !p.initialized {
		if err := p.initSpeaker(soundSampleRate, soundSampleRate.N(50*time.Millisecond)); err != nil {
			p.enabled = false
			return err
		}
		p.play(p.mixer)
		p.initialized = true
	}
	p.enabled = enabled
	if !enabled {
		p.mixer.Clear()
	}
	return nil
}

func (p *PenSounds) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// PlayStroke queues one scratch. It is a no-op while disabled.
func (p *PenSounds) PlayStroke() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	p.seed++
	p.mixer.Add(beep.Take(soundSampleRate.N(penStrokeLength), newScratch(soundSampleRate, p.seed)))
}

// Close silences all queued sounds.
func (p *PenSounds) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mixer.Clear()
	p.enabled = false
}

// scratch is band-limited noise with a decaying envelope.
type scratch struct {
	sr   beep.SampleRate
	rng  *rand.Rand
	pos  int
	last float64
}

func newScratch(sr beep.SampleRate, seed uint64) *scratch {
	return &scratch{sr: sr, rng: rand.New(rand.NewPCG(seed, 0x5ce7c4))}
}

func (s *scratch) Stream(samples [][2]float64) (n int, ok bool) {
	decay := float64(s.sr.N(penStrokeLength)) / 4
	for i := range samples {
		env := math.Exp(-float64(s.pos) / decay)
		// one-pole low-pass takes the hiss out of white noise
		s.last += 0.35 * (s.rng.Float64()*2 - 1 - s.last)
		v := penVolume * env * s.last
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *scratch) Err() error { return nil }
