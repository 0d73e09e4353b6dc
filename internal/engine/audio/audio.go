// Package audio plays short synthesized sound cues.
package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init succeeded.
var ErrNotInitialized = errors.New("audio not initialized")

// Cue is a sine tone of fixed pitch and length.
type Cue struct {
	Freq     float64 // Hz
	Duration time.Duration
}

// Manager mixes cues into the speaker. The speaker runs on its own
// goroutine, so every field is guarded by mu.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	log         *zap.Logger

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	mixer *beep.Mixer
}

// New creates a new audio manager.
func New(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		sampleRate:   DefaultSampleRate,
		log:          log,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		mixer:        &beep.Mixer{},
	}
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.mixer)

	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sampleRate", int(m.sampleRate)))
	return nil
}

// Close silences all cues and releases the device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences new cues without touching the volume levels.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the cue volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// Muted reports whether cues are silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// effectiveVolume is the linear gain applied to a new cue.
func (m *Manager) effectiveVolume() float64 {
	if m.muted {
		return 0
	}
	return m.masterVolume * m.sfxVolLevel
}

// volumeToExponent converts a linear 0-1 gain to the exponent used by
// effects.Volume with base 2.
func volumeToExponent(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// cueStreamer builds the finite, volume-scaled tone for c.
func (m *Manager) cueStreamer(c Cue, vol float64) (beep.Streamer, error) {
	if c.Duration <= 0 {
		return nil, fmt.Errorf("cue duration must be positive, got %v", c.Duration)
	}
	tone, err := generators.SineTone(m.sampleRate, c.Freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.1fHz: %w", c.Freq, err)
	}
	return &effects.Volume{
		Streamer: beep.Take(m.sampleRate.N(c.Duration), tone),
		Base:     2,
		Volume:   volumeToExponent(vol),
		Silent:   vol <= 0,
	}, nil
}

// PlayCue mixes a sine tone of freqHz lasting duration into whatever is
// already playing. Muted or silent managers accept and drop the cue.
func (m *Manager) PlayCue(freqHz float64, duration time.Duration) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.effectiveVolume()
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if vol <= 0 {
		return nil
	}

	s, err := m.cueStreamer(Cue{Freq: freqHz, Duration: duration}, vol)
	if err != nil {
		return err
	}

	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	return nil
}
