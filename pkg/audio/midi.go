// Package audio renders a parsed Standard MIDI File to audio, using
// go-meltysynth as a software synthesizer and Ebitengine's audio package
// for playback. This is a demonstration layer built on top of the smf
// package's immutable parse results — the core parser itself never
// touches audio (spec.md §1 Non-goals excludes real-time
// playback/synthesis from the parser), but nothing stops a downstream
// component from rendering what it parsed.
//
// Grounded on the teacher's pkg/vm/audio/midi.go (MIDIStream, TickCalculator,
// MIDIPlayer), with the FILLY-specific pieces removed: no vm.EventQueue
// (no FILLY virtual machine exists in this module) and no FillyTick
// conversion (no 32nd-note tick convention to convert to). Tick/tempo
// bookkeeping is rebuilt on smf.TempoMap instead of a second, independent
// hand-rolled byte scan of the file, since this module already has a
// correct parse of the same bytes.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sinshu/go-meltysynth/meltysynth"

	"github.com/smf-tools/smf/pkg/smf"
)

// SampleRate is the audio sample rate used for synthesis.
const SampleRate = 44100

var (
	// ErrNoSoundFont is returned when no SoundFont file is provided.
	ErrNoSoundFont = errors.New("SoundFont file is required for MIDI playback")
	// ErrSoundFontNotFound is returned when the SoundFont file cannot be found.
	ErrSoundFontNotFound = errors.New("SoundFont file not found")
	// ErrMIDIFileNotFound is returned when the MIDI file cannot be found.
	ErrMIDIFileNotFound = errors.New("MIDI file not found")
)

// MIDIStream implements io.Reader for ebiten's audio.Player, rendering
// samples from the synthesizer's sequencer.
type MIDIStream struct {
	sequencer   *meltysynth.MidiFileSequencer
	sampleCount int64
	stopped     bool
	mu          sync.Mutex
}

// Read renders int16 little-endian stereo samples from the sequencer.
func (s *MIDIStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.sequencer == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	samples := len(p) / 4
	if samples == 0 {
		return 0, nil
	}

	left := make([]float32, samples)
	right := make([]float32, samples)
	s.sequencer.Render(left, right)
	s.sampleCount += int64(samples)

	for i := range samples {
		l := int16(clamp(left[i], -1, 1) * 32767)
		r := int16(clamp(right[i], -1, 1) * 32767)
		p[i*4] = byte(l)
		p[i*4+1] = byte(l >> 8)
		p[i*4+2] = byte(r)
		p[i*4+3] = byte(r >> 8)
	}
	return len(p), nil
}

// Stop marks the stream stopped; subsequent Read calls return silence.
func (s *MIDIStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// SampleCount returns the total number of samples rendered so far.
func (s *MIDIStream) SampleCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sampleCount
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// TickCalculator converts a sample count into a MIDI tick position,
// honoring every tempo change in the file.
//
// Grounded on the teacher's TickCalculator.precalculate/TickFromSamples,
// rebuilt atop smf.TempoMap's tick-indexed segments instead of a
// duplicate tempo scan.
type TickCalculator struct {
	tempoMap     *smf.TempoMap
	sampleAtTick []int64 // sample count at the start of each segment
}

// NewTickCalculator builds a TickCalculator from a file's tempo map.
func NewTickCalculator(tempoMap *smf.TempoMap) *TickCalculator {
	tc := &TickCalculator{tempoMap: tempoMap}
	tc.precalculate()
	return tc
}

func (tc *TickCalculator) precalculate() {
	segments := tc.tempoMap.Segments()
	tc.sampleAtTick = make([]int64, len(segments))
	if len(segments) == 0 {
		return
	}
	for i := 1; i < len(segments); i++ {
		prev := segments[i-1]
		ticksInSegment := segments[i].AbsoluteTick - prev.AbsoluteTick
		samplesPerTick := float64(SampleRate) * float64(prev.MicrosPerQuarter) / float64(tc.tempoMap.TicksPerQuarter()) / 1_000_000.0
		tc.sampleAtTick[i] = tc.sampleAtTick[i-1] + int64(float64(ticksInSegment)*samplesPerTick)
	}
}

// TickFromSamples converts a rendered sample count to an absolute MIDI
// tick position.
func (tc *TickCalculator) TickFromSamples(samples int64) uint64 {
	segments := tc.tempoMap.Segments()
	if len(segments) == 0 {
		return 0
	}
	segIdx := 0
	for i := len(segments) - 1; i >= 0; i-- {
		if samples >= tc.sampleAtTick[i] {
			segIdx = i
			break
		}
	}
	samplesPerTick := float64(SampleRate) * float64(segments[segIdx].MicrosPerQuarter) / float64(tc.tempoMap.TicksPerQuarter()) / 1_000_000.0
	if samplesPerTick <= 0 {
		return segments[segIdx].AbsoluteTick
	}
	ticksIntoSegment := uint64(float64(samples-tc.sampleAtTick[segIdx]) / samplesPerTick)
	return segments[segIdx].AbsoluteTick + ticksIntoSegment
}

// Player renders a parsed MIDI file to audio via go-meltysynth and an
// ebiten audio.Context.
//
// Grounded on the teacher's MIDIPlayer, with vm.EventQueue (FILLY tick
// events) and FillyTickFromSamples dropped: nothing in this module
// consumes them.
type Player struct {
	synth    *meltysynth.Synthesizer
	audioCtx *audio.Context
	player   *audio.Player
	stream   *MIDIStream
	tickCalc *TickCalculator

	playing  bool
	muted    bool
	duration time.Duration

	mu sync.RWMutex
}

// NewPlayer loads a SoundFont and builds a Player ready to Play files.
func NewPlayer(soundFontPath string, audioCtx *audio.Context) (*Player, error) {
	if soundFontPath == "" {
		return nil, ErrNoSoundFont
	}

	sf2Data, err := os.ReadFile(soundFontPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSoundFontNotFound, soundFontPath)
		}
		return nil, fmt.Errorf("failed to read SoundFont file: %w", err)
	}

	soundFont, err := meltysynth.NewSoundFont(bytes.NewReader(sf2Data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SoundFont: %w", err)
	}

	if audioCtx == nil {
		audioCtx = audio.NewContext(SampleRate)
	}

	settings := meltysynth.NewSynthesizerSettings(SampleRate)
	synth, err := meltysynth.NewSynthesizer(soundFont, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesizer: %w", err)
	}

	return &Player{synth: synth, audioCtx: audioCtx}, nil
}

// Play starts rendering parsed, whose tempo map has already been computed,
// reading its raw bytes a second time only to hand them to meltysynth's
// own sequencer (meltysynth renders from its own internal MIDI file
// representation, which this module cannot substitute its own parser
// into).
func (p *Player) Play(parsed *smf.MidiFile, rawBytes []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopInternal()

	midi, err := meltysynth.NewMidiFile(bytes.NewReader(rawBytes))
	if err != nil {
		return fmt.Errorf("meltysynth rejected MIDI file rendering: %w", err)
	}

	p.tickCalc = NewTickCalculator(parsed.TempoMap())

	sequencer := meltysynth.NewMidiFileSequencer(p.synth)
	sequencer.Play(midi, false)
	p.duration = midi.GetLength()
	p.stream = &MIDIStream{sequencer: sequencer}

	player, err := p.audioCtx.NewPlayer(p.stream)
	if err != nil {
		return fmt.Errorf("failed to create audio player: %w", err)
	}
	if p.muted {
		player.SetVolume(0)
	}
	player.Play()
	p.player = player
	p.playing = true
	return nil
}

// Stop halts playback.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopInternal()
}

func (p *Player) stopInternal() {
	if p.stream != nil {
		p.stream.Stop()
	}
	if p.player != nil {
		p.player.Close()
	}
	p.playing = false
}

// IsPlaying reports whether playback is active.
func (p *Player) IsPlaying() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.playing
}

// SetMuted mutes or unmutes the current and future playback.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if p.player != nil {
		if muted {
			p.player.SetVolume(0)
		} else {
			p.player.SetVolume(1)
		}
	}
}

// Duration returns the rendered duration of the current file.
func (p *Player) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.duration
}

// CurrentTick returns the MIDI tick position of the playhead.
func (p *Player) CurrentTick() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stream == nil || p.tickCalc == nil {
		return 0
	}
	return p.tickCalc.TickFromSamples(p.stream.SampleCount())
}
