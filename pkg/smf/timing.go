package smf

const defaultMicrosPerQuarter = 500000 // 120 BPM, the SMF default absent any SetTempoEvent

// TempoSegment is one constant-tempo span of the file: from AbsoluteTick
// (inclusive) until the next segment's AbsoluteTick (exclusive, or the end
// of the file for the last segment).
type TempoSegment struct {
	AbsoluteTick     uint64
	MicrosPerQuarter uint32
}

// TempoMap is the whole-file, tick-indexed view of every tempo change
// across every track, built by MidiFile.TempoMap (spec.md §5.5).
//
// Grounded on teacher's TickCalculator.precalculate/TickFromSamples
// (pkg/vm/audio/midi.go) for the "precompute segment boundaries, scan
// back from the last segment at query time" shape, adapted from a sample-indexed search to a
// tick-indexed one since this package has no notion of audio sample rate.
type TempoMap struct {
	ticksPerQuarter uint32
	segments        []TempoSegment // sorted by AbsoluteTick, always non-empty
}

// buildTempoMap scans every track for SetTempoEvents, in delta-time order
// within each track, and merges them into one tick-ordered segment list.
// A file with no SetTempoEvent at all gets a single default segment at
// 120 BPM (spec.md §4.7).
func buildTempoMap(f *MidiFile) *TempoMap {
	type change = struct {
		tick  uint64
		micro uint32
	}
	var changes []change
	for _, track := range f.Tracks {
		var tick uint64
		for _, ev := range track.Events {
			tick += uint64(ev.DeltaTime())
			if st, ok := ev.(*SetTempoEvent); ok {
				changes = append(changes, change{tick: tick, micro: st.MicrosPerQuarter})
			}
		}
	}

	segments := []TempoSegment{{AbsoluteTick: 0, MicrosPerQuarter: defaultMicrosPerQuarter}}
	if len(changes) > 0 {
		sortChangesByTick(changes)
		if changes[0].tick == 0 {
			segments[0].MicrosPerQuarter = changes[0].micro
			changes = changes[1:]
		}
		for _, c := range changes {
			segments = append(segments, TempoSegment{AbsoluteTick: c.tick, MicrosPerQuarter: c.micro})
		}
	}

	return &TempoMap{ticksPerQuarter: f.Header.Division.TicksPerQuarter(), segments: segments}
}

func sortChangesByTick(changes []struct {
	tick  uint64
	micro uint32
}) {
	for i := 1; i < len(changes); i++ {
		for j := i; j > 0 && changes[j].tick < changes[j-1].tick; j-- {
			changes[j], changes[j-1] = changes[j-1], changes[j]
		}
	}
}

// MicrosPerQuarterAt returns the active tempo, in microseconds per quarter
// note, at the given absolute tick.
func (m *TempoMap) MicrosPerQuarterAt(tick uint64) uint32 {
	segIdx := 0
	for i := len(m.segments) - 1; i >= 0; i-- {
		if tick >= m.segments[i].AbsoluteTick {
			segIdx = i
			break
		}
	}
	return m.segments[segIdx].MicrosPerQuarter
}

// BPM derives beats-per-minute from a canonical microseconds-per-quarter
// value. Grounded on original_source/src/metaevents.rs
// (microseconds_to_bpm); kept as a derived float accessor rather than a
// stored field, since microseconds-per-quarter is the canonical integer
// quantity and BPM is lossy in both directions (spec.md §9).
func BPM(microsPerQuarter uint32) float64 {
	return 60_000_000.0 / float64(microsPerQuarter)
}

// MicrosPerQuarterFromBPM is the inverse of BPM, rounding to the nearest
// microsecond. Grounded on original_source/src/metaevents.rs
// (bpm_to_microseconds).
func MicrosPerQuarterFromBPM(bpm float64) uint32 {
	return uint32(60_000_000.0/bpm + 0.5)
}

// Segments returns the tempo map's segments in ascending tick order.
func (m *TempoMap) Segments() []TempoSegment {
	out := make([]TempoSegment, len(m.segments))
	copy(out, m.segments)
	return out
}

// TicksPerQuarter returns the file's ticks-per-quarter-note constant, as
// derived from its TimeDivision (PPQN directly, or SMPTE fps*tpf/4).
func (m *TempoMap) TicksPerQuarter() uint32 {
	return m.ticksPerQuarter
}

// DurationOfTicks returns the wall-clock duration of a tick span starting
// at startTick, honoring every tempo change within the span.
//
// Grounded on original_source/src/metaevents.rs (calculate_time_duration),
// generalized from "one fixed tempo for the whole delta" to a tempo-map
// walk so a delta that straddles a tempo change is still timed correctly.
func (m *TempoMap) DurationOfTicks(startTick, numTicks uint64) (microseconds float64) {
	if numTicks == 0 || m.ticksPerQuarter == 0 {
		return 0
	}
	remaining := numTicks
	tick := startTick
	for remaining > 0 {
		segIdx := 0
		for i := len(m.segments) - 1; i >= 0; i-- {
			if tick >= m.segments[i].AbsoluteTick {
				segIdx = i
				break
			}
		}
		segEndTick := uint64(^uint64(0))
		if segIdx+1 < len(m.segments) {
			segEndTick = m.segments[segIdx+1].AbsoluteTick
		}
		ticksInSegment := remaining
		if segEndTick != ^uint64(0) && segEndTick-tick < ticksInSegment {
			ticksInSegment = segEndTick - tick
		}
		microsPerTick := float64(m.segments[segIdx].MicrosPerQuarter) / float64(m.ticksPerQuarter)
		microseconds += float64(ticksInSegment) * microsPerTick
		tick += ticksInSegment
		remaining -= ticksInSegment
	}
	return microseconds
}
