package smf

import "testing"

func newFileWithTempoChanges(ppqn uint16, changes []TempoSegment) *MidiFile {
	var events []Event
	var lastTick uint64
	for _, c := range changes {
		delta := uint32(c.AbsoluteTick - lastTick)
		events = append(events, &SetTempoEvent{metaCommon: metaCommon{deltaTime: delta}, MicrosPerQuarter: c.MicrosPerQuarter})
		lastTick = c.AbsoluteTick
	}
	events = append(events, &EndOfTrackEvent{metaCommon: metaCommon{deltaTime: 0}})
	return &MidiFile{
		Header: Header{Format: FormatSingleTrack, TrackCount: 1, Division: PPQN(ppqn)},
		Tracks: []*Track{{Events: events}},
	}
}

func TestTempoMapDefaultSegmentWhenNoSetTempo(t *testing.T) {
	f := newFileWithTempoChanges(96, nil)
	tm := f.TempoMap()
	segs := tm.Segments()
	if len(segs) != 1 {
		t.Fatalf("len(Segments()) = %d, want 1", len(segs))
	}
	if segs[0].MicrosPerQuarter != defaultMicrosPerQuarter {
		t.Errorf("default segment tempo = %d, want %d", segs[0].MicrosPerQuarter, defaultMicrosPerQuarter)
	}
}

func TestTempoMapOverridesDefaultWhenTempoSetAtTickZero(t *testing.T) {
	f := newFileWithTempoChanges(96, []TempoSegment{{AbsoluteTick: 0, MicrosPerQuarter: 400000}})
	tm := f.TempoMap()
	if got := tm.MicrosPerQuarterAt(0); got != 400000 {
		t.Errorf("MicrosPerQuarterAt(0) = %d, want 400000", got)
	}
}

func TestTempoMapMultipleSegments(t *testing.T) {
	f := newFileWithTempoChanges(96, []TempoSegment{
		{AbsoluteTick: 0, MicrosPerQuarter: 500000},
		{AbsoluteTick: 192, MicrosPerQuarter: 250000},
	})
	tm := f.TempoMap()

	if got := tm.MicrosPerQuarterAt(0); got != 500000 {
		t.Errorf("MicrosPerQuarterAt(0) = %d, want 500000", got)
	}
	if got := tm.MicrosPerQuarterAt(191); got != 500000 {
		t.Errorf("MicrosPerQuarterAt(191) = %d, want 500000", got)
	}
	if got := tm.MicrosPerQuarterAt(192); got != 250000 {
		t.Errorf("MicrosPerQuarterAt(192) = %d, want 250000", got)
	}
	if got := tm.MicrosPerQuarterAt(10000); got != 250000 {
		t.Errorf("MicrosPerQuarterAt(10000) = %d, want 250000", got)
	}
}

func TestTempoMapDurationOfTicksStraddlingTempoChange(t *testing.T) {
	f := newFileWithTempoChanges(96, []TempoSegment{
		{AbsoluteTick: 0, MicrosPerQuarter: 500000},
		{AbsoluteTick: 96, MicrosPerQuarter: 1000000},
	})
	tm := f.TempoMap()

	// First 96 ticks at 500000us/96ticks-per-quarter = 1 quarter = 500000us.
	// Next 96 ticks at 1000000us/quarter = another 1000000us.
	got := tm.DurationOfTicks(0, 192)
	want := 1500000.0
	if got != want {
		t.Errorf("DurationOfTicks(0, 192) = %v, want %v", got, want)
	}
}

func TestBPMAndMicrosPerQuarterAreInverses(t *testing.T) {
	if got := BPM(500000); got != 120 {
		t.Errorf("BPM(500000) = %v, want 120", got)
	}
	if got := MicrosPerQuarterFromBPM(120); got != 500000 {
		t.Errorf("MicrosPerQuarterFromBPM(120) = %d, want 500000", got)
	}
}
