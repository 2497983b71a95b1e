package smf

import "testing"

// TestChannelVoiceStatusNibblesAreDistinct guards against the bug spec.md
// §9 calls out: Polyphonic Key Pressure and Pitch Bend must never share a
// status nibble.
func TestChannelVoiceStatusNibblesAreDistinct(t *testing.T) {
	nibbles := map[byte]string{
		statusNoteOff:         "NoteOff",
		statusNoteOn:          "NoteOn",
		statusPolyKeyPressure: "PolyKeyPressure",
		statusControlChange:   "ControlChange",
		statusProgramChange:   "ProgramChange",
		statusChannelPressure: "ChannelPressure",
		statusPitchBend:       "PitchBend",
	}
	if len(nibbles) != 7 {
		t.Fatalf("expected 7 distinct status nibbles, got %d", len(nibbles))
	}
	if statusPolyKeyPressure != 0xA0 {
		t.Errorf("PolyKeyPressure nibble = %#02x, want 0xA0", statusPolyKeyPressure)
	}
	if statusPitchBend != 0xE0 {
		t.Errorf("PitchBend nibble = %#02x, want 0xE0", statusPitchBend)
	}
}

func TestChannelVoiceDataLen(t *testing.T) {
	twoByteKinds := []byte{statusNoteOff, statusNoteOn, statusPolyKeyPressure, statusControlChange, statusPitchBend}
	for _, nibble := range twoByteKinds {
		if n, ok := channelVoiceDataLen(nibble); !ok || n != 2 {
			t.Errorf("channelVoiceDataLen(%#02x) = (%d, %v), want (2, true)", nibble, n, ok)
		}
	}
	oneByteKinds := []byte{statusProgramChange, statusChannelPressure}
	for _, nibble := range oneByteKinds {
		if n, ok := channelVoiceDataLen(nibble); !ok || n != 1 {
			t.Errorf("channelVoiceDataLen(%#02x) = (%d, %v), want (1, true)", nibble, n, ok)
		}
	}
	if _, ok := channelVoiceDataLen(0xF0); ok {
		t.Error("channelVoiceDataLen(0xF0) should report not-ok (not a channel-voice nibble)")
	}
}

func TestNoteOnEventBytes(t *testing.T) {
	e := &NoteOnEvent{channelVoiceCommon: channelVoiceCommon{channel: 5, deltaTime: 0}, Note: 60, Velocity: 100}
	got := e.Bytes()
	want := []byte{statusNoteOn | 5, 60, 100}
	if string(got) != string(want) {
		t.Errorf("Bytes() = % X, want % X", got, want)
	}
}

func TestProgramChangeEventSingleDataByte(t *testing.T) {
	e := &ProgramChangeEvent{channelVoiceCommon: channelVoiceCommon{channel: 2}, Program: 40}
	got := e.Bytes()
	want := []byte{statusProgramChange | 2, 40}
	if string(got) != string(want) {
		t.Errorf("Bytes() = % X, want % X", got, want)
	}
}
