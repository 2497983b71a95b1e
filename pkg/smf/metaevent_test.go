package smf

import "testing"

func TestMidiChannelPrefixAlwaysEmitsLengthOne(t *testing.T) {
	// spec.md §9: the original serializer's delta-time path wrote 0x20 as
	// the payload-length byte instead of 0x01. This package has only one
	// Bytes() path, so there is no divergent "with delta time" variant to
	// get wrong.
	e := &MidiChannelPrefixEvent{metaCommon: metaCommon{deltaTime: 10}, Channel: 3}
	got := e.Bytes()
	want := []byte{metaEventStatus, metaMidiChannelPrefix, 0x01, 3}
	if string(got) != string(want) {
		t.Errorf("Bytes() = % X, want % X", got, want)
	}
}

func TestNewTimeSignatureEventDefaultsMetronomeClicksTo24(t *testing.T) {
	// spec.md §9: the original crate defaulted metronome_clicks to 96 (a
	// copy of the 32nd-notes-per-quarter default into the wrong field);
	// the de facto standard, and this package's default, is 24.
	e := NewTimeSignatureEvent(0, 4, 4)
	if e.MetronomeClicks != 24 {
		t.Errorf("MetronomeClicks = %d, want 24", e.MetronomeClicks)
	}
	if e.ThirtySecondsPerQuarter != 8 {
		t.Errorf("ThirtySecondsPerQuarter = %d, want 8", e.ThirtySecondsPerQuarter)
	}
}

func TestTimeSignatureDenominatorEncodingRoundTrips(t *testing.T) {
	for _, denom := range []uint8{1, 2, 4, 8, 16, 32} {
		e := NewTimeSignatureEvent(0, 4, denom)
		bytes := e.Bytes()
		power := bytes[4]
		if decoded := uint8(1) << power; decoded != denom {
			t.Errorf("denominator %d encoded as power %d decodes to %d", denom, power, decoded)
		}
	}
}

func TestSequenceNumberUsesTypeByteZero(t *testing.T) {
	// spec.md §9-adjacent fix: the original crate's sequence_number.rs
	// declares its type byte as 0x20, colliding with MIDI Channel Prefix.
	// The de facto standard type byte is 0x00.
	e := &SequenceNumberEvent{metaCommon: metaCommon{}, Number: 7}
	got := e.Bytes()
	if got[1] != 0x00 {
		t.Errorf("sequence number type byte = %#02x, want 0x00", got[1])
	}
}

func TestTextEventRoundTrips(t *testing.T) {
	e := NewTrackNameEvent(0, "Piano")
	data := trackBytes(append(EncodeEvent(e), 0x00, 0xFF, 0x2F, 0x00)...)
	tr, err := ParseTrack(NewByteCursor(data), 0)
	if err != nil {
		t.Fatalf("ParseTrack: %v", err)
	}
	name, ok := tr.Events[0].(*TrackNameEvent)
	if !ok {
		t.Fatalf("Events[0] is %T, want *TrackNameEvent", tr.Events[0])
	}
	if name.Text != "Piano" {
		t.Errorf("Text = %q, want %q", name.Text, "Piano")
	}
}

func TestParseMetaEventRejectsInvalidUTF8(t *testing.T) {
	// 0xFF alone is not a valid UTF-8 sequence (it is never a valid byte
	// anywhere in UTF-8). spec.md §4.4: malformed UTF-8 in a text
	// meta-event's payload fails InvalidEncoding.
	textEvent := []byte{0x00, metaEventStatus, metaTrackName, 0x01, 0xFF}
	data := trackBytes(append(textEvent, 0x00, 0xFF, 0x2F, 0x00)...)
	_, err := ParseTrack(NewByteCursor(data), 0)
	if err == nil {
		t.Fatal("ParseTrack should reject a text meta-event with invalid UTF-8")
	}
	if kind, ok := KindOf(err); !ok || kind != ErrInvalidEncoding {
		t.Errorf("KindOf(err) = %v, %v, want ErrInvalidEncoding", kind, ok)
	}
}

func TestKeySignatureTableIsSelfConsistentAcrossAllValidInputs(t *testing.T) {
	seen := map[Key]map[Accidental]bool{}
	for n := int8(-7); n <= 7; n++ {
		key, acc, err := keySignatureTable(n)
		if err != nil {
			t.Fatalf("keySignatureTable(%d): %v", n, err)
		}
		if seen[key] == nil {
			seen[key] = map[Accidental]bool{}
		}
		if seen[key][acc] {
			t.Errorf("(%v, %v) produced by more than one accidentals count", key, acc)
		}
		seen[key][acc] = true
	}
}

func TestKeySignatureTableRejectsOutOfRange(t *testing.T) {
	for _, n := range []int8{-8, 8, 127, -128} {
		if _, _, err := keySignatureTable(n); err == nil {
			t.Errorf("keySignatureTable(%d) should fail", n)
		}
	}
}
