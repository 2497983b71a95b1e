package smf

import "testing"

func TestParseFileMinimalFormat0(t *testing.T) {
	// spec.md §8 scenario 1, full file.
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x60,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04,
		0x00, 0xFF, 0x2F, 0x00,
	}
	f, err := ParseFile(data)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if f.Header.Format != FormatSingleTrack {
		t.Errorf("Format = %d, want 0", f.Header.Format)
	}
	if len(f.Tracks) != 1 {
		t.Fatalf("len(Tracks) = %d, want 1", len(f.Tracks))
	}
	if f.Header.Division.PPQNValue() != 96 {
		t.Errorf("PPQNValue() = %d, want 96", f.Header.Division.PPQNValue())
	}
	if len(f.Tracks[0].Events) != 1 || f.Tracks[0].Events[0].Kind() != KindEndOfTrack {
		t.Errorf("track 0 should contain only EndOfTrack, got %+v", f.Tracks[0].Events)
	}
}

func TestParseFileTrackCountMustMatchHeader(t *testing.T) {
	// spec.md §8 invariant 6, violated deliberately: header says 2 tracks
	// but only 1 MTrk chunk follows, so the track loop stops once the bytes
	// run out and the count check fails with ErrInvalidNumOfTracks.
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06,
		0x00, 0x01, 0x00, 0x02, 0x00, 0x60,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04,
		0x00, 0xFF, 0x2F, 0x00,
	}
	_, err := ParseFile(data)
	if err == nil {
		t.Fatal("expected an error when the declared track count exceeds what's present")
	}
}

func TestParseFileRejectsMoreTracksThanDeclared(t *testing.T) {
	// spec.md §8 invariant 6 / §4 ErrInvalidNumOfTracks: header declares 1
	// track but 2 MTrk chunks are actually present. Reading until the
	// cursor is exhausted (rather than stopping after header.TrackCount
	// iterations) must still notice the mismatch.
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06,
		0x00, 0x01, 0x00, 0x01, 0x00, 0x60,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04,
		0x00, 0xFF, 0x2F, 0x00,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04,
		0x00, 0xFF, 0x2F, 0x00,
	}
	_, err := ParseFile(data)
	if err == nil {
		t.Fatal("expected an error when more MTrk chunks are present than the header declares")
	}
	if kind, ok := KindOf(err); !ok || kind != ErrInvalidNumOfTracks {
		t.Errorf("KindOf(err) = %v, %v, want ErrInvalidNumOfTracks", kind, ok)
	}
}

func TestFileSerializeRoundTrip(t *testing.T) {
	original := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06,
		0x00, 0x01, 0x00, 0x01, 0x00, 0x60,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x07,
		0x00, 0x90, 0x3C, 0x40, 0x00, 0xFF, 0x2F, 0x00,
	}
	// fix declared MTrk length: 8 bytes of payload above, correct header
	original[18], original[19], original[20], original[21] = 0, 0, 0, 8

	f, err := ParseFile(original)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	serialized := f.Serialize()
	reparsed, err := ParseFile(serialized)
	if err != nil {
		t.Fatalf("ParseFile(Serialize()): %v", err)
	}
	if len(reparsed.Tracks) != len(f.Tracks) {
		t.Fatalf("track count mismatch after round-trip")
	}
	if len(reparsed.Tracks[0].Events) != len(f.Tracks[0].Events) {
		t.Fatalf("event count mismatch after round-trip")
	}
}

func TestFileTempoMapDefaultsTo120BPM(t *testing.T) {
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x60,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04,
		0x00, 0xFF, 0x2F, 0x00,
	}
	f, err := ParseFile(data)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	tm := f.TempoMap()
	if got := BPM(tm.MicrosPerQuarterAt(0)); got != 120 {
		t.Errorf("default BPM = %v, want 120", got)
	}
}
