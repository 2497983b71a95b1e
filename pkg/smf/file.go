package smf

// MidiFile is the fully parsed representation of a Standard MIDI File:
// header plus every track, independent of any higher-level tempo/time
// bookkeeping (see TempoMap for that).
//
// Grounded on original_source/src/lib.rs's Midi struct, trimmed to drop
// the file-path field (file I/O lives in the fileio package, not here —
// spec.md §1 excludes it from the core) and the single running tempo/time
// signature fields (superseded by TempoMap, which tracks every change
// rather than only the most recent one).
type MidiFile struct {
	Header Header
	Tracks []*Track
}

// ParseFile parses a complete Standard MIDI File from data: the 14-byte
// MThd header followed by Header.TrackCount MTrk chunks.
//
// Grounded on original_source/src/lib.rs (Midi::new) and track.rs
// (Track::get_track_list) for the header-then-loop-of-tracks shape.
func ParseFile(data []byte) (*MidiFile, error) {
	c := NewByteCursor(data)
	header, err := ReadHeader(c)
	if err != nil {
		return nil, err
	}

	tracks := make([]*Track, 0, header.TrackCount)
	for c.Remaining() > 0 {
		track, err := ParseTrack(c, len(tracks))
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	if uint16(len(tracks)) != header.TrackCount {
		return nil, newErr(ErrInvalidNumOfTracks, "header declares %d tracks, parsed %d", header.TrackCount, len(tracks))
	}

	return &MidiFile{Header: *header, Tracks: tracks}, nil
}

// Serialize writes the file back out as MThd followed by each track's
// MTrk chunk, in order.
func (f *MidiFile) Serialize() []byte {
	out := f.Header.Serialize()
	for _, t := range f.Tracks {
		out = append(out, t.Serialize()...)
	}
	return out
}

// TempoMap builds the whole-file tempo-change view described in spec.md
// §4.7/§5.5, scanning every track (not just track 0) for SetTempoEvents in
// the order their delta-times place them, matching format-1 convention
// where tempo meta-events conventionally live on the first track but are
// honored wherever they appear.
func (f *MidiFile) TempoMap() *TempoMap {
	return buildTempoMap(f)
}
