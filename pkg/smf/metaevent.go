package smf

import "unicode/utf8"

// Meta-event type bytes (the second byte of an 0xFF meta-event, after the
// 0xFF status). Grounded on original_source/src/metaevents/*.rs's
// per-file METAEVENT_BYTE_TYPE constants, with one correction:
// sequence_number.rs declares its type byte as 0x20, identical to (and
// colliding with) midi_channel_prefix.rs's 0x20. The de facto standard
// assigns Sequence Number the type byte 0x00; this module uses 0x00 so the
// two kinds remain distinguishable on the wire.
const (
	metaSequenceNumber    = 0x00
	metaText              = 0x01
	metaCopyright         = 0x02
	metaTrackName         = 0x03
	metaInstrumentName    = 0x04
	metaLyric             = 0x05
	metaMarker            = 0x06
	metaCuePoint          = 0x07
	metaMidiChannelPrefix = 0x20
	metaMidiPort          = 0x21
	metaEndOfTrack        = 0x2F
	metaSetTempo          = 0x51
	metaSmpteOffset       = 0x54
	metaTimeSignature     = 0x58
	metaKeySignature      = 0x59
	metaSequencerSpecific = 0x7F
)

// SequenceNumberEvent (type 0x00) assigns a pattern number, used in format-2
// files to distinguish otherwise-unrelated tracks.
type SequenceNumberEvent struct {
	metaCommon
	Number uint16
}

func (e *SequenceNumberEvent) Kind() EventKind { return KindSequenceNumber }
func (e *SequenceNumberEvent) Bytes() []byte {
	return []byte{metaEventStatus, metaSequenceNumber, 0x02, byte(e.Number >> 8), byte(e.Number)}
}

// textMetaEvent is the shared shape of the seven free-text meta-event
// kinds (0x01-0x07): a type byte, a VLQ length, and a UTF-8 payload.
type textMetaEvent struct {
	metaCommon
	typeByte byte
	Text     string
}

func (e *textMetaEvent) bytes() []byte {
	payload := []byte(e.Text)
	out := []byte{metaEventStatus, e.typeByte}
	out = append(out, EncodeVLQ(uint32(len(payload)))...)
	return append(out, payload...)
}

// TextEvent (type 0x01) is free-form descriptive text.
type TextEvent struct{ textMetaEvent }

func (e *TextEvent) Kind() EventKind { return KindText }
func (e *TextEvent) Bytes() []byte   { return e.bytes() }

// CopyrightEvent (type 0x02) should occur at most once, on track 0, at
// time 0 (spec.md leaves enforcement of that convention to callers).
type CopyrightEvent struct{ textMetaEvent }

func (e *CopyrightEvent) Kind() EventKind { return KindCopyright }
func (e *CopyrightEvent) Bytes() []byte   { return e.bytes() }

// TrackNameEvent (type 0x03) names the track (format 1/2) or, on track 0
// of a format-0 file, the sequence.
type TrackNameEvent struct{ textMetaEvent }

func (e *TrackNameEvent) Kind() EventKind { return KindTrackName }
func (e *TrackNameEvent) Bytes() []byte   { return e.bytes() }

// InstrumentNameEvent (type 0x04) names the instrument used in the track.
type InstrumentNameEvent struct{ textMetaEvent }

func (e *InstrumentNameEvent) Kind() EventKind { return KindInstrumentName }
func (e *InstrumentNameEvent) Bytes() []byte   { return e.bytes() }

// LyricEvent (type 0x05) is a lyric syllable timed to its note.
type LyricEvent struct{ textMetaEvent }

func (e *LyricEvent) Kind() EventKind { return KindLyric }
func (e *LyricEvent) Bytes() []byte   { return e.bytes() }

// MarkerEvent (type 0x06) marks a rehearsal point ("Verse 1", "Chorus").
type MarkerEvent struct{ textMetaEvent }

func (e *MarkerEvent) Kind() EventKind { return KindMarker }
func (e *MarkerEvent) Bytes() []byte   { return e.bytes() }

// CuePointEvent (type 0x07) describes something happening on stage/screen
// at this point in the score.
type CuePointEvent struct{ textMetaEvent }

func (e *CuePointEvent) Kind() EventKind { return KindCuePoint }
func (e *CuePointEvent) Bytes() []byte   { return e.bytes() }

func newTextEvent(delta uint32, typeByte byte, text string) textMetaEvent {
	return textMetaEvent{metaCommon: metaCommon{deltaTime: delta}, typeByte: typeByte, Text: text}
}

// NewTextEvent, NewCopyrightEvent, ... construct the seven free-text
// meta-event kinds. Grouped together since they differ only in type byte
// and Kind().
func NewTextEvent(delta uint32, text string) *TextEvent {
	return &TextEvent{newTextEvent(delta, metaText, text)}
}

func NewCopyrightEvent(delta uint32, text string) *CopyrightEvent {
	return &CopyrightEvent{newTextEvent(delta, metaCopyright, text)}
}

func NewTrackNameEvent(delta uint32, text string) *TrackNameEvent {
	return &TrackNameEvent{newTextEvent(delta, metaTrackName, text)}
}

func NewInstrumentNameEvent(delta uint32, text string) *InstrumentNameEvent {
	return &InstrumentNameEvent{newTextEvent(delta, metaInstrumentName, text)}
}

func NewLyricEvent(delta uint32, text string) *LyricEvent {
	return &LyricEvent{newTextEvent(delta, metaLyric, text)}
}

func NewMarkerEvent(delta uint32, text string) *MarkerEvent {
	return &MarkerEvent{newTextEvent(delta, metaMarker, text)}
}

func NewCuePointEvent(delta uint32, text string) *CuePointEvent {
	return &CuePointEvent{newTextEvent(delta, metaCuePoint, text)}
}

// MidiChannelPrefixEvent (type 0x20) associates the meta-events that follow
// it, up to the next MIDI event, with a specific channel.
//
// Grounded on original_source/src/metaevents/midi_channel_prefix.rs, whose
// to_bytes correctly writes a length of 0x01 but whose
// to_bytes_delta_time writes 0x20 (a copy-paste of the event's own type
// byte) instead — this module always writes the correct fixed length, 1.
type MidiChannelPrefixEvent struct {
	metaCommon
	Channel uint8
}

func (e *MidiChannelPrefixEvent) Kind() EventKind { return KindMidiChannelPrefix }
func (e *MidiChannelPrefixEvent) Bytes() []byte {
	return []byte{metaEventStatus, metaMidiChannelPrefix, 0x01, e.Channel}
}

// MidiPortEvent (type 0x21) assigns the track that follows to a specific
// MIDI output port/cable, for files driving more than 16 channels.
type MidiPortEvent struct {
	metaCommon
	Port uint8
}

func (e *MidiPortEvent) Kind() EventKind { return KindMidiPort }
func (e *MidiPortEvent) Bytes() []byte {
	return []byte{metaEventStatus, metaMidiPort, 0x01, e.Port}
}

// EndOfTrackEvent (type 0x2F) must be the final event of every track; the
// tokenizer enforces this rather than trusting a value on this struct.
type EndOfTrackEvent struct {
	metaCommon
}

func (e *EndOfTrackEvent) Kind() EventKind { return KindEndOfTrack }
func (e *EndOfTrackEvent) Bytes() []byte {
	return []byte{metaEventStatus, metaEndOfTrack, 0x00}
}

// SetTempoEvent (type 0x51) changes the active tempo to MicrosPerQuarter
// microseconds per quarter note. BPM is a derived view, never the
// canonical value (spec.md §9): see BPM.
type SetTempoEvent struct {
	metaCommon
	MicrosPerQuarter uint32 // 24-bit value, 1..0xFFFFFF
}

func (e *SetTempoEvent) Kind() EventKind { return KindSetTempo }
func (e *SetTempoEvent) Bytes() []byte {
	v := e.MicrosPerQuarter
	return []byte{metaEventStatus, metaSetTempo, 0x03, byte(v >> 16), byte(v >> 8), byte(v)}
}

// SmpteOffsetEvent (type 0x54) gives the SMPTE time at which the track
// should start; conventionally the track's only event before any delta
// time elapses.
type SmpteOffsetEvent struct {
	metaCommon
	Hour             uint8
	Minute           uint8
	Second           uint8
	FrameRate        uint8
	FractionalFrames uint8
}

func (e *SmpteOffsetEvent) Kind() EventKind { return KindSmpteOffset }
func (e *SmpteOffsetEvent) Bytes() []byte {
	return []byte{metaEventStatus, metaSmpteOffset, 0x05, e.Hour, e.Minute, e.Second, e.FrameRate, e.FractionalFrames}
}

// TimeSignatureEvent (type 0x58). Denominator is stored as the actual
// denominator value (4, 8, 16, ...), not the log2-encoded wire byte;
// Bytes() performs the log2 encoding.
//
// Grounded on original_source/src/metaevents/time_signature.rs, whose
// TimeSignatureEvent::new defaults MetronomeClicks to 96 — a plain copy of
// the default num_of_32nd_notes_per_quarter value into the wrong field.
// The de facto standard default (and the value QuickTime/most sequencers
// emit) is 24 MIDI clocks per metronome click; this module's constructor
// uses 24.
type TimeSignatureEvent struct {
	metaCommon
	Numerator              uint8
	Denominator             uint8
	MetronomeClicks        uint8
	ThirtySecondsPerQuarter uint8
}

// NewTimeSignatureEvent builds a TimeSignatureEvent with the conventional
// defaults (24 MIDI clocks per metronome click, 8 32nd-notes per quarter).
func NewTimeSignatureEvent(delta uint32, numerator, denominator uint8) *TimeSignatureEvent {
	return &TimeSignatureEvent{
		metaCommon:              metaCommon{deltaTime: delta},
		Numerator:               numerator,
		Denominator:             denominator,
		MetronomeClicks:         24,
		ThirtySecondsPerQuarter: 8,
	}
}

func (e *TimeSignatureEvent) Kind() EventKind { return KindTimeSignature }
func (e *TimeSignatureEvent) Bytes() []byte {
	return []byte{
		metaEventStatus, metaTimeSignature, 0x04,
		e.Numerator, denominatorToPower(e.Denominator), e.MetronomeClicks, e.ThirtySecondsPerQuarter,
	}
}

// denominatorToPower converts an actual time-signature denominator (a
// power of two, e.g. 4 for quarter-note) to the wire's log2-encoded byte.
func denominatorToPower(denominator uint8) byte {
	var power byte
	for d := denominator; d > 1; d >>= 1 {
		power++
	}
	return power
}

// Key names the seven natural key letters of a key signature, independent
// of its accidental.
type Key int

const (
	KeyC Key = iota
	KeyD
	KeyE
	KeyF
	KeyG
	KeyA
	KeyB
)

// Accidental is the sharp/flat/natural qualifier paired with a Key.
type Accidental int

const (
	AccidentalNatural Accidental = iota
	AccidentalSharp
	AccidentalFlat
)

// KeyMode distinguishes major from minor in a key signature.
type KeyMode uint8

const (
	ModeMajor KeyMode = 0
	ModeMinor KeyMode = 1
)

// KeySignatureEvent (type 0x59) gives the number of sharps/flats (-7..7,
// negative for flats) and major/minor mode.
//
// Grounded on original_source/src/metaevents/key_signature.rs
// (get_key_signature_from_num_of_accidentals /
// get_num_of_accidentals_from_key_signature) for the circle-of-fifths
// round-trip table.
type KeySignatureEvent struct {
	metaCommon
	Accidentals int8 // -7..7
	Mode        KeyMode
}

func (e *KeySignatureEvent) Kind() EventKind { return KindKeySignature }
func (e *KeySignatureEvent) Bytes() []byte {
	return []byte{metaEventStatus, metaKeySignature, 0x02, byte(e.Accidentals), byte(e.Mode)}
}

// KeyAndAccidental reports the natural key letter and its accidental
// implied by Accidentals, following the same circle-of-fifths table as
// the original Rust crate's get_key_signature_from_num_of_accidentals.
func (e *KeySignatureEvent) KeyAndAccidental() (Key, Accidental, error) {
	return keySignatureTable(e.Accidentals)
}

func keySignatureTable(n int8) (Key, Accidental, error) {
	switch n {
	case 0:
		return KeyC, AccidentalNatural, nil
	case 1:
		return KeyG, AccidentalNatural, nil
	case 2:
		return KeyD, AccidentalNatural, nil
	case 3:
		return KeyA, AccidentalNatural, nil
	case 4:
		return KeyE, AccidentalNatural, nil
	case 5:
		return KeyB, AccidentalNatural, nil
	case 6:
		return KeyF, AccidentalSharp, nil
	case 7:
		return KeyC, AccidentalSharp, nil
	case -1:
		return KeyF, AccidentalNatural, nil
	case -2:
		return KeyB, AccidentalFlat, nil
	case -3:
		return KeyE, AccidentalFlat, nil
	case -4:
		return KeyA, AccidentalFlat, nil
	case -5:
		return KeyD, AccidentalFlat, nil
	case -6:
		return KeyG, AccidentalFlat, nil
	case -7:
		return KeyC, AccidentalFlat, nil
	default:
		return 0, 0, newErr(ErrInvalidKeySignature, "%d is an invalid key signature; must be between -7 and 7", n)
	}
}

// SequencerSpecificEvent (type 0x7F) carries vendor-specific data, usually
// prefixed with a manufacturer ID.
type SequencerSpecificEvent struct {
	metaCommon
	Data []byte
}

func (e *SequencerSpecificEvent) Kind() EventKind { return KindSequencerSpecific }
func (e *SequencerSpecificEvent) Bytes() []byte {
	out := []byte{metaEventStatus, metaSequencerSpecific}
	out = append(out, EncodeVLQ(uint32(len(e.Data)))...)
	return append(out, e.Data...)
}

// validateUTF8 rejects text-event payloads that are not valid UTF-8
// (spec.md §4.4). A payload that fails this check makes the whole parse
// fail; its raw bytes are not kept anywhere.
func validateUTF8(b []byte) error {
	if !utf8.Valid(b) {
		return newErr(ErrInvalidEncoding, "text meta-event payload is not valid UTF-8")
	}
	return nil
}
