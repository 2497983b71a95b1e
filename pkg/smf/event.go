package smf

// EventKind enumerates the closed set of event variants this package can
// produce. Every concrete event type reports one of these from Kind().
//
// Grounded on original_source/src/events.rs's Event trait, which instead
// dispatches callers through as_any()/downcast_ref — the pattern spec.md §9
// asks to avoid. Here each concrete type serializes itself through
// Bytes() and reports its variant through Kind(); sealedEvent() keeps the
// set closed to this package.
type EventKind int

const (
	KindNoteOff EventKind = iota
	KindNoteOn
	KindPolyKeyPressure
	KindControlChange
	KindProgramChange
	KindChannelPressure
	KindPitchBend

	KindSequenceNumber
	KindText
	KindCopyright
	KindTrackName
	KindInstrumentName
	KindLyric
	KindMarker
	KindCuePoint
	KindMidiChannelPrefix
	KindMidiPort
	KindEndOfTrack
	KindSetTempo
	KindSmpteOffset
	KindTimeSignature
	KindKeySignature
	KindSequencerSpecific
)

// Event is the closed tagged-variant event type produced by the track
// tokenizer. Every concrete type in this package that implements Event is
// unexported-sealed via sealedEvent(), so no type outside this package can
// satisfy the interface and the variant set stays closed. Callers either
// read Kind() or type-switch on the concrete pointer types (as smfjson
// and TempoMap do) to reach kind-specific fields.
type Event interface {
	// Kind reports which concrete variant this value is.
	Kind() EventKind
	// DeltaTime is the number of ticks since the previous event in the
	// same track (or since the start of the track, for the first event).
	DeltaTime() uint32
	// Bytes serializes the event's status/data bytes only, never
	// including the delta-time VLQ prefix. Callers that need the
	// delta-time-prefixed wire form use EncodeEvent.
	Bytes() []byte

	sealedEvent()
}

// EncodeEvent serializes ev as it appears on the wire: delta-time VLQ
// followed by Bytes(). Running status is applied by the track tokenizer's
// Serialize pass, not here, since whether a status byte can be omitted
// depends on the previous event in the stream.
func EncodeEvent(ev Event) []byte {
	out := EncodeVLQ(ev.DeltaTime())
	return append(out, ev.Bytes()...)
}

// channelVoiceCommon holds the fields shared by all seven channel-voice
// event kinds.
type channelVoiceCommon struct {
	channel   uint8
	deltaTime uint32
}

func (c channelVoiceCommon) DeltaTime() uint32 { return c.deltaTime }
func (c channelVoiceCommon) sealedEvent()       {}

// Channel returns the MIDI channel (0-15) a channel-voice event targets.
func (c channelVoiceCommon) Channel() uint8 { return c.channel }

// metaCommon holds the fields shared by all sixteen meta-event kinds.
type metaCommon struct {
	deltaTime uint32
}

func (m metaCommon) DeltaTime() uint32 { return m.deltaTime }
func (m metaCommon) sealedEvent()       {}

const metaEventStatus = 0xFF
