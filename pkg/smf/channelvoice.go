package smf

// Channel-voice status nibbles (high 4 bits of the status byte; low 4 bits
// carry the channel). Grounded on original_source/src/messages/*.rs's
// per-file MIDI_EVENT_TYPE constants, with one correction: the Rust
// original redeclares the identifier MIDI_EVENT_TYPE = 0xA0 independently
// in both polyphonic_key_pressure.rs and pitch_bend_change.rs, so the two
// modules never actually collide at compile time, but the duplicated name
// invites exactly the copy-paste bug it looks like: pitch bend's status
// nibble must be 0xE0, not 0xA0. This module gives every kind its own
// distinct constant to make that class of mistake structurally
// impossible.
const (
	statusNoteOff         = 0x80
	statusNoteOn          = 0x90
	statusPolyKeyPressure = 0xA0
	statusControlChange   = 0xB0
	statusProgramChange   = 0xC0
	statusChannelPressure = 0xD0
	statusPitchBend       = 0xE0
)

const channelMask = 0x0F

// NoteOffEvent is a Note Off channel-voice event (status 0x8n).
type NoteOffEvent struct {
	channelVoiceCommon
	Note     uint8
	Velocity uint8
}

func (e *NoteOffEvent) Kind() EventKind { return KindNoteOff }
func (e *NoteOffEvent) Bytes() []byte {
	return []byte{statusNoteOff | e.channel, e.Note, e.Velocity}
}

// NoteOnEvent is a Note On channel-voice event (status 0x9n). A Note On
// with velocity 0 is conventionally a Note Off in disguise; this package
// preserves that distinction rather than normalizing it, leaving the
// choice to callers (spec.md §4.1).
type NoteOnEvent struct {
	channelVoiceCommon
	Note     uint8
	Velocity uint8
}

func (e *NoteOnEvent) Kind() EventKind { return KindNoteOn }
func (e *NoteOnEvent) Bytes() []byte {
	return []byte{statusNoteOn | e.channel, e.Note, e.Velocity}
}

// PolyKeyPressureEvent is a Polyphonic Key Pressure (aftertouch) event
// (status 0xAn).
type PolyKeyPressureEvent struct {
	channelVoiceCommon
	Note     uint8
	Pressure uint8
}

func (e *PolyKeyPressureEvent) Kind() EventKind { return KindPolyKeyPressure }
func (e *PolyKeyPressureEvent) Bytes() []byte {
	return []byte{statusPolyKeyPressure | e.channel, e.Note, e.Pressure}
}

// ControlChangeEvent is a Control Change event (status 0xBn).
type ControlChangeEvent struct {
	channelVoiceCommon
	Controller uint8
	Value      uint8
}

func (e *ControlChangeEvent) Kind() EventKind { return KindControlChange }
func (e *ControlChangeEvent) Bytes() []byte {
	return []byte{statusControlChange | e.channel, e.Controller, e.Value}
}

// ProgramChangeEvent is a Program Change event (status 0xCn). Unlike the
// other channel-voice kinds it carries a single data byte.
type ProgramChangeEvent struct {
	channelVoiceCommon
	Program uint8
}

func (e *ProgramChangeEvent) Kind() EventKind { return KindProgramChange }
func (e *ProgramChangeEvent) Bytes() []byte {
	return []byte{statusProgramChange | e.channel, e.Program}
}

// ChannelPressureEvent is a Channel (Aftertouch) Pressure event (status
// 0xDn), carrying a single data byte like ProgramChangeEvent.
type ChannelPressureEvent struct {
	channelVoiceCommon
	Pressure uint8
}

func (e *ChannelPressureEvent) Kind() EventKind { return KindChannelPressure }
func (e *ChannelPressureEvent) Bytes() []byte {
	return []byte{statusChannelPressure | e.channel, e.Pressure}
}

// PitchBendEvent is a Pitch Bend Change event (status 0xEn). Value is the
// full 14-bit bend amount (0..16383, center 8192), reassembled from the
// wire's two 7-bit data bytes by the tokenizer.
type PitchBendEvent struct {
	channelVoiceCommon
	Value uint16
}

func (e *PitchBendEvent) Kind() EventKind { return KindPitchBend }
func (e *PitchBendEvent) Bytes() []byte {
	lsb := byte(e.Value & 0x7F)
	msb := byte((e.Value >> 7) & 0x7F)
	return []byte{statusPitchBend | e.channel, lsb, msb}
}

// channelVoiceDataLen returns the number of data bytes (excluding the
// status byte) that follow a channel-voice status nibble, used by the
// tokenizer to know how many bytes to consume under running status.
func channelVoiceDataLen(statusNibble byte) (int, bool) {
	switch statusNibble {
	case statusProgramChange, statusChannelPressure:
		return 1, true
	case statusNoteOff, statusNoteOn, statusPolyKeyPressure, statusControlChange, statusPitchBend:
		return 2, true
	default:
		return 0, false
	}
}
