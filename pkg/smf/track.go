package smf

// Track is one parsed MTrk chunk: an ordered sequence of events, each
// carrying its own delta-time, plus the chunk's declared byte length as
// read from the wire (spec.md §3.2). Serialize always recomputes the
// length from Events rather than trusting DeclaredSize, so a Track built
// directly (not via ParseTrack) round-trips fine with DeclaredSize left
// at zero.
type Track struct {
	Events       []Event
	DeclaredSize uint32
}

var mtrkMagic = [4]byte{'M', 'T', 'r', 'k'}

// ParseTrack reads one MTrk chunk from the cursor, leaving the cursor
// positioned immediately after the chunk (magic + length + declared_size
// bytes of event data), regardless of whether every declared byte was
// consumed by events.
//
// Grounded on original_source/src/track.rs (Track::new) for the overall
// chunk-then-event-loop shape. Running status is handled by a strict
// one-byte rule: a byte with MSB=0 continues the held running status
// unconditionally. track.rs instead only continues running status when
// *both* data[position] and data[position+1] have MSB=0, a two-byte
// lookahead spec.md §9 identifies as non-standard and asks to drop — a
// data byte with MSB=0 immediately followed by a status byte (MSB=1) is
// legal and must still resolve via running status.
func ParseTrack(c *ByteCursor, trackIndex int) (*Track, error) {
	magic, err := c.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	if magic[0] != mtrkMagic[0] || magic[1] != mtrkMagic[1] || magic[2] != mtrkMagic[2] || magic[3] != mtrkMagic[3] {
		return nil, newErr(ErrInvalidHeader, "expected MTrk, got %q", magic).withOffset(c.Pos() - 4).withTrack(trackIndex)
	}
	declaredSize, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	sub, err := c.Sub(int64(declaredSize))
	if err != nil {
		return nil, err
	}

	var events []Event
	var runningStatus byte
	sawEndOfTrack := false

	for sub.Remaining() > 0 {
		if sawEndOfTrack {
			return nil, newErr(ErrInvalidTrackLength, "data remains after end-of-track").
				withOffset(sub.Pos()).withTrack(trackIndex).withEvent(len(events))
		}

		delta, err := DecodeVLQFromCursor(sub)
		if err != nil {
			return nil, err.(*ParseError).withTrack(trackIndex).withEvent(len(events))
		}

		statusByte, err := sub.PeekU8()
		if err != nil {
			return nil, err.(*ParseError).withTrack(trackIndex).withEvent(len(events))
		}

		var ev Event
		if statusByte&0x80 != 0 {
			_ = sub.MoveBy(1) // just peeked, cannot fail
			ev, err = parseEventBody(sub, statusByte, delta, trackIndex, len(events))
			if err != nil {
				return nil, err
			}
			if nibble := statusByte & 0xF0; statusByte != metaEventStatus {
				if _, ok := channelVoiceDataLen(nibble); ok {
					runningStatus = statusByte
				}
			}
		} else {
			if runningStatus == 0 {
				return nil, newErr(ErrInvalidEventBytes, "data byte %#02x with no running status held", statusByte).
					withOffset(sub.Pos()).withTrack(trackIndex).withEvent(len(events))
			}
			ev, err = parseChannelVoiceRunning(sub, runningStatus, delta)
			if err != nil {
				return nil, err.(*ParseError).withTrack(trackIndex).withEvent(len(events))
			}
		}

		if _, ok := ev.(*EndOfTrackEvent); ok {
			sawEndOfTrack = true
		}
		events = append(events, ev)
	}

	if !sawEndOfTrack {
		return nil, newErr(ErrInvalidTrackLength, "track has no end-of-track event").withTrack(trackIndex)
	}

	return &Track{Events: events, DeclaredSize: declaredSize}, nil
}

// parseEventBody parses one event whose status byte has already been
// consumed from sub.
func parseEventBody(sub *ByteCursor, status byte, delta uint32, trackIndex, eventIndex int) (Event, error) {
	if status == metaEventStatus {
		ev, err := parseMetaEvent(sub, delta)
		if err != nil {
			return nil, err.(*ParseError).withTrack(trackIndex).withEvent(eventIndex)
		}
		return ev, nil
	}
	nibble := status & 0xF0
	channel := status & channelMask
	ev, err := parseChannelVoiceBody(sub, nibble, channel, delta)
	if err != nil {
		return nil, err.withTrack(trackIndex).withEvent(eventIndex)
	}
	return ev, nil
}

func parseChannelVoiceBody(sub *ByteCursor, nibble, channel byte, delta uint32) (Event, *ParseError) {
	n, ok := channelVoiceDataLen(nibble)
	if !ok {
		return nil, newErr(ErrInvalidEventBytes, "status nibble %#02x is not a channel-voice event", nibble)
	}
	data, err := sub.ReadBytes(int64(n))
	if err != nil {
		return nil, err.(*ParseError)
	}
	return buildChannelVoiceEvent(nibble, channel, delta, data), nil
}

func parseChannelVoiceRunning(sub *ByteCursor, runningStatus byte, delta uint32) (Event, error) {
	nibble := runningStatus & 0xF0
	channel := runningStatus & channelMask
	n, ok := channelVoiceDataLen(nibble)
	if !ok {
		return nil, newErr(ErrInvalidEventBytes, "running status %#02x is not a channel-voice event", runningStatus)
	}
	data, err := sub.ReadBytes(int64(n))
	if err != nil {
		return nil, err
	}
	return buildChannelVoiceEvent(nibble, channel, delta, data), nil
}

func buildChannelVoiceEvent(nibble, channel byte, delta uint32, data []byte) Event {
	common := channelVoiceCommon{channel: channel, deltaTime: delta}
	switch nibble {
	case statusNoteOff:
		return &NoteOffEvent{channelVoiceCommon: common, Note: data[0], Velocity: data[1]}
	case statusNoteOn:
		return &NoteOnEvent{channelVoiceCommon: common, Note: data[0], Velocity: data[1]}
	case statusPolyKeyPressure:
		return &PolyKeyPressureEvent{channelVoiceCommon: common, Note: data[0], Pressure: data[1]}
	case statusControlChange:
		return &ControlChangeEvent{channelVoiceCommon: common, Controller: data[0], Value: data[1]}
	case statusProgramChange:
		return &ProgramChangeEvent{channelVoiceCommon: common, Program: data[0]}
	case statusChannelPressure:
		return &ChannelPressureEvent{channelVoiceCommon: common, Pressure: data[0]}
	case statusPitchBend:
		value := uint16(data[0]) | uint16(data[1])<<7
		return &PitchBendEvent{channelVoiceCommon: common, Value: value}
	}
	panic("unreachable: nibble validated by channelVoiceDataLen")
}

// parseMetaEvent parses the body of a meta-event (type byte, VLQ length,
// payload) with the 0xFF status already consumed.
func parseMetaEvent(sub *ByteCursor, delta uint32) (Event, error) {
	typeByte, err := sub.ReadU8()
	if err != nil {
		return nil, err
	}
	length, err := DecodeVLQFromCursor(sub)
	if err != nil {
		return nil, err
	}
	payload, err := sub.ReadBytes(int64(length))
	if err != nil {
		return nil, err
	}
	common := metaCommon{deltaTime: delta}

	switch typeByte {
	case metaSequenceNumber:
		if len(payload) != 2 {
			return nil, newErr(ErrInvalidEventBytes, "sequence number payload must be 2 bytes, got %d", len(payload))
		}
		return &SequenceNumberEvent{metaCommon: common, Number: uint16(payload[0])<<8 | uint16(payload[1])}, nil
	case metaText:
		if err := validateUTF8(payload); err != nil {
			return nil, err
		}
		return NewTextEvent(delta, string(payload)), nil
	case metaCopyright:
		if err := validateUTF8(payload); err != nil {
			return nil, err
		}
		return NewCopyrightEvent(delta, string(payload)), nil
	case metaTrackName:
		if err := validateUTF8(payload); err != nil {
			return nil, err
		}
		return NewTrackNameEvent(delta, string(payload)), nil
	case metaInstrumentName:
		if err := validateUTF8(payload); err != nil {
			return nil, err
		}
		return NewInstrumentNameEvent(delta, string(payload)), nil
	case metaLyric:
		if err := validateUTF8(payload); err != nil {
			return nil, err
		}
		return NewLyricEvent(delta, string(payload)), nil
	case metaMarker:
		if err := validateUTF8(payload); err != nil {
			return nil, err
		}
		return NewMarkerEvent(delta, string(payload)), nil
	case metaCuePoint:
		if err := validateUTF8(payload); err != nil {
			return nil, err
		}
		return NewCuePointEvent(delta, string(payload)), nil
	case metaMidiChannelPrefix:
		if len(payload) != 1 {
			return nil, newErr(ErrInvalidEventBytes, "MIDI channel prefix payload must be 1 byte, got %d", len(payload))
		}
		return &MidiChannelPrefixEvent{metaCommon: common, Channel: payload[0]}, nil
	case metaMidiPort:
		if len(payload) != 1 {
			return nil, newErr(ErrInvalidEventBytes, "MIDI port payload must be 1 byte, got %d", len(payload))
		}
		return &MidiPortEvent{metaCommon: common, Port: payload[0]}, nil
	case metaEndOfTrack:
		if len(payload) != 0 {
			return nil, newErr(ErrInvalidEventBytes, "end-of-track payload must be empty, got %d bytes", len(payload))
		}
		return &EndOfTrackEvent{metaCommon: common}, nil
	case metaSetTempo:
		if len(payload) != 3 {
			return nil, newErr(ErrInvalidEventBytes, "set tempo payload must be 3 bytes, got %d", len(payload))
		}
		v := uint32(payload[0])<<16 | uint32(payload[1])<<8 | uint32(payload[2])
		return &SetTempoEvent{metaCommon: common, MicrosPerQuarter: v}, nil
	case metaSmpteOffset:
		if len(payload) != 5 {
			return nil, newErr(ErrInvalidEventBytes, "SMPTE offset payload must be 5 bytes, got %d", len(payload))
		}
		return &SmpteOffsetEvent{
			metaCommon: common,
			Hour:       payload[0], Minute: payload[1], Second: payload[2],
			FrameRate: payload[3], FractionalFrames: payload[4],
		}, nil
	case metaTimeSignature:
		if len(payload) != 4 {
			return nil, newErr(ErrInvalidEventBytes, "time signature payload must be 4 bytes, got %d", len(payload))
		}
		return &TimeSignatureEvent{
			metaCommon:              common,
			Numerator:               payload[0],
			Denominator:             1 << payload[1],
			MetronomeClicks:         payload[2],
			ThirtySecondsPerQuarter: payload[3],
		}, nil
	case metaKeySignature:
		if len(payload) != 2 {
			return nil, newErr(ErrInvalidEventBytes, "key signature payload must be 2 bytes, got %d", len(payload))
		}
		accidentals := int8(payload[0])
		if _, _, err := keySignatureTable(accidentals); err != nil {
			return nil, err
		}
		var mode KeyMode
		switch payload[1] {
		case 0:
			mode = ModeMajor
		case 1:
			mode = ModeMinor
		default:
			return nil, newErr(ErrInvalidKeySignature, "key signature mode must be 0 (major) or 1 (minor), got %d", payload[1])
		}
		return &KeySignatureEvent{metaCommon: common, Accidentals: accidentals, Mode: mode}, nil
	case metaSequencerSpecific:
		return &SequencerSpecificEvent{metaCommon: common, Data: payload}, nil
	default:
		return nil, newErr(ErrNotImplemented, "unrecognized meta-event type %#02x", typeByte)
	}
}

// Serialize writes the track back out as a complete MTrk chunk, applying
// running status wherever two consecutive channel-voice events share the
// same status byte.
func (t *Track) Serialize() []byte {
	var body []byte
	var runningStatus byte
	for _, ev := range t.Events {
		deltaBytes := EncodeVLQ(ev.DeltaTime())
		evBytes := ev.Bytes()
		if isChannelVoiceKind(ev.Kind()) && len(evBytes) > 0 && evBytes[0] == runningStatus {
			body = append(body, deltaBytes...)
			body = append(body, evBytes[1:]...)
			continue
		}
		body = append(body, deltaBytes...)
		body = append(body, evBytes...)
		if isChannelVoiceKind(ev.Kind()) {
			runningStatus = evBytes[0]
		} else {
			runningStatus = 0
		}
	}
	out := make([]byte, 0, 8+len(body))
	out = append(out, mtrkMagic[:]...)
	out = append(out, byte(len(body)>>24), byte(len(body)>>16), byte(len(body)>>8), byte(len(body)))
	return append(out, body...)
}

func isChannelVoiceKind(k EventKind) bool {
	return k >= KindNoteOff && k <= KindPitchBend
}
