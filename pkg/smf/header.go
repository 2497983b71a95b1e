package smf

// Format is the SMF file format: how the file's tracks relate to each
// other.
type Format uint16

const (
	// FormatSingleTrack is format 0: exactly one track.
	FormatSingleTrack Format = 0
	// FormatMultiTrack is format 1: one or more tracks played
	// simultaneously, tempo/time-signature conventionally on track 0.
	FormatMultiTrack Format = 1
	// FormatMultiSong is format 2: one or more independent, sequentially
	// unrelated tracks/patterns.
	FormatMultiSong Format = 2
)

// DivisionKind distinguishes the two ways a Header's time division field
// can be interpreted.
type DivisionKind int

const (
	// DivisionPPQN indicates ticks are a fixed pulses-per-quarter-note
	// count.
	DivisionPPQN DivisionKind = iota
	// DivisionSMPTE indicates ticks are frames-per-second × ticks-per-frame.
	DivisionSMPTE
)

// TimeDivisionValue is the tagged PPQN/SMPTE variant from spec.md §3.1.
type TimeDivisionValue struct {
	kind          DivisionKind
	ppqn          uint16 // valid when kind == DivisionPPQN, in [1, 0x7FFF]
	fps           uint8  // valid when kind == DivisionSMPTE, in {24,25,29,30}
	ticksPerFrame uint8  // valid when kind == DivisionSMPTE
}

// PPQN constructs a pulses-per-quarter-note TimeDivisionValue.
func PPQN(ppqn uint16) TimeDivisionValue {
	return TimeDivisionValue{kind: DivisionPPQN, ppqn: ppqn}
}

// SMPTE constructs a SMPTE TimeDivisionValue.
func SMPTE(fps, ticksPerFrame uint8) TimeDivisionValue {
	return TimeDivisionValue{kind: DivisionSMPTE, fps: fps, ticksPerFrame: ticksPerFrame}
}

// Kind reports which variant this value holds.
func (d TimeDivisionValue) Kind() DivisionKind { return d.kind }

// PPQNValue returns the pulses-per-quarter-note count. Only meaningful when
// Kind() == DivisionPPQN.
func (d TimeDivisionValue) PPQNValue() uint16 { return d.ppqn }

// FPS returns the SMPTE frame rate. Only meaningful when
// Kind() == DivisionSMPTE.
func (d TimeDivisionValue) FPS() uint8 { return d.fps }

// TicksPerFrame returns the SMPTE ticks-per-frame. Only meaningful when
// Kind() == DivisionSMPTE.
func (d TimeDivisionValue) TicksPerFrame() uint8 { return d.ticksPerFrame }

// TicksPerQuarter implements spec.md §4.7's
// ticks_per_quarter = match division { PPQN(p) => p; Smpte(fps,tpf) => (fps*tpf)/4 }.
func (d TimeDivisionValue) TicksPerQuarter() uint32 {
	if d.kind == DivisionPPQN {
		return uint32(d.ppqn)
	}
	return uint32(d.fps) * uint32(d.ticksPerFrame) / 4
}

// Header is the parsed MThd chunk (spec.md §3.1).
type Header struct {
	Format     Format
	TrackCount uint16
	Division   TimeDivisionValue
}

var mthdMagic = [4]byte{'M', 'T', 'h', 'd'}

// ReadHeader parses the MThd chunk at the cursor's current position,
// leaving the cursor positioned immediately after the 14-byte header.
//
// Grounded on original_source/src/metadata.rs (MetaData::new) for the field
// order and validation rules, and the SMPTE-byte negation in
// get_time_division.
func ReadHeader(c *ByteCursor) (*Header, error) {
	magic, err := c.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	if magic[0] != mthdMagic[0] || magic[1] != mthdMagic[1] || magic[2] != mthdMagic[2] || magic[3] != mthdMagic[3] {
		return nil, newErr(ErrInvalidHeader, "expected MThd, got %q", magic).withOffset(c.Pos() - 4)
	}

	length, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if length != 6 {
		return nil, newErr(ErrInvalidDataBounds, "MThd length must be 6, got %d", length).withOffset(c.Pos() - 4)
	}

	formatField, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if formatField > 2 {
		return nil, newErr(ErrInvalidFileFormat, "format must be 0, 1, or 2, got %d", formatField).withOffset(c.Pos() - 2)
	}
	format := Format(formatField)

	trackCount, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if trackCount < 1 {
		return nil, newErr(ErrInvalidNumOfTracks, "track count must be at least 1").withOffset(c.Pos() - 2)
	}
	if format == FormatSingleTrack && trackCount != 1 {
		return nil, newErr(ErrInvalidNumOfTracks, "format 0 requires exactly 1 track, got %d", trackCount).withOffset(c.Pos() - 2)
	}

	divBytes, err := c.ReadBytes(2)
	if err != nil {
		return nil, err
	}
	division, err := parseTimeDivision(divBytes[0], divBytes[1])
	if err != nil {
		return nil, err
	}

	return &Header{Format: format, TrackCount: trackCount, Division: division}, nil
}

func parseTimeDivision(b0, b1 byte) (TimeDivisionValue, error) {
	if b0&0x80 == 0 {
		return PPQN(uint16(b0)<<8 | uint16(b1)), nil
	}
	// High bit set: b0's low 7 bits are the two's-complement negation of
	// the frame rate.
	fps := uint8(-int8(b0))
	switch fps {
	case 24, 25, 29, 30:
	default:
		return TimeDivisionValue{}, newErr(ErrInvalidFps, "SMPTE fps must be 24, 25, 29, or 30, got %d", fps)
	}
	return SMPTE(fps, b1), nil
}

// Bytes serializes the 2-byte on-wire division field.
func (d TimeDivisionValue) Bytes() [2]byte {
	if d.kind == DivisionPPQN {
		return [2]byte{byte(d.ppqn >> 8), byte(d.ppqn)}
	}
	return [2]byte{byte(-int8(d.fps)), d.ticksPerFrame}
}

// Serialize produces the 14-byte MThd chunk.
func (h *Header) Serialize() []byte {
	out := make([]byte, 0, 14)
	out = append(out, mthdMagic[:]...)
	out = append(out, 0, 0, 0, 6)
	out = append(out, byte(h.Format>>8), byte(h.Format))
	out = append(out, byte(h.TrackCount>>8), byte(h.TrackCount))
	div := h.Division.Bytes()
	out = append(out, div[0], div[1])
	return out
}
