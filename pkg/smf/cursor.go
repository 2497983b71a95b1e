package smf

import "encoding/binary"

// ByteCursor is a read-only, position-tracked view over an immutable byte
// slice. ReadBytes (and everything built on it: ReadU8/U16/U32 and Sub)
// returns a fresh copy of the bytes it reads.
//
// Grounded on original_source/src/bytereader.rs (ByteReader): the same
// operation set (read 1/2/4 big-endian integers, read N bytes, peek, seek,
// relative move, remaining count) expressed with Go's encoding/binary
// instead of hand-rolled byte math.
type ByteCursor struct {
	data []byte
	pos  int64
	len  int64
}

// NewByteCursor wraps data for sequential, bounds-checked reads starting at
// position 0.
func NewByteCursor(data []byte) *ByteCursor {
	return &ByteCursor{data: data, pos: 0, len: int64(len(data))}
}

// Pos returns the current read position.
func (c *ByteCursor) Pos() int64 { return c.pos }

// Len returns the total length of the wrapped data.
func (c *ByteCursor) Len() int64 { return c.len }

// Remaining returns the number of unread bytes.
func (c *ByteCursor) Remaining() int64 { return c.len - c.pos }

// ReadU8 reads one byte and advances the position by 1.
func (c *ByteCursor) ReadU8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a big-endian uint16 and advances the position by 2.
func (c *ByteCursor) ReadU16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadU32 reads a big-endian uint32 and advances the position by 4.
func (c *ByteCursor) ReadU32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadBytes returns the next n bytes as a fresh slice and advances the
// position by n. Fails with ErrEndOfData if fewer than n bytes remain.
func (c *ByteCursor) ReadBytes(n int64) ([]byte, error) {
	if n < 0 || c.pos+n > c.len {
		return nil, newErr(ErrEndOfData, "need %d bytes at offset %d, only %d remain", n, c.pos, c.Remaining()).withOffset(c.pos)
	}
	out := make([]byte, n)
	copy(out, c.data[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// PeekU8 returns the next byte without advancing the position. Fails with
// ErrEndOfData at end of data.
func (c *ByteCursor) PeekU8() (uint8, error) {
	if c.pos >= c.len {
		return 0, newErr(ErrEndOfData, "peek past end of data at offset %d", c.pos).withOffset(c.pos)
	}
	return c.data[c.pos], nil
}

// Seek moves the position to an absolute offset. Fails with
// ErrInvalidDataBounds if pos is outside [0, Len()].
func (c *ByteCursor) Seek(pos int64) error {
	if pos < 0 || pos > c.len {
		return newErr(ErrInvalidDataBounds, "seek to %d out of bounds [0, %d]", pos, c.len).withOffset(c.pos)
	}
	c.pos = pos
	return nil
}

// MoveBy moves the position by a signed relative amount. Fails with
// ErrInvalidDataBounds if the resulting position is outside [0, Len()].
func (c *ByteCursor) MoveBy(delta int64) error {
	newPos := c.pos + delta
	if newPos < 0 || newPos > c.len {
		return newErr(ErrInvalidDataBounds, "move by %d from %d out of bounds [0, %d]", delta, c.pos, c.len).withOffset(c.pos)
	}
	c.pos = newPos
	return nil
}

// Sub returns a new, independent ByteCursor over a copy of exactly the
// next n bytes, and advances this cursor past those n bytes. Used by the track tokenizer to confine a
// track's event stream to its declared_size.
func (c *ByteCursor) Sub(n int64) (*ByteCursor, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return NewByteCursor(b), nil
}
