package smf

import (
	"errors"
	"fmt"
)

// ErrorKind identifies one of the closed set of ways a parse or serialize
// call can fail. It is comparable, so callers can switch on ParseError.Kind
// (or KindOf(err)) rather than string-match error messages.
type ErrorKind string

const (
	// ErrEndOfData is reported when a read runs past the end of the buffer.
	ErrEndOfData ErrorKind = "END_OF_DATA"
	// ErrInvalidDataBounds is reported when a seek or relative move lands
	// outside [0, length].
	ErrInvalidDataBounds ErrorKind = "INVALID_DATA_BOUNDS"
	// ErrInvalidHeader is reported when a chunk magic ("MThd"/"MTrk") does
	// not match.
	ErrInvalidHeader ErrorKind = "INVALID_HEADER"
	// ErrInvalidFileFormat is reported when the header format field is not
	// in {0, 1, 2}.
	ErrInvalidFileFormat ErrorKind = "INVALID_FILE_FORMAT"
	// ErrInvalidNumOfTracks is reported for a zero track count, a format-0
	// file with track_count != 1, or a parsed track count that disagrees
	// with the declared header count.
	ErrInvalidNumOfTracks ErrorKind = "INVALID_NUM_OF_TRACKS"
	// ErrInvalidFps is reported when an SMPTE division's frame rate isn't
	// one of 24, 25, 29, 30.
	ErrInvalidFps ErrorKind = "INVALID_FPS"
	// ErrInvalidVlq is reported when a variable-length quantity would need
	// a fifth continuation byte.
	ErrInvalidVlq ErrorKind = "INVALID_VLQ"
	// ErrInvalidEncoding is reported when a text meta-event's payload is
	// not valid UTF-8.
	ErrInvalidEncoding ErrorKind = "INVALID_ENCODING"
	// ErrInvalidEventBytes is reported for framing/byte-count violations at
	// the event level, including a data byte appearing with no running
	// status held.
	ErrInvalidEventBytes ErrorKind = "INVALID_EVENT_BYTES"
	// ErrInvalidKeySignature is reported when a key-signature byte pair is
	// out of range.
	ErrInvalidKeySignature ErrorKind = "INVALID_KEY_SIGNATURE"
	// ErrNotImplemented is reported for an unrecognized meta-event type
	// byte.
	ErrNotImplemented ErrorKind = "NOT_IMPLEMENTED"
	// ErrInvalidTrackLength is reported when bytes remain in a track's
	// sub-cursor after End-Of-Track, or the sub-cursor is exhausted before
	// one is seen.
	ErrInvalidTrackLength ErrorKind = "INVALID_TRACK_LENGTH"
	// ErrInvalidState names an in-memory model that violates a wire
	// invariant. No function in this package returns it: Serialize does
	// not validate the model and has no error result.
	ErrInvalidState ErrorKind = "INVALID_STATE"
)

// ParseError is the single error type returned by every parse and
// serialize operation in this package. Offset, TrackIndex and EventIndex
// are filled in where the failing operation has that context; TrackIndex
// and EventIndex are -1 when not applicable, and Offset stays 0 when no
// offset was recorded.
type ParseError struct {
	Kind       ErrorKind
	Message    string
	TrackIndex int // -1 if not within a track
	EventIndex int // -1 if not localized to an event
	Offset     int64
}

func (e *ParseError) Error() string {
	switch {
	case e.TrackIndex >= 0 && e.EventIndex >= 0:
		return fmt.Sprintf("[%s] %s (track %d, event %d, offset %d)", e.Kind, e.Message, e.TrackIndex, e.EventIndex, e.Offset)
	case e.TrackIndex >= 0:
		return fmt.Sprintf("[%s] %s (track %d, offset %d)", e.Kind, e.Message, e.TrackIndex, e.Offset)
	default:
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
}

// Is supports errors.Is(err, target) comparisons against any *ParseError
// target, matching by Kind alone.
func (e *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newErr(kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		TrackIndex: -1,
		EventIndex: -1,
	}
}

func (e *ParseError) withOffset(offset int64) *ParseError {
	e.Offset = offset
	return e
}

func (e *ParseError) withTrack(index int) *ParseError {
	e.TrackIndex = index
	return e
}

func (e *ParseError) withEvent(index int) *ParseError {
	e.EventIndex = index
	return e
}

// KindOf reports the ErrorKind carried on err, if err is (or wraps) a
// *ParseError. Used by callers that want to branch on failure kind without
// importing the concrete type.
func KindOf(err error) (ErrorKind, bool) {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return "", false
	}
	return pe.Kind, true
}
