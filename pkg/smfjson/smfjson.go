// Package smfjson provides a one-way JSON projection of a parsed
// Standard MIDI File, for tooling like smfdump --json. It is one-way
// (Marshal only, no Unmarshal) since re-parsing JSON back into an
// smf.MidiFile is out of scope (spec.md §1 excludes JSON serialization
// from the core parser entirely; this package is the one place it's
// layered on top).
//
// Grounded on: nothing in the example pack imports a JSON library of any
// kind (checked every go.mod under _examples/ and other_examples/), so
// this is the one ambient concern built directly on encoding/json rather
// than a third-party codec.
package smfjson

import (
	"encoding/json"
	"fmt"

	"github.com/smf-tools/smf/pkg/smf"
)

// FileView is the JSON-serializable projection of an *smf.MidiFile.
type FileView struct {
	Format     uint16       `json:"format"`
	TrackCount uint16       `json:"trackCount"`
	Division   DivisionView `json:"division"`
	Tracks     []TrackView  `json:"tracks"`
}

// DivisionView projects smf.TimeDivisionValue.
type DivisionView struct {
	Kind          string `json:"kind"` // "ppqn" or "smpte"
	PPQN          uint16 `json:"ppqn,omitempty"`
	FPS           uint8  `json:"fps,omitempty"`
	TicksPerFrame uint8  `json:"ticksPerFrame,omitempty"`
}

// TrackView projects an *smf.Track.
type TrackView struct {
	Events []EventView `json:"events"`
}

// EventView projects one smf.Event, regardless of kind, into a single
// flat shape: Kind names the variant, DeltaTime is shared by every kind,
// and Fields carries the kind-specific payload as a generic map so this
// package never needs its own copy of every event struct's field list.
type EventView struct {
	Kind      string         `json:"kind"`
	DeltaTime uint32         `json:"deltaTime"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Marshal projects f into indented JSON.
func Marshal(f *smf.MidiFile) ([]byte, error) {
	return json.MarshalIndent(toFileView(f), "", "  ")
}

func toFileView(f *smf.MidiFile) FileView {
	view := FileView{
		Format:     uint16(f.Header.Format),
		TrackCount: f.Header.TrackCount,
		Division:   toDivisionView(f.Header.Division),
		Tracks:     make([]TrackView, len(f.Tracks)),
	}
	for i, t := range f.Tracks {
		view.Tracks[i] = toTrackView(t)
	}
	return view
}

func toDivisionView(d smf.TimeDivisionValue) DivisionView {
	if d.Kind() == smf.DivisionPPQN {
		return DivisionView{Kind: "ppqn", PPQN: d.PPQNValue()}
	}
	return DivisionView{Kind: "smpte", FPS: d.FPS(), TicksPerFrame: d.TicksPerFrame()}
}

func toTrackView(t *smf.Track) TrackView {
	view := TrackView{Events: make([]EventView, len(t.Events))}
	for i, ev := range t.Events {
		view.Events[i] = toEventView(ev)
	}
	return view
}

func toEventView(ev smf.Event) EventView {
	view := EventView{DeltaTime: ev.DeltaTime(), Fields: map[string]any{}}

	switch e := ev.(type) {
	case *smf.NoteOffEvent:
		view.Kind = "noteOff"
		view.Fields["channel"] = e.Channel()
		view.Fields["note"] = e.Note
		view.Fields["velocity"] = e.Velocity
	case *smf.NoteOnEvent:
		view.Kind = "noteOn"
		view.Fields["channel"] = e.Channel()
		view.Fields["note"] = e.Note
		view.Fields["velocity"] = e.Velocity
	case *smf.PolyKeyPressureEvent:
		view.Kind = "polyKeyPressure"
		view.Fields["channel"] = e.Channel()
		view.Fields["note"] = e.Note
		view.Fields["pressure"] = e.Pressure
	case *smf.ControlChangeEvent:
		view.Kind = "controlChange"
		view.Fields["channel"] = e.Channel()
		view.Fields["controller"] = e.Controller
		view.Fields["value"] = e.Value
	case *smf.ProgramChangeEvent:
		view.Kind = "programChange"
		view.Fields["channel"] = e.Channel()
		view.Fields["program"] = e.Program
	case *smf.ChannelPressureEvent:
		view.Kind = "channelPressure"
		view.Fields["channel"] = e.Channel()
		view.Fields["pressure"] = e.Pressure
	case *smf.PitchBendEvent:
		view.Kind = "pitchBend"
		view.Fields["channel"] = e.Channel()
		view.Fields["value"] = e.Value
	case *smf.SequenceNumberEvent:
		view.Kind = "sequenceNumber"
		view.Fields["number"] = e.Number
	case *smf.TextEvent:
		view.Kind = "text"
		view.Fields["text"] = e.Text
	case *smf.CopyrightEvent:
		view.Kind = "copyright"
		view.Fields["text"] = e.Text
	case *smf.TrackNameEvent:
		view.Kind = "trackName"
		view.Fields["text"] = e.Text
	case *smf.InstrumentNameEvent:
		view.Kind = "instrumentName"
		view.Fields["text"] = e.Text
	case *smf.LyricEvent:
		view.Kind = "lyric"
		view.Fields["text"] = e.Text
	case *smf.MarkerEvent:
		view.Kind = "marker"
		view.Fields["text"] = e.Text
	case *smf.CuePointEvent:
		view.Kind = "cuePoint"
		view.Fields["text"] = e.Text
	case *smf.MidiChannelPrefixEvent:
		view.Kind = "midiChannelPrefix"
		view.Fields["channel"] = e.Channel
	case *smf.MidiPortEvent:
		view.Kind = "midiPort"
		view.Fields["port"] = e.Port
	case *smf.EndOfTrackEvent:
		view.Kind = "endOfTrack"
	case *smf.SetTempoEvent:
		view.Kind = "setTempo"
		view.Fields["microsPerQuarter"] = e.MicrosPerQuarter
		view.Fields["bpm"] = smf.BPM(e.MicrosPerQuarter)
	case *smf.SmpteOffsetEvent:
		view.Kind = "smpteOffset"
		view.Fields["hour"] = e.Hour
		view.Fields["minute"] = e.Minute
		view.Fields["second"] = e.Second
		view.Fields["frameRate"] = e.FrameRate
		view.Fields["fractionalFrames"] = e.FractionalFrames
	case *smf.TimeSignatureEvent:
		view.Kind = "timeSignature"
		view.Fields["numerator"] = e.Numerator
		view.Fields["denominator"] = e.Denominator
		view.Fields["metronomeClicks"] = e.MetronomeClicks
		view.Fields["thirtySecondsPerQuarter"] = e.ThirtySecondsPerQuarter
	case *smf.KeySignatureEvent:
		view.Kind = "keySignature"
		view.Fields["accidentals"] = e.Accidentals
		view.Fields["mode"] = e.Mode
	case *smf.SequencerSpecificEvent:
		view.Kind = "sequencerSpecific"
		view.Fields["data"] = e.Data
	default:
		view.Kind = fmt.Sprintf("unknown(%d)", ev.Kind())
	}
	return view
}
