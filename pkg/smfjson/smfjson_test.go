package smfjson

import (
	"encoding/json"
	"testing"

	"github.com/smf-tools/smf/pkg/smf"
)

func minimalFile(t *testing.T) *smf.MidiFile {
	t.Helper()
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x60,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x07,
		0x00, 0x90, 0x3C, 0x40, 0x00, 0xFF, 0x2F,
	}
	data = append(data, 0x00)
	// fix declared length now that we know it: 8 bytes of body.
	data[18], data[19], data[20], data[21] = 0, 0, 0, 8
	f, err := smf.ParseFile(data)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	return f
}

func TestMarshalProducesValidJSON(t *testing.T) {
	f := minimalFile(t)
	out, err := Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Marshal output is not valid JSON: %v", err)
	}
	if decoded["trackCount"].(float64) != 1 {
		t.Errorf("trackCount = %v, want 1", decoded["trackCount"])
	}
}

func TestMarshalProjectsDivisionAsPPQN(t *testing.T) {
	f := minimalFile(t)
	out, err := Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var view FileView
	if err := json.Unmarshal(out, &view); err != nil {
		t.Fatalf("Unmarshal into FileView: %v", err)
	}
	if view.Division.Kind != "ppqn" || view.Division.PPQN != 96 {
		t.Errorf("Division = %+v, want ppqn/96", view.Division)
	}
}

func TestMarshalProjectsEventFields(t *testing.T) {
	f := minimalFile(t)
	out, err := Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var view FileView
	if err := json.Unmarshal(out, &view); err != nil {
		t.Fatalf("Unmarshal into FileView: %v", err)
	}
	events := view.Tracks[0].Events
	if len(events) != 2 {
		t.Fatalf("len(Events) = %d, want 2 (NoteOn + EndOfTrack)", len(events))
	}
	if events[0].Kind != "noteOn" {
		t.Errorf("Events[0].Kind = %q, want noteOn", events[0].Kind)
	}
	if events[0].Fields["note"].(float64) != 0x3C {
		t.Errorf("note field = %v, want 60", events[0].Fields["note"])
	}
	if events[1].Kind != "endOfTrack" {
		t.Errorf("Events[1].Kind = %q, want endOfTrack", events[1].Kind)
	}
}
