// Command smfdump parses a Standard MIDI File and prints its contents,
// either as human-readable text or as JSON.
package main

import (
	"fmt"
	"os"

	"github.com/smf-tools/smf/pkg/cli"
	"github.com/smf-tools/smf/pkg/fileio"
	"github.com/smf-tools/smf/pkg/logger"
	"github.com/smf-tools/smf/pkg/smf"
	"github.com/smf-tools/smf/pkg/smfjson"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "smfdump:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	config, err := cli.ParseDumpArgs(args)
	if err != nil {
		return err
	}
	if config.ShowHelp {
		cli.PrintDumpHelp()
		return nil
	}
	if config.InputPath == "" {
		cli.PrintDumpHelp()
		return fmt.Errorf("missing input file")
	}

	if err := logger.InitLogger(config.LogLevel); err != nil {
		return err
	}
	log := logger.GetLogger()

	data, err := fileio.ReadFile(config.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", config.InputPath, err)
	}
	log.Info("read file", "path", config.InputPath, "bytes", len(data))

	midiFile, err := smf.ParseFile(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", config.InputPath, err)
	}
	log.Info("parsed file", "tracks", len(midiFile.Tracks), "format", midiFile.Header.Format)

	if config.JSON {
		out, err := smfjson.Marshal(midiFile)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printText(midiFile)
	return nil
}

func printText(f *smf.MidiFile) {
	fmt.Printf("format=%d tracks=%d\n", f.Header.Format, f.Header.TrackCount)
	if f.Header.Division.Kind() == smf.DivisionPPQN {
		fmt.Printf("division: %d ticks/quarter\n", f.Header.Division.PPQNValue())
	} else {
		fmt.Printf("division: SMPTE %d fps, %d ticks/frame\n", f.Header.Division.FPS(), f.Header.Division.TicksPerFrame())
	}

	for i, track := range f.Tracks {
		fmt.Printf("\ntrack %d (%d events):\n", i, len(track.Events))
		var tick uint64
		for _, ev := range track.Events {
			tick += uint64(ev.DeltaTime())
			fmt.Printf("  tick=%-8d %s\n", tick, describeEvent(ev))
		}
	}
}

func describeEvent(ev smf.Event) string {
	switch e := ev.(type) {
	case *smf.NoteOnEvent:
		return fmt.Sprintf("NoteOn  ch=%d note=%d vel=%d", e.Channel(), e.Note, e.Velocity)
	case *smf.NoteOffEvent:
		return fmt.Sprintf("NoteOff ch=%d note=%d vel=%d", e.Channel(), e.Note, e.Velocity)
	case *smf.ControlChangeEvent:
		return fmt.Sprintf("CC      ch=%d ctrl=%d val=%d", e.Channel(), e.Controller, e.Value)
	case *smf.ProgramChangeEvent:
		return fmt.Sprintf("Program ch=%d program=%d", e.Channel(), e.Program)
	case *smf.PitchBendEvent:
		return fmt.Sprintf("Bend    ch=%d value=%d", e.Channel(), e.Value)
	case *smf.SetTempoEvent:
		return fmt.Sprintf("Tempo   %d us/qn (%.2f bpm)", e.MicrosPerQuarter, smf.BPM(e.MicrosPerQuarter))
	case *smf.TimeSignatureEvent:
		return fmt.Sprintf("TimeSig %d/%d", e.Numerator, e.Denominator)
	case *smf.TrackNameEvent:
		return fmt.Sprintf("Name    %q", e.Text)
	case *smf.EndOfTrackEvent:
		return "EndOfTrack"
	default:
		return fmt.Sprintf("kind=%d", ev.Kind())
	}
}
