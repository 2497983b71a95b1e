// Command smfplay parses a Standard MIDI File and renders it to audio
// through a SoundFont, blocking until playback finishes.
package main

import (
	"fmt"
	"os"
	"time"

	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/smf-tools/smf/pkg/audio"
	"github.com/smf-tools/smf/pkg/cli"
	"github.com/smf-tools/smf/pkg/fileio"
	"github.com/smf-tools/smf/pkg/logger"
	"github.com/smf-tools/smf/pkg/smf"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "smfplay:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	config, err := cli.ParsePlayArgs(args)
	if err != nil {
		return err
	}
	if config.ShowHelp {
		cli.PrintPlayHelp()
		return nil
	}
	if config.InputPath == "" {
		cli.PrintPlayHelp()
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

	parsed, err := smf.ParseFile(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", config.InputPath, err)
	}
	log.Info("parsed file", "tracks", len(parsed.Tracks), "format", parsed.Header.Format)

	audioCtx := ebitenaudio.NewContext(audio.SampleRate)
	player, err := audio.NewPlayer(config.SoundFontPath, audioCtx)
	if err != nil {
		return err
	}

	if err := player.Play(parsed, data); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}
	log.Info("playback started", "duration", player.Duration())

	time.Sleep(player.Duration())
	player.Stop()
	return nil
}
