package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DumpConfig holds the parsed command-line configuration for the smfdump
// command.
type DumpConfig struct {
	InputPath string // path to the .mid file to parse
	JSON      bool   // emit the one-way JSON projection instead of text
	LogLevel  string // debug, info, warn, error
	ShowHelp  bool
}

// PlayConfig holds the parsed command-line configuration for the smfplay
// command.
type PlayConfig struct {
	InputPath     string // path to the .mid file to render
	SoundFontPath string // path to a .sf2 SoundFont
	LogLevel      string
	ShowHelp      bool
}

// ParseDumpArgs parses os.Args-style arguments for smfdump.
//
// Grounded on the teacher's pkg/cli/cli.go ParseArgs: flag reordering so
// positional arguments can precede flags, short/long aliases for every
// flag, and a LOG_LEVEL environment-variable fallback applied only when
// the flag was left at its default.
func ParseDumpArgs(args []string) (*DumpConfig, error) {
	reordered := reorderArgs(args)
	fs := flag.NewFlagSet("smfdump", flag.ContinueOnError)

	config := &DumpConfig{}
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (short form)")
	fs.BoolVar(&config.JSON, "json", false, "emit JSON instead of text")
	fs.BoolVar(&config.JSON, "j", false, "emit JSON instead of text (short form)")
	fs.BoolVar(&config.ShowHelp, "help", false, "show this help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show this help (short form)")

	if err := fs.Parse(reordered); err != nil {
		return nil, err
	}

	applyLogLevelEnv(&config.LogLevel)
	if err := validateLogLevel(config.LogLevel); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		config.InputPath = fs.Arg(0)
	}
	return config, nil
}

// ParsePlayArgs parses os.Args-style arguments for smfplay.
func ParsePlayArgs(args []string) (*PlayConfig, error) {
	reordered := reorderArgs(args)
	fs := flag.NewFlagSet("smfplay", flag.ContinueOnError)

	config := &PlayConfig{}
	fs.StringVar(&config.SoundFontPath, "soundfont", "", "path to a SoundFont (.sf2) file")
	fs.StringVar(&config.SoundFontPath, "s", "", "path to a SoundFont (.sf2) file (short form)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (short form)")
	fs.BoolVar(&config.ShowHelp, "help", false, "show this help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show this help (short form)")

	if err := fs.Parse(reordered); err != nil {
		return nil, err
	}

	applyLogLevelEnv(&config.LogLevel)
	if err := validateLogLevel(config.LogLevel); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		config.InputPath = fs.Arg(0)
	}
	if config.SoundFontPath == "" {
		config.SoundFontPath = os.Getenv("SMF_SOUNDFONT")
	}
	return config, nil
}

func applyLogLevelEnv(level *string) {
	if *level == "info" {
		if env := os.Getenv("LOG_LEVEL"); env != "" {
			*level = strings.ToLower(env)
		}
	}
}

func validateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
}

// reorderArgs moves flags (and the values immediately following
// non-boolean flags) ahead of positional arguments, so a positional
// argument can be given before, after, or between flags.
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	boolFlags := map[string]bool{
		"-h": true, "--help": true,
		"-j": true, "--json": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' && !boolFlags[arg] {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return append(flags, positional...)
}

// parsePositiveInt is a small helper retained for flags (none at present)
// that may need integer validation beyond what flag.IntVar provides.
func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("value must be non-negative, got %d", n)
	}
	return n, nil
}

// PrintDumpHelp writes smfdump's usage message to stdout.
func PrintDumpHelp() {
	fmt.Fprint(os.Stdout, `smfdump - Standard MIDI File inspector

Usage:
  smfdump [options] <file.mid>

Options:
  -j, --json                 emit JSON instead of text
  -l, --log-level <level>    log level: debug, info, warn, error (default: info)
  -h, --help                 show this help

Environment Variables:
  LOG_LEVEL=<level>          log level

Examples:
  smfdump song.mid
  smfdump --json song.mid > song.json
`)
}

// PrintPlayHelp writes smfplay's usage message to stdout.
func PrintPlayHelp() {
	fmt.Fprint(os.Stdout, `smfplay - Standard MIDI File renderer

Usage:
  smfplay [options] <file.mid>

Options:
  -s, --soundfont <path>     path to a SoundFont (.sf2) file
  -l, --log-level <level>    log level: debug, info, warn, error (default: info)
  -h, --help                 show this help

Environment Variables:
  SMF_SOUNDFONT=<path>       default SoundFont path
  LOG_LEVEL=<level>          log level

Examples:
  smfplay --soundfont piano.sf2 song.mid
`)
}
