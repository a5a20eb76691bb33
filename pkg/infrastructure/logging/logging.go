// Package logging bootstraps the global zerolog logger with dual sinks: a
// colorized console writer for interactive use and a rotating file writer
// for durable operational history.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where the rotating log file lives and how verbose the
// console sink is.
type Options struct {
	// Verbose enables debug-level logging. Falls back to the VERBOSE
	// environment variable when false.
	Verbose bool
	// LogDir is the directory the rotating log file is written under.
	// Defaults to "./logs" when empty.
	LogDir string
}

// Init installs the global logger with a console writer on stderr and a
// rotating file writer under opts.LogDir. Safe to call once at process
// startup, before configuration has been loaded.
func Init(opts Options) error {
	level := zerolog.InfoLevel
	if opts.Verbose || os.Getenv("VERBOSE") == "true" {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	logDir := opts.LogDir
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("create log directory %q: %w", logDir, err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "reliefctl.log"),
		MaxSize:    16, // megabytes
		MaxBackups: 10,
		MaxAge:     90, // days
		Compress:   true,
	}

	multi := zerolog.MultiLevelWriter(io.Writer(consoleWriter), fileWriter)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	log.Debug().Str("logDir", logDir).Msg("logging initialized")
	return nil
}
