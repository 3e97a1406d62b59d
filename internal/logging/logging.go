package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
	timeFormat        = "2006-01-02 15:04:05"
)

// Apply sets the global log level and output writers.
// Logs always go to stdout; when filePath is non-empty they are also written
// to a size-rotated file. The returned closer releases the file.
func Apply(level, filePath string) io.Closer {
	ApplyLevel(level)
	return applyOutputs(os.Stdout, filePath)
}

// ApplyLevel maps a level name onto zerolog's global level. Unknown names mean info.
func ApplyLevel(level string) {
	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// LevelFromVerbosity turns a -v count into a level name.
func LevelFromVerbosity(v int, fallback string) string {
	switch {
	case v >= 2:
		return "trace"
	case v == 1:
		return "debug"
	default:
		return fallback
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func applyOutputs(console io.Writer, filePath string) io.Closer {
	consoleOutput := zerolog.ConsoleWriter{Out: console, TimeFormat: timeFormat}
	log.Logger = zerolog.New(consoleOutput).With().Timestamp().Logger()

	if filePath == "" {
		return nopCloser{}
	}
	if err := ensureLogDir(filePath); err != nil {
		log.Error().Err(err).Str("path", filePath).Msg("Failed to prepare log directory; logging to console only")
		return nopCloser{}
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		Compress:   true,
	}
	fileConsole := zerolog.ConsoleWriter{
		Out:        fileWriter,
		TimeFormat: timeFormat,
		NoColor:    true,
	}

	multi := zerolog.MultiLevelWriter(consoleOutput, fileConsole)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()
	return fileWriter
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
