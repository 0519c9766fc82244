package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup configures the global zerolog logger to write to both the console
// and a size-rotated log file. Called once at startup; not reconfigurable
// at runtime.
func Setup(logFile string, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}

	log.Logger = zerolog.New(io.MultiWriter(consoleWriter, fileWriter)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return nil
}
