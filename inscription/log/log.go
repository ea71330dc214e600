// Package log holds the subsystem loggers. Output goes to stdout and, once
// InitLogRotator has been called, to a size rotated log file.
package log

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter implements an io.Writer that outputs to both standard output and
// the write-end pipe of an initialized log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	_, _ = os.Stdout.Write(p)
	if logRotator != nil {
		_, _ = logRotator.Write(p)
	}
	return len(p), nil
}

var (
	backendLog = btclog.NewBackend(logWriter{})

	// logRotator is nil until InitLogRotator succeeds.
	logRotator *rotator.Rotator

	Srv  = backendLog.Logger("SRV")
	Idx  = backendLog.Logger("IDX")
	Dec  = backendLog.Logger("DEC")
	Gorm = backendLog.Logger("GORM")
)

var subsystemLoggers = map[string]btclog.Logger{
	"SRV":  Srv,
	"IDX":  Idx,
	"DEC":  Dec,
	"GORM": Gorm,
}

// InitLogRotator creates the rotator writing to logFile, keeping three
// rolled files of 10 MiB.
func InitLogRotator(logFile string) {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create file rotator: %v\n", err)
		os.Exit(1)
	}
	logRotator = r
}

// CloseLogRotator flushes and closes the rotator.
func CloseLogRotator() {
	if logRotator != nil {
		_ = logRotator.Close()
	}
}

// SetLogLevel sets the level of one subsystem. Unknown subsystems are ignored.
func SetLogLevel(subsystemID string, level string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	lvl, _ := btclog.LevelFromString(level)
	logger.SetLevel(lvl)
}

// SetLogLevels sets every subsystem to level.
func SetLogLevels(level string) {
	for subsystemID := range subsystemLoggers {
		SetLogLevel(subsystemID, level)
	}
}

// ValidLogLevel reports whether level names a btclog level.
func ValidLogLevel(level string) bool {
	_, ok := btclog.LevelFromString(level)
	return ok
}
