package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Loggers discard output until InitLogger is called, so packages can log
// from tests and CLI commands that never open a log file.
var (
	Info  = log.New(io.Discard, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(io.Discard, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// InitLogger sets up logging to file with automatic rotation.
// Debug output is only written when level is "debug".
func InitLogger(logFilePath, level string) {
	// Create the log directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		log.Fatal("Failed to create logs directory:", err)
	}

	// Set up log rotation
	logFile := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10,   // megabytes
		MaxBackups: 3,    // number of backups to keep
		MaxAge:     28,   // days
		Compress:   true, // compress old log files
	}

	// The terminal belongs to tview, so loggers write only to file
	Info.SetOutput(logFile)
	Error.SetOutput(logFile)
	if level == "debug" {
		Debug.SetOutput(logFile)
	} else {
		Debug.SetOutput(io.Discard)
	}
}
