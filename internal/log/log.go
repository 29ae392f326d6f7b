package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// output is where log lines go. Results are printed on stdout, so logs stay
// on stderr.
var output io.Writer = os.Stderr

// LogLevel represents the logging level
type LogLevel string

const (
	// Log levels
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
	LevelFatal LogLevel = "fatal"
	LevelNone  LogLevel = "none"
)

// EnvLevel is the environment variable consulted for the initial level
const EnvLevel = "DLTIME_LOG_LEVEL"

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	configureLogger(getLogLevel())
}

// configureLogger sets up the logger with the specified level
func configureLogger(level LogLevel) {
	console := zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(output),
	}

	log = zerolog.New(console).With().Timestamp().Logger()
	setLogLevel(level)
}

// isTerminal is a cheap check for a character device; colors are only
// written to terminals
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// getLogLevel determines the log level from environment
func getLogLevel() LogLevel {
	if envLevel := os.Getenv(EnvLevel); envLevel != "" {
		return ParseLevel(envLevel)
	}
	return LevelInfo
}

// ParseLevel normalizes a level name. Unknown names map to info.
func ParseLevel(s string) LogLevel {
	switch level := LogLevel(strings.ToLower(strings.TrimSpace(s))); level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal, LevelNone:
		return level
	case "warning":
		return LevelWarn
	default:
		return LevelInfo
	}
}

// setLogLevel sets the zerolog level
func setLogLevel(level LogLevel) {
	switch level {
	case LevelDebug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case LevelInfo:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case LevelWarn:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case LevelError:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case LevelFatal:
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case LevelNone:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// SetLevel sets the global log level
func SetLevel(level LogLevel) {
	configureLogger(level)
}

// SetOutput redirects log output and keeps the current level
func SetOutput(w io.Writer) {
	output = w
	configureLogger(currentLevel())
}

func currentLevel() LogLevel {
	switch zerolog.GlobalLevel() {
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return LevelDebug
	case zerolog.WarnLevel:
		return LevelWarn
	case zerolog.ErrorLevel:
		return LevelError
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return LevelFatal
	case zerolog.Disabled:
		return LevelNone
	default:
		return LevelInfo
	}
}

// Debug returns a new Debug level event logger with component context
func Debug(component string) *zerolog.Event {
	return log.Debug().Str("component", component)
}

// Info returns a new Info level event logger with component context
func Info(component string) *zerolog.Event {
	return log.Info().Str("component", component)
}

// Warn returns a new Warn level event logger with component context
func Warn(component string) *zerolog.Event {
	return log.Warn().Str("component", component)
}

// Error returns a new Error level event logger with component context
func Error(component string) *zerolog.Event {
	return log.Error().Str("component", component)
}

// Fatal returns a new Fatal level event logger with component context
func Fatal(component string) *zerolog.Event {
	return log.Fatal().Str("component", component)
}
