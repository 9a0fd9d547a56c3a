package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log  zerolog.Logger
	once sync.Once
)

func instance() *zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})
	return &log
}

// Init configures the global logger. Level is one of debug/info/warn/error;
// pretty enables the human-readable console writer for local development.
func Init(level string, pretty bool) {
	l := instance()
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	if pretty {
		*l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	*l = l.Level(parsed)
}

func Debug(msg string, kv ...any) {
	emit(instance().Debug(), msg, kv)
}

func Info(msg string, kv ...any) {
	emit(instance().Info(), msg, kv)
}

func Warn(msg string, kv ...any) {
	emit(instance().Warn(), msg, kv)
}

// Error logs msg with alternating key/value pairs. An error value may be
// passed directly after msg in place of a key, matching call sites like
// logger.Error("run server error", err).
func Error(msg string, kv ...any) {
	ev := instance().Error()
	if len(kv) > 0 {
		if err, ok := kv[0].(error); ok {
			ev = ev.Err(err)
			kv = kv[1:]
		}
	}
	emit(ev, msg, kv)
}

func emit(ev *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = "arg"
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}
