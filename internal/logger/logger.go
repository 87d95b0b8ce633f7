package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02 15:04:05"

const (
	FormatText = "text"
	FormatJSON = "json"
)

type state struct {
	out    io.Writer
	format string
	level  zerolog.Level
	log    zerolog.Logger
}

var current atomic.Pointer[state]

func init() {
	apply(os.Stdout, FormatText, zerolog.InfoLevel)
}

func apply(out io.Writer, format string, level zerolog.Level) {
	w := out
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat, NoColor: true}
	}

	current.Store(&state{
		out:    out,
		format: format,
		level:  level,
		log:    zerolog.New(w).Level(level).With().Timestamp().Logger(),
	})
}

// SetLevel accepts DEBUG, INFO, WARN or ERROR in any case. Unknown levels are ignored.
func SetLevel(level string) {
	var lvl zerolog.Level

	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = zerolog.DebugLevel
	case "INFO":
		lvl = zerolog.InfoLevel
	case "WARN":
		lvl = zerolog.WarnLevel
	case "ERROR":
		lvl = zerolog.ErrorLevel
	default:
		return
	}

	s := current.Load()
	apply(s.out, s.format, lvl)
}

// SetFormat switches between the human-readable console output and JSON lines.
func SetFormat(format string) {
	s := current.Load()
	apply(s.out, strings.ToLower(format), s.level)
}

// SetOutput redirects all further log records.
func SetOutput(out io.Writer) {
	s := current.Load()
	apply(out, s.format, s.level)
}

func Debug(format string, v ...any) {
	log := current.Load().log
	log.Debug().Msg(fmt.Sprintf(format, v...))
}

func Info(format string, v ...any) {
	log := current.Load().log
	log.Info().Msg(fmt.Sprintf(format, v...))
}

func Warn(format string, v ...any) {
	log := current.Load().log
	log.Warn().Msg(fmt.Sprintf(format, v...))
}

func Error(format string, v ...any) {
	log := current.Load().log
	log.Error().Msg(fmt.Sprintf(format, v...))
}
