package config

import (
	"io"

	"github.com/labstack/gommon/log"
)

func ParseLevel(s string) log.Lvl {
	switch s {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	}
	return log.INFO
}

// NewLogger builds the leveled logger shared by the cli and the server.
func NewLogger(prefix, level string, w io.Writer) *log.Logger {
	l := log.New(prefix)
	l.SetOutput(w)
	l.SetLevel(ParseLevel(level))
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	return l
}
