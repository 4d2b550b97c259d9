package internal

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/lmittmann/tint"
)

// levelSilent is higher than any real level.
const levelSilent = slog.Level(100)

// logLevel picks the level from the --debug flag and the MAPPER_LOG variable.
func logLevel(debug bool, env string) slog.Level {
	if debug {
		return slog.LevelDebug
	}

	switch strings.ToLower(env) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return levelSilent
	}
}

func rewriteLogLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey && len(groups) == 0 {
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}

		var levelText string

		// logr verbosity lands between debug and info
		switch {
		case level < slog.LevelInfo:
			levelText = "DEBUG"
		case level < slog.LevelWarn:
			levelText = color.GreenString("INFO")
		case level < slog.LevelError:
			levelText = color.YellowString("WARN")
		default:
			levelText = color.RedString("ERROR")
		}

		a.Value = slog.StringValue(levelText)
	}

	return a
}

// newLogger creates a human-readable logger. logr V(1) maps to slog debug.
func newLogger(w io.Writer, level slog.Level) logr.Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  time.DateTime,
		ReplaceAttr: rewriteLogLevel,
		NoColor:     color.NoColor,
	})

	return logr.FromSlogHandler(handler)
}
