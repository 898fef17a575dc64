// Package logging configures the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
)

// Setup installs the default slog logger. Interactive terminals get the
// tinted human-readable handler; everything else gets JSON so log shippers
// can parse it. format may be "auto", "text" or "json".
func Setup(format, level string) {
	w := os.Stderr

	lvl := slog.LevelInfo
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	useText := false
	switch strings.ToLower(format) {
	case "text":
		useText = true
	case "json":
		useText = false
	default:
		useText = isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
	}

	var h slog.Handler
	if useText {
		h = tinter.NewHandler(w, &tinter.Options{
			Level:      lvl,
			TimeFormat: "15:04:05.000",
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(h))
}
