package logging

import (
	"log/slog"
	"os"
)

// Level controls the minimum level written by Default.
var Level = new(slog.LevelVar)

var Default = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: Level}))

// SetLevel parses a level name such as "debug" or "WARN" and applies it to Default.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	return Level.UnmarshalText([]byte(name))
}
