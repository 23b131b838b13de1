package bootstrap

import (
	"log/slog"
	"os"

	"go.uber.org/fx"
)

// LoggerModule provides a plain JSON logger for contexts that skip the
// request-aware logger in main (e2e harness).
var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
