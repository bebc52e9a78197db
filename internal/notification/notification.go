package notification

import (
	"context"
	"log/slog"
)

// Notifier delivers customer-facing event notifications. The platform has no
// real delivery channel yet; the production implementation logs structured
// events that an outbound worker can tail.
type Notifier interface {
	Event(ctx context.Context, event string, attrs map[string]any)
}

// LoggerNotifier emits notification events through slog.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier builds a Notifier that writes to the given logger.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Event logs a single notification event with its attributes.
func (n *LoggerNotifier) Event(_ context.Context, event string, attrs map[string]any) {
	if n.logger == nil {
		return
	}
	args := make([]any, 0, len(attrs)*2)
	for k, v := range attrs {
		args = append(args, slog.Any(k, v))
	}
	n.logger.Info("notification: "+event, args...)
}
