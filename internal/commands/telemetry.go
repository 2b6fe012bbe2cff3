package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// TelemetryStatus categorises how a command execution ended.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes one command execution outcome.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is an optional callback invoked after every command execution.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs command outcomes through the supplied logger. It is
// the callback wired in when a host does not bring its own telemetry sink.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		if info.Error != nil {
			args = append(args, "error", info.Error)
		}

		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("command.execute.success", args...)
		case TelemetryStatusContextError:
			entry.Error("command.execute.context_error", args...)
		default:
			entry.Error("command.execute.failed", args...)
		}
	}
}
