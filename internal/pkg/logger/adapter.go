package logger

import (
	"log/slog"

	"wallet_tracker/internal/app/port"
)

// slogAdapter реализует интерфейс port.Logger поверх slog.
type slogAdapter struct {
	component string
}

// NewSlogAdapter creates a port.Logger backed by the package logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// Named returns a port.Logger that tags every record with component.
func Named(component string) port.Logger {
	return &slogAdapter{component: component}
}

func (a *slogAdapter) with(args []any) []any {
	if a.component == "" {
		return args
	}
	return append([]any{slog.String("component", a.component)}, args...)
}

// Info логирует информационное сообщение.
func (a *slogAdapter) Info(msg string, args ...any) {
	Info(msg, a.with(args)...)
}

// Debug логирует отладочное сообщение.
func (a *slogAdapter) Debug(msg string, args ...any) {
	Debug(msg, a.with(args)...)
}

// Warn логирует предупреждающее сообщение.
func (a *slogAdapter) Warn(msg string, args ...any) {
	Warn(msg, a.with(args)...)
}

// Error логирует сообщение об ошибке.
func (a *slogAdapter) Error(msg string, args ...any) {
	Error(msg, a.with(args)...)
}
