package port

// Logger is what services and handlers log through. args are slog-style
// alternating keys and values.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
