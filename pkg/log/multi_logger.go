package log

// MultiLogger fans each event out to several loggers, typically a
// SlogAdapter on the console next to a FileLogger capturing the
// session for later replaywatch-log inspection.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger wraps the given loggers behind a single Logger.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log forwards the event to every wrapped logger in order.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

var _ Logger = (*MultiLogger)(nil)
