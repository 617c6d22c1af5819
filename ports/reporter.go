package ports

// Severity tags a status message for the front end. The core never formats
// or colors messages beyond this tag.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Reporter receives human-readable progress and warning messages from the
// engine. Implementations are external (status box, terminal, log file).
type Reporter interface {
	Report(sev Severity, format string, args ...interface{})
}

// NopReporter discards all messages.
type NopReporter struct{}

func (NopReporter) Report(Severity, string, ...interface{}) {}

// Infof reports an informational message.
func Infof(r Reporter, format string, args ...interface{}) {
	r.Report(SeverityInfo, format, args...)
}

// Warnf reports a warning message.
func Warnf(r Reporter, format string, args ...interface{}) {
	r.Report(SeverityWarning, format, args...)
}

// Errorf reports an error message.
func Errorf(r Reporter, format string, args ...interface{}) {
	r.Report(SeverityError, format, args...)
}
