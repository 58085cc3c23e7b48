package service

import "github.com/alonkrifcher/aura-insight-whisperer/internal"

// Notifier is an informational side-channel for sync outcomes. It is never
// required for correctness; implementations may surface the message to a UI
// or just log it.
type Notifier interface {
	Notify(severity, message string)
}

type logNotifier struct {
	logger internal.Logger
}

// NewLogNotifier returns a Notifier that writes to the service log.
func NewLogNotifier(logger internal.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(severity, message string) {
	switch severity {
	case internal.SeverityMedium, internal.SeverityHigh:
		n.logger.Warnf("notify: %s", message)
	default:
		n.logger.Infof("notify: %s", message)
	}
}
